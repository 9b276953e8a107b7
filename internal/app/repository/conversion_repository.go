package repository

import (
	"context"
	"errors"
	"time"

	"github.com/drivefetch/drivefetch/internal/app/model"
	"gorm.io/gorm"
)

var (
	// ErrConversionNotFound signals that the requested conversion does not exist.
	ErrConversionNotFound = errors.New("conversion not found")
)

// ConversionRepository defines the data access contract for conversion history.
type ConversionRepository interface {
	Create(ctx context.Context, conv *model.Conversion) error
	GetByID(ctx context.Context, id string) (*model.Conversion, error)
	ListRecent(ctx context.Context, limit int) ([]model.Conversion, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type conversionRepository struct {
	db *gorm.DB
}

// NewConversionRepository returns a GORM-backed ConversionRepository.
func NewConversionRepository(db *gorm.DB) ConversionRepository {
	return &conversionRepository{db: db}
}

func (r *conversionRepository) Create(ctx context.Context, conv *model.Conversion) error {
	return r.db.WithContext(ctx).Create(conv).Error
}

func (r *conversionRepository) GetByID(ctx context.Context, id string) (*model.Conversion, error) {
	var conv model.Conversion
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&conv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversionNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *conversionRepository) ListRecent(ctx context.Context, limit int) ([]model.Conversion, error) {
	if limit <= 0 {
		limit = 20
	}

	var result []model.Conversion
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *conversionRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.Conversion{})
	return result.RowsAffected, result.Error
}
