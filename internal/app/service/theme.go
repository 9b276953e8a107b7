package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Persisted theme markers. Anything else stored is treated as light.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ThemeStore persists one theme marker per session.
type ThemeStore interface {
	Get(ctx context.Context, sessionID string) (string, error)
	Set(ctx context.Context, sessionID, marker string) error
}

// ThemeService reads and writes the per-session dark/light preference.
type ThemeService struct {
	store  ThemeStore
	logger *zap.Logger
}

// NewThemeService creates a theme service over the given store.
func NewThemeService(store ThemeStore, logger *zap.Logger) *ThemeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ThemeService{store: store, logger: logger}
}

// Dark reports the saved preference, defaulting to light when the marker is
// absent, unrecognized, or the store is unreachable.
func (s *ThemeService) Dark(ctx context.Context, sessionID string) bool {
	marker, err := s.store.Get(ctx, sessionID)
	if err != nil {
		s.logger.Warn("failed to load theme preference",
			zap.String("session_id", sessionID), zap.Error(err))
		return false
	}
	return marker == ThemeDark
}

// SetDark persists the toggled preference.
func (s *ThemeService) SetDark(ctx context.Context, sessionID string, dark bool) error {
	marker := ThemeLight
	if dark {
		marker = ThemeDark
	}
	if err := s.store.Set(ctx, sessionID, marker); err != nil {
		return fmt.Errorf("persist theme preference: %w", err)
	}
	return nil
}

const themeKeyPrefix = "drivefetch:theme:"

// Sessions that stop coming back eventually drop their preference.
const themeTTL = 180 * 24 * time.Hour

type redisThemeStore struct {
	client *redis.Client
}

// NewRedisThemeStore returns a ThemeStore backed by Redis.
func NewRedisThemeStore(client *redis.Client) ThemeStore {
	return &redisThemeStore{client: client}
}

func (s *redisThemeStore) Get(ctx context.Context, sessionID string) (string, error) {
	marker, err := s.client.Get(ctx, themeKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return marker, nil
}

func (s *redisThemeStore) Set(ctx context.Context, sessionID, marker string) error {
	return s.client.Set(ctx, themeKeyPrefix+sessionID, marker, themeTTL).Err()
}
