package service

import (
	"context"
	"time"

	"github.com/drivefetch/drivefetch/internal/app/repository"
	"go.uber.org/zap"
)

// HistoryPruner periodically deletes conversion rows past the retention window.
type HistoryPruner struct {
	logger    *zap.Logger
	repo      repository.ConversionRepository
	retention time.Duration
	interval  time.Duration
	stopChan  chan struct{}
}

// NewHistoryPruner creates a pruner with the given retention window.
func NewHistoryPruner(logger *zap.Logger, repo repository.ConversionRepository, retention time.Duration) *HistoryPruner {
	return &HistoryPruner{
		logger:    logger,
		repo:      repo,
		retention: retention,
		interval:  time.Hour,
		stopChan:  make(chan struct{}),
	}
}

// Start begins the periodic pruning.
func (p *HistoryPruner) Start() {
	go p.run()
}

// Stop stops the periodic pruning.
func (p *HistoryPruner) Stop() {
	close(p.stopChan)
}

func (p *HistoryPruner) run() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.prune()
		case <-p.stopChan:
			p.logger.Info("history pruner stopped")
			return
		}
	}
}

func (p *HistoryPruner) prune() {
	ctx := context.Background()
	cutoff := time.Now().Add(-p.retention)

	affected, err := p.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		p.logger.Error("failed to prune conversion history", zap.Error(err))
		return
	}

	if affected > 0 {
		p.logger.Info("pruned conversion history",
			zap.Int64("count", affected),
			zap.Time("cutoff", cutoff),
		)
	}
}
