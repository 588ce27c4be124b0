package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/tasktango/backend/internal/infrastructure/suggestcache"
)

// JanitorConfig controls how often the suggestion cache is swept and how
// long entries live.
type JanitorConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// Janitor periodically purges stale advisor suggestions from the cache.
type Janitor struct {
	cache  *suggestcache.Store
	logger *zap.Logger
	cron   *cron.Cron
	cfg    JanitorConfig
}

func NewJanitor(cache *suggestcache.Store, logger *zap.Logger, cfg JanitorConfig) *Janitor {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	// the schedule has whole-second resolution
	if cfg.Interval < time.Second {
		cfg.Interval = time.Second
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	j := &Janitor{
		cache:  cache,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	if _, err := j.cron.AddFunc(schedule, j.sweep); err != nil {
		j.logger.Error("janitor schedule rejected", zap.String("schedule", schedule), zap.Error(err))
	}

	return j
}

// Start launches the cron scheduler.
func (j *Janitor) Start() {
	if j == nil || j.cron == nil {
		return
	}
	j.cron.Start()
	j.logger.Info("suggestion cache janitor started")
}

// Stop gracefully stops the scheduler.
func (j *Janitor) Stop(ctx context.Context) {
	if j == nil || j.cron == nil {
		return
	}
	stopCtx := j.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	j.logger.Info("suggestion cache janitor stopped")
}

func (j *Janitor) sweep() {
	if j.cache == nil {
		return
	}
	removed, err := j.cache.Cleanup(time.Now().Add(-j.cfg.Retention))
	if err != nil {
		j.logger.Error("suggestion cache sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		j.logger.Info("suggestion cache swept", zap.Int("removed", removed))
	}
}
