package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const DefaultJanitorSchedule = "@every 10m"

// Janitor evicts games that have been idle longer than the TTL so no game
// outlives its session.
type Janitor struct {
	store    IdleEvictor
	ttl      time.Duration
	schedule string
	logger   *zap.Logger
	now      func() time.Time
}

func NewJanitor(store IdleEvictor, ttl time.Duration, schedule string, logger *zap.Logger) *Janitor {
	if schedule == "" {
		schedule = DefaultJanitorSchedule
	}
	return &Janitor{
		store:    store,
		ttl:      ttl,
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
	}
}

// Sweep evicts idle games once and returns how many were removed.
func (j *Janitor) Sweep() int {
	evicted := j.store.EvictIdle(j.now().Add(-j.ttl))
	if len(evicted) > 0 {
		j.logger.Info("evicted idle games", zap.Int("count", len(evicted)))
	}
	return len(evicted)
}

// Start runs Sweep on the schedule until ctx is done.
func (j *Janitor) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(j.schedule, func() { j.Sweep() }); err != nil {
		return fmt.Errorf("schedule janitor %q: %w", j.schedule, err)
	}

	c.Start()
	j.logger.Info("janitor started",
		zap.String("schedule", j.schedule),
		zap.Duration("idle_ttl", j.ttl),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	j.logger.Info("janitor stopped")
	return nil
}
