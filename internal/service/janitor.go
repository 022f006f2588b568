package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionExpirer drops idle sessions.
type SessionExpirer interface {
	ExpireIdle() int
}

// SessionJanitor periodically evicts abandoned sessions.
type SessionJanitor struct {
	expirer  SessionExpirer
	schedule string
	logger   *zap.Logger
}

// NewSessionJanitor creates a janitor running on a cron schedule such as "@every 10m".
func NewSessionJanitor(expirer SessionExpirer, schedule string, logger *zap.Logger) *SessionJanitor {
	return &SessionJanitor{
		expirer:  expirer,
		schedule: schedule,
		logger:   logger,
	}
}

// Start runs the janitor until ctx is cancelled.
func (j *SessionJanitor) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(j.schedule, j.sweep)
	if err != nil {
		return err
	}

	c.Start()
	j.logger.Info("session janitor started", zap.String("schedule", j.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	j.logger.Info("session janitor stopped")
	return nil
}

func (j *SessionJanitor) sweep() {
	if n := j.expirer.ExpireIdle(); n > 0 {
		j.logger.Info("expired idle sessions", zap.Int("count", n))
	}
}
