// Package scheduler runs periodic wallet backups on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler manages the scheduled jobs.
type Scheduler struct {
	cron     *cron.Cron
	ctx      context.Context
	cancel   context.CancelFunc
	log      *zap.Logger
	schedule string
	job      func(ctx context.Context) error
}

// New creates a scheduler for the given cron expression, evaluated in UTC.
func New(schedule string, log *zap.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	if log == nil {
		log = zap.NewNop()
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		ctx:      ctx,
		cancel:   cancel,
		log:      log,
		schedule: schedule,
	}
}

// SetJob sets the function run on every tick.
func (s *Scheduler) SetJob(f func(ctx context.Context) error) {
	s.job = f
}

// Start registers the job and starts the cron loop. An empty schedule or a
// missing job leaves the scheduler idle.
func (s *Scheduler) Start() error {
	if s.schedule == "" || s.job == nil {
		s.log.Info("Backup schedule not set, scheduler idle")
		return nil
	}

	_, err := s.cron.AddFunc(s.schedule, s.run)
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.log.Info("Scheduler started", zap.String("schedule", s.schedule))
	return nil
}

func (s *Scheduler) run() {
	s.log.Debug("Scheduled job triggered")
	if err := s.job(s.ctx); err != nil {
		s.log.Error("Scheduled job failed", zap.Error(err))
	}
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.log.Info("Scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
