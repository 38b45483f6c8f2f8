package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Maintainer performs periodic housekeeping
type Maintainer interface {
	ResetStaleStates(ctx context.Context) error
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler  *gocron.Scheduler
	maintainer Maintainer
	interval   time.Duration
	timeout    time.Duration
	logger     *zap.Logger
}

// New creates a new scheduler running maintenance every interval
func New(maintainer Maintainer, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler:  gocron.NewScheduler(time.UTC),
		maintainer: maintainer,
		interval:   interval,
		timeout:    time.Minute,
		logger:     logger,
	}
}

// Start schedules the jobs and runs them in the background. The first run happens immediately.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.resetStaleStates); err != nil {
		return fmt.Errorf("failed to schedule state reset: %w", err)
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) resetStaleStates() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.maintainer.ResetStaleStates(ctx); err != nil {
		s.logger.Error("Scheduled state reset failed", zap.Error(err))
	}
}
