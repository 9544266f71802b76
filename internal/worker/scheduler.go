package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Job is a unit of periodic work run by the Scheduler.
type Job interface {
	Name() string
	Interval() time.Duration
	Run(ctx context.Context)
}

// Scheduler wraps a gocron scheduler. Jobs never overlap with themselves.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *zap.Logger
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(logger *zap.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{scheduler: s, logger: logger, ctx: ctx, cancel: cancel}, nil
}

// Register adds a job. Call before Start.
func (s *Scheduler) Register(job Job) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(job.Interval()),
		gocron.NewTask(func() { job.Run(s.ctx) }),
		gocron.WithName(job.Name()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("register job %s: %w", job.Name(), err)
	}
	s.logger.Info("job registered", zap.String("job", job.Name()), zap.Duration("interval", job.Interval()))
	return nil
}

// Start begins running registered jobs.
func (s *Scheduler) Start() {
	s.scheduler.Start()
	s.logger.Info("scheduler started")
}

// Stop cancels running jobs and waits for the scheduler to shut down.
func (s *Scheduler) Stop() {
	s.cancel()
	if err := s.scheduler.Shutdown(); err != nil {
		s.logger.Error("scheduler shutdown", zap.Error(err))
		return
	}
	s.logger.Info("scheduler stopped")
}
