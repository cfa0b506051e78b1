package scheduler

import (
	"context"
	"fmt"
	"time"

	"standup-relay/internal/observability"

	"github.com/go-co-op/gocron/v2"
)

// Job represents a scheduled job
type Job interface {
	// Name returns the job name for logging
	Name() string
	// Run executes the job
	Run(ctx context.Context) error
	// Schedule returns a five-field cron expression
	Schedule() string
}

// Scheduler runs registered jobs on their cron schedules
type Scheduler struct {
	cron   gocron.Scheduler
	jobs   map[string]Job
	ctx    context.Context
	logger *observability.Logger
}

// New creates a scheduler evaluating cron expressions in location
func New(location *time.Location, logger *observability.Logger) (*Scheduler, error) {
	if location == nil {
		location = time.UTC
	}
	cron, err := gocron.NewScheduler(gocron.WithLocation(location))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Scheduler{
		cron:   cron,
		jobs:   make(map[string]Job),
		ctx:    context.Background(),
		logger: logger,
	}, nil
}

// Register adds a job to the scheduler
func (s *Scheduler) Register(job Job) error {
	if _, exists := s.jobs[job.Name()]; exists {
		return fmt.Errorf("job %s already registered", job.Name())
	}

	_, err := s.cron.NewJob(
		gocron.CronJob(job.Schedule(), false),
		gocron.NewTask(func() {
			_ = s.executeJob(s.jobContext(job), job)
		}),
		gocron.WithName(job.Name()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", job.Name(), err)
	}

	s.jobs[job.Name()] = job
	s.logger.Info(context.Background(), fmt.Sprintf("Registered scheduled job: %s (cron: %s)",
		job.Name(), job.Schedule()))
	return nil
}

// Start begins running all scheduled jobs. ctx becomes the parent of every
// job run.
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx = ctx
	s.cron.Start()
	s.logger.Info(ctx, fmt.Sprintf("Started scheduler with %d jobs", len(s.jobs)))
}

// Shutdown stops the scheduler and waits for running jobs
func (s *Scheduler) Shutdown() error {
	if err := s.cron.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	s.logger.Info(context.Background(), "Scheduler stopped")
	return nil
}

// RunNow executes a registered job immediately in the calling goroutine
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	job, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("job %s not registered", name)
	}
	return s.executeJob(observability.WithFields(ctx, observability.Field{Key: "scheduled_job", Value: name}), job)
}

// NextRun returns when a registered job is next due
func (s *Scheduler) NextRun(name string) (time.Time, error) {
	for _, j := range s.cron.Jobs() {
		if j.Name() == name {
			return j.NextRun()
		}
	}
	return time.Time{}, fmt.Errorf("job %s not registered", name)
}

func (s *Scheduler) jobContext(job Job) context.Context {
	return observability.WithFields(s.ctx, observability.Field{Key: "scheduled_job", Value: job.Name()})
}

// executeJob executes a job and logs timing
func (s *Scheduler) executeJob(ctx context.Context, job Job) error {
	start := time.Now()
	s.logger.Info(ctx, fmt.Sprintf("Executing scheduled job: %s", job.Name()))

	err := job.Run(ctx)
	duration := time.Since(start)

	if err != nil {
		s.logger.Error(ctx, fmt.Sprintf("Job %s failed after %v", job.Name(), duration), err)
		return err
	}

	s.logger.Info(ctx, fmt.Sprintf("Job %s completed successfully in %v", job.Name(), duration))
	return nil
}
