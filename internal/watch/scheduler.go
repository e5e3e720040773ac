package watch

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

// Scheduler wraps a gocron scheduler for periodic re-checks.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates a scheduler instance.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to create scheduler").Build()
	}
	return &Scheduler{scheduler: s}, nil
}

// SchedulePeriodicCheck runs task every interval. Overlapping runs are
// skipped. It returns the job ID.
func (s *Scheduler) SchedulePeriodicCheck(interval time.Duration, task func()) (string, error) {
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName("periodic-check"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to create periodic check job").
			WithContext("interval", interval.String()).Build()
	}
	return job.ID().String(), nil
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	slog.Info("Starting scheduler")
	s.scheduler.Start()
}

// Stop shuts the scheduler down, waiting for running jobs.
func (s *Scheduler) Stop() error {
	slog.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}
