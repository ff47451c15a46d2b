package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riverqueue/river"
	"go.uber.org/zap"

	"fittrack.io/notifier/internal/domain"
	"fittrack.io/notifier/internal/pkg/logger"
	"fittrack.io/notifier/internal/sweep"
)

// SweepArgs triggers one sweep of the given kind.
type SweepArgs struct {
	Sweep domain.SweepKind `json:"sweep"`
}

// Kind returns the job kind identifier for notification sweeps.
func (SweepArgs) Kind() string { return "notification_sweep" }

// InsertOpts allows one job per sweep kind per hour. Sweeps are not
// retried: the next daily trigger is the retry.
func (SweepArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		Queue:       river.QueueDefault,
		MaxAttempts: 1,
		UniqueOpts: river.UniqueOpts{
			ByArgs:   true,
			ByPeriod: time.Hour,
			ByQueue:  true,
		},
	}
}

// SweepRunner runs a sweep. *sweep.Runner satisfies it.
type SweepRunner interface {
	Run(ctx context.Context, kind domain.SweepKind, now time.Time) (sweep.Result, error)
}

// SweepWorker executes scheduled sweeps.
type SweepWorker struct {
	river.WorkerDefaults[SweepArgs]
	runner SweepRunner
	now    func() time.Time
}

// NewSweepWorker creates a sweep worker.
func NewSweepWorker(runner SweepRunner) *SweepWorker {
	return &SweepWorker{runner: runner, now: time.Now}
}

// Timeout disables River's default job deadline. A sweep's length grows with
// the user population; per-user work is bounded by the runner instead.
func (w *SweepWorker) Timeout(*river.Job[SweepArgs]) time.Duration { return -1 }

// Work runs the sweep. An overlapping run of the same kind is logged and
// dropped. An unknown kind cancels the job.
func (w *SweepWorker) Work(ctx context.Context, job *river.Job[SweepArgs]) error {
	if w == nil || w.runner == nil {
		return fmt.Errorf("sweep worker is not initialized")
	}
	kind := job.Args.Sweep

	logger.Info("Processing notification sweep job",
		zap.String("kind", string(kind)),
		zap.Int64("job_id", job.ID),
		zap.Int("attempt", job.Attempt),
	)

	_, err := w.runner.Run(ctx, kind, w.now())
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sweep.ErrSweepRunning):
		logger.Warn("notification sweep skipped: previous run still in progress",
			zap.String("kind", string(kind)),
			zap.Int64("job_id", job.ID),
		)
		return nil
	case errors.Is(err, sweep.ErrUnknownKind):
		return river.JobCancel(err)
	default:
		return fmt.Errorf("%s sweep: %w", kind, err)
	}
}
