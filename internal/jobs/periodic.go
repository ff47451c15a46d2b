package jobs

import (
	"fmt"
	"time"

	"github.com/riverqueue/river"
	"go.uber.org/zap"

	"fittrack.io/notifier/internal/config"
	"fittrack.io/notifier/internal/domain"
	"fittrack.io/notifier/internal/pkg/logger"
)

// RegisterWorkers adds the sweep and cleanup workers to workers.
func RegisterWorkers(workers *river.Workers, runner SweepRunner, purger NotificationPurger, retention time.Duration) {
	river.AddWorker(workers, NewSweepWorker(runner))
	river.AddWorker(workers, NewNotificationCleanupWorker(purger, retention))
}

// PeriodicJobs builds the daily schedule: one job per sweep kind at its
// configured time (only when the scheduler is enabled) plus the retention
// cleanup. Sweeps do not run on start; a restart never causes an extra
// reminder round.
func PeriodicJobs(sched config.SchedulerConfig, notif config.NotificationConfig) ([]*river.PeriodicJob, error) {
	loc := sched.Location()
	var periodic []*river.PeriodicJob

	if sched.Enabled {
		crons := map[domain.SweepKind]string{
			domain.SweepWorkoutReminder:   sched.WorkoutReminderCron,
			domain.SweepNutritionReminder: sched.NutritionReminderCron,
			domain.SweepGoalAchievement:   sched.GoalAchievementCron,
		}
		for _, kind := range domain.SweepKinds() {
			schedule, err := ParseSchedule(crons[kind], loc)
			if err != nil {
				return nil, fmt.Errorf("%s schedule: %w", kind, err)
			}
			periodic = append(periodic, river.NewPeriodicJob(
				schedule,
				func() (river.JobArgs, *river.InsertOpts) {
					return SweepArgs{Sweep: kind}, nil
				},
				&river.PeriodicJobOpts{RunOnStart: false},
			))
			logger.Info("notification sweep scheduled",
				zap.String("kind", string(kind)),
				zap.String("cron", crons[kind]),
				zap.String("timezone", loc.String()),
			)
		}
	} else {
		logger.Warn("notification scheduler disabled: sweeps run only when triggered manually")
	}

	cleanup, err := ParseSchedule(notif.CleanupCron, loc)
	if err != nil {
		return nil, fmt.Errorf("notification cleanup schedule: %w", err)
	}
	periodic = append(periodic, river.NewPeriodicJob(
		cleanup,
		func() (river.JobArgs, *river.InsertOpts) {
			return NotificationCleanupArgs{}, nil
		},
		&river.PeriodicJobOpts{RunOnStart: true},
	))

	return periodic, nil
}
