package modules

import (
	"context"

	"github.com/riverqueue/river"

	"fittrack.io/notifier/internal/api/handlers"
	"fittrack.io/notifier/internal/config"
	"fittrack.io/notifier/internal/domain"
	"fittrack.io/notifier/internal/evaluator"
	"fittrack.io/notifier/internal/jobs"
	"fittrack.io/notifier/internal/notification"
	"fittrack.io/notifier/internal/sweep"
)

// SchedulerStore is the persistence the sweeps read from and write to.
type SchedulerStore interface {
	sweep.UserSource
	evaluator.SessionReader
	evaluator.CatalogReader
	evaluator.NutritionReader
	evaluator.GoalStore
	jobs.NotificationPurger
}

// SchedulerModule owns the three evaluators, the sweep runner, and the River
// jobs that trigger sweeps and retention cleanup.
type SchedulerModule struct {
	cfg    *config.Config
	store  SchedulerStore
	runner *sweep.Runner
	tasks  handlers.TaskSubmitter
}

// NewSchedulerModule wires the sweeps on the shared store and worker pools.
func NewSchedulerModule(infra *Infrastructure, sender notification.Sender) *SchedulerModule {
	return newSchedulerModule(infra.Config, infra.Store, sender, infra.Pools.Sweep, infra.Pools)
}

func newSchedulerModule(cfg *config.Config, store SchedulerStore, sender notification.Sender, fanOut sweep.FanOut, tasks handlers.TaskSubmitter) *SchedulerModule {
	loc := cfg.Scheduler.Location()
	evaluators := map[domain.SweepKind]evaluator.Evaluator{
		domain.SweepWorkoutReminder:   evaluator.NewWorkoutReminder(store, store, cfg.Scheduler.RecentWorkoutWindow, loc),
		domain.SweepNutritionReminder: evaluator.NewNutritionReminder(store, loc),
		domain.SweepGoalAchievement:   evaluator.NewGoalAchievement(store),
	}

	opts := []sweep.Option{
		sweep.WithUserTimeout(cfg.Scheduler.UserTimeout),
		sweep.WithWriteTimeout(cfg.Scheduler.WriteTimeout),
	}
	if fanOut != nil {
		opts = append(opts, sweep.WithFanOut(fanOut))
	}

	return &SchedulerModule{
		cfg:    cfg,
		store:  store,
		runner: sweep.NewRunner(store, sender, evaluators, opts...),
		tasks:  tasks,
	}
}

// Runner returns the sweep runner.
func (m *SchedulerModule) Runner() *sweep.Runner { return m.runner }

func (m *SchedulerModule) Name() string { return "scheduler" }

func (m *SchedulerModule) ContributeServerDeps(deps *handlers.ServerDeps) {
	deps.Sweeps = m.runner
	deps.Tasks = m.tasks
}

func (m *SchedulerModule) RegisterWorkers(workers *river.Workers) {
	jobs.RegisterWorkers(workers, m.runner, m.store, m.cfg.Notification.Retention)
}

func (m *SchedulerModule) PeriodicJobs() ([]*river.PeriodicJob, error) {
	return jobs.PeriodicJobs(m.cfg.Scheduler, m.cfg.Notification)
}

func (m *SchedulerModule) Shutdown(context.Context) error { return nil }
