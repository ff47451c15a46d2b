package jobs

import (
	"testing"
	"time"

	"github.com/riverqueue/river"

	"fittrack.io/notifier/internal/config"
)

func testSchedulerConfig(enabled bool) config.SchedulerConfig {
	return config.SchedulerConfig{
		Enabled:               enabled,
		Timezone:              "UTC",
		WorkoutReminderCron:   "0 8 * * *",
		NutritionReminderCron: "0 11 * * *",
		GoalAchievementCron:   "0 18 * * *",
		RecentWorkoutWindow:   7 * 24 * time.Hour,
	}
}

func TestPeriodicJobs(t *testing.T) {
	t.Parallel()

	notif := config.NotificationConfig{Retention: time.Hour, CleanupCron: "30 3 * * *"}

	jobs, err := PeriodicJobs(testSchedulerConfig(true), notif)
	if err != nil {
		t.Fatalf("PeriodicJobs() error = %v", err)
	}
	if len(jobs) != 4 {
		t.Fatalf("len(jobs) = %d, want 3 sweeps + cleanup", len(jobs))
	}

	jobs, err = PeriodicJobs(testSchedulerConfig(false), notif)
	if err != nil {
		t.Fatalf("PeriodicJobs(disabled) error = %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("len(jobs) = %d, want cleanup only", len(jobs))
	}
}

func TestPeriodicJobsInvalidCron(t *testing.T) {
	t.Parallel()

	sched := testSchedulerConfig(true)
	sched.GoalAchievementCron = "at six"
	if _, err := PeriodicJobs(sched, config.NotificationConfig{CleanupCron: "30 3 * * *"}); err == nil {
		t.Fatal("PeriodicJobs() error = nil, want cron error")
	}

	if _, err := PeriodicJobs(testSchedulerConfig(false), config.NotificationConfig{CleanupCron: "nope"}); err == nil {
		t.Fatal("PeriodicJobs() error = nil, want cleanup cron error")
	}
}

func TestRegisterWorkers(t *testing.T) {
	t.Parallel()

	workers := river.NewWorkers()
	RegisterWorkers(workers, &fakeRunner{}, &fakePurger{}, 0)
	// Registering the same kinds twice must fail, proving both were added.
	if err := river.AddWorkerSafely(workers, NewSweepWorker(&fakeRunner{})); err == nil {
		t.Fatal("sweep worker was not registered")
	}
	if err := river.AddWorkerSafely(workers, NewNotificationCleanupWorker(&fakePurger{}, 0)); err == nil {
		t.Fatal("cleanup worker was not registered")
	}
}
