package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fittrack.io/notifier/internal/domain"
	"fittrack.io/notifier/internal/repository/postgres"
	"fittrack.io/notifier/internal/testutil"
)

const sampleCatalog = `
workouts:
  - id: w-walk
    name: Brisk Walk
    type: cardio
    fitness_level: beginner
    duration_minutes: 30
  - id: w-yoga
    name: Morning Flow
    type: flexibility
    fitness_level: Beginner
    duration_minutes: 20
users:
  - id: u-ana
    name: Ana
    email: ana@example.com
    fitness_level: beginner
    timezone: Europe/Madrid
    goals:
      - id: g-steps
        type: steps
        target: 10000
        current: 10250
  - id: u-ben
    email: ben@example.com
    fitness_level: advanced
    preferences:
      workout_reminders: false
      goal_milestones: true
      nutrition_reminders: false
`

func TestParseCatalog(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f, err := parseCatalog(strings.NewReader(sampleCatalog), base)
	require.NoError(t, err)

	require.Len(t, f.Workouts, 2)
	require.Equal(t, domain.FitnessLevelBeginner, f.Workouts[1].FitnessLevel)
	require.True(t, f.Workouts[0].CreatedAt.Before(f.Workouts[1].CreatedAt))

	require.Len(t, f.Users, 2)
	ana := f.Users[0].toDomain()
	require.True(t, ana.Preferences.WorkoutReminders, "omitted preferences default to enabled")
	require.Equal(t, "Europe/Madrid", ana.Timezone)
	ben := f.Users[1].toDomain()
	require.False(t, ben.Preferences.WorkoutReminders)
	require.True(t, ben.Preferences.GoalMilestones)

	goal := f.Users[0].Goals[0].toDomain("u-ana")
	require.True(t, goal.ReadyToComplete())
}

func TestParseCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", "workouts:\n  - id: w\n    name: n\n    type: t\n    level: beginner\n"},
		{"bad level", "workouts:\n  - id: w\n    name: n\n    type: t\n    fitness_level: elite\n    duration_minutes: 10\n"},
		{"duplicate id", "workouts:\n  - {id: w, name: n, type: t, fitness_level: beginner, duration_minutes: 10}\n  - {id: w, name: n, type: t, fitness_level: beginner, duration_minutes: 10}\n"},
		{"zero duration", "workouts:\n  - {id: w, name: n, type: t, fitness_level: beginner}\n"},
		{"user without email", "users:\n  - {id: u, fitness_level: beginner}\n"},
		{"bad timezone", "users:\n  - {id: u, email: e, fitness_level: beginner, timezone: Mars/Olympus}\n"},
		{"goal without target", "users:\n  - {id: u, email: e, fitness_level: beginner, goals: [{id: g}]}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCatalog(strings.NewReader(tt.doc), time.Now())
			require.Error(t, err)
		})
	}
}

func TestParseCatalog_Empty(t *testing.T) {
	f, err := parseCatalog(strings.NewReader(""), time.Now())
	require.NoError(t, err)
	require.Empty(t, f.Workouts)
}

func TestSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	pool := testutil.OpenPGXPool(t, "seed_idempotent")
	require.NoError(t, postgres.Migrate(ctx, pool))
	store := postgres.New(pool)

	f, err := parseCatalog(strings.NewReader(sampleCatalog), time.Now().UTC())
	require.NoError(t, err)

	require.NoError(t, seed(ctx, store, f))
	require.NoError(t, seed(ctx, store, f))

	catalog, err := store.WorkoutsByLevel(ctx, domain.FitnessLevelBeginner)
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	require.Equal(t, "w-walk", catalog[0].ID)

	goals, err := store.ActiveGoals(ctx, "u-ana")
	require.NoError(t, err)
	require.Len(t, goals, 1)
}
