package evaluator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fittrack.io/notifier/internal/domain"
)

var evalNow = time.Date(2026, 4, 15, 8, 0, 0, 0, time.UTC)

func intermediateUser() domain.User {
	return domain.User{
		ID:           "u-1",
		FitnessLevel: domain.FitnessLevelIntermediate,
		Preferences:  domain.Preferences{WorkoutReminders: true},
	}
}

func mixedCatalog() fakeCatalog {
	return fakeCatalog{
		{ID: "w-strength", Name: "Full Body Strength", Type: "strength", FitnessLevel: domain.FitnessLevelIntermediate},
		{ID: "w-cardio", Name: "Tempo Run", Type: "cardio", FitnessLevel: domain.FitnessLevelIntermediate},
		{ID: "w-hiit", Name: "20 Minute HIIT", Type: "hiit", FitnessLevel: domain.FitnessLevelIntermediate},
		{ID: "w-yoga-beg", Name: "Gentle Yoga", Type: "yoga", FitnessLevel: domain.FitnessLevelBeginner},
	}
}

func TestWorkoutReminder_PrefersUnseenType(t *testing.T) {
	t.Parallel()

	sessions := fakeSessions{byUser: map[string][]domain.WorkoutSession{
		"u-1": {
			{UserID: "u-1", WorkoutID: "w-strength", WorkoutType: "strength", Date: evalNow.AddDate(0, 0, -2)},
			{UserID: "u-1", WorkoutID: "w-cardio", WorkoutType: "cardio", Date: evalNow.AddDate(0, 0, -4)},
		},
	}}
	e := NewWorkoutReminder(sessions, mixedCatalog(), 0, time.UTC)

	got, err := e.Evaluate(context.Background(), intermediateUser(), evalNow)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "w-hiit", got[0].RelatedID)
	require.Equal(t, domain.NotificationWorkout, got[0].Type)
	require.Equal(t, "/workouts/w-hiit", got[0].ActionLink)
	require.Equal(t, "workout:u-1:2026-04-15", got[0].DedupeKey)
	require.Contains(t, got[0].Message, "20 Minute HIIT")
}

func TestWorkoutReminder_FallsBackWhenEveryTypeIsRecent(t *testing.T) {
	t.Parallel()

	sessions := fakeSessions{byUser: map[string][]domain.WorkoutSession{
		"u-1": {
			{WorkoutType: "strength", Date: evalNow.AddDate(0, 0, -1)},
			{WorkoutType: "cardio", Date: evalNow.AddDate(0, 0, -2)},
			{WorkoutType: "hiit", Date: evalNow.AddDate(0, 0, -3)},
		},
	}}
	e := NewWorkoutReminder(sessions, mixedCatalog(), 7*24*time.Hour, time.UTC)

	got, err := e.Evaluate(context.Background(), intermediateUser(), evalNow)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "w-strength", got[0].RelatedID, "falls back to any workout of the user's level")
}

func TestWorkoutReminder_NoRecentSessions(t *testing.T) {
	t.Parallel()

	old := fakeSessions{byUser: map[string][]domain.WorkoutSession{
		"u-1": {{WorkoutType: "strength", Date: evalNow.AddDate(0, 0, -10)}},
	}}
	e := NewWorkoutReminder(old, mixedCatalog(), 7*24*time.Hour, time.UTC)

	got, err := e.Evaluate(context.Background(), intermediateUser(), evalNow)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "w-strength", got[0].RelatedID, "a session outside the window does not count")
	require.Contains(t, got[0].Message, "last 7 days")
}

func TestWorkoutReminder_EmptyCatalogIsNoAction(t *testing.T) {
	t.Parallel()

	e := NewWorkoutReminder(fakeSessions{}, mixedCatalog(), 0, time.UTC)
	user := intermediateUser()
	user.FitnessLevel = domain.FitnessLevelAdvanced

	got, err := e.Evaluate(context.Background(), user, evalNow)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestWorkoutReminder_AlreadyTrainedToday(t *testing.T) {
	t.Parallel()

	sessions := fakeSessions{byUser: map[string][]domain.WorkoutSession{
		"u-1": {{WorkoutType: "cardio", Date: evalNow.Add(-30 * time.Minute)}},
	}}
	e := NewWorkoutReminder(sessions, mixedCatalog(), 0, time.UTC)

	got, err := e.Evaluate(context.Background(), intermediateUser(), evalNow)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestWorkoutReminder_StoreError(t *testing.T) {
	t.Parallel()

	e := NewWorkoutReminder(fakeSessions{err: errors.New("timeout")}, mixedCatalog(), 0, time.UTC)

	_, err := e.Evaluate(context.Background(), intermediateUser(), evalNow)
	require.ErrorContains(t, err, "timeout")
}

func TestRecentWorkoutTypes(t *testing.T) {
	t.Parallel()

	since := evalNow.AddDate(0, 0, -7)
	got := RecentWorkoutTypes([]domain.WorkoutSession{
		{WorkoutType: "strength", Date: evalNow.AddDate(0, 0, -1)},
		{WorkoutType: "strength", Date: evalNow.AddDate(0, 0, -2)},
		{WorkoutType: "cardio", Date: since},
		{WorkoutType: "yoga", Date: since.Add(-time.Second)},
		{WorkoutType: "", Date: evalNow},
	}, since)

	require.Len(t, got, 2)
	require.Contains(t, got, "strength")
	require.Contains(t, got, "cardio")
}

func TestPickRecommendation(t *testing.T) {
	t.Parallel()

	catalog := []domain.Workout{{ID: "a", Type: "strength"}, {ID: "b", Type: "cardio"}}

	_, ok := PickRecommendation(nil, nil)
	require.False(t, ok)

	w, ok := PickRecommendation(catalog, map[string]struct{}{"strength": {}})
	require.True(t, ok)
	require.Equal(t, "b", w.ID)

	w, ok = PickRecommendation(catalog, map[string]struct{}{"strength": {}, "cardio": {}})
	require.True(t, ok)
	require.Equal(t, "a", w.ID)
}
