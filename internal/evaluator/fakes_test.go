package evaluator

import (
	"context"
	"time"

	"fittrack.io/notifier/internal/domain"
)

type fakeSessions struct {
	byUser map[string][]domain.WorkoutSession
	err    error
}

func (f fakeSessions) SessionsSince(_ context.Context, userID string, since time.Time) ([]domain.WorkoutSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.WorkoutSession
	for _, s := range f.byUser[userID] {
		if !s.Date.Before(since) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeCatalog []domain.Workout

func (f fakeCatalog) WorkoutsByLevel(_ context.Context, level domain.FitnessLevel) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, w := range f {
		if w.FitnessLevel == level {
			out = append(out, w)
		}
	}
	return out, nil
}

type fakeLogs struct {
	byUser map[string][]time.Time
}

func (f fakeLogs) HasNutritionLog(_ context.Context, userID string, from, to time.Time) (bool, error) {
	for _, d := range f.byUser[userID] {
		if !d.Before(from) && d.Before(to) {
			return true, nil
		}
	}
	return false, nil
}

// fakeGoals mimics the conditional update of the real store.
type fakeGoals struct {
	goals       map[string]*domain.Goal
	completeErr map[string]error
}

func newFakeGoals(goals ...domain.Goal) *fakeGoals {
	f := &fakeGoals{goals: map[string]*domain.Goal{}, completeErr: map[string]error{}}
	for i := range goals {
		g := goals[i]
		f.goals[g.ID] = &g
	}
	return f
}

func (f *fakeGoals) ActiveGoals(_ context.Context, userID string) ([]domain.Goal, error) {
	var out []domain.Goal
	for _, g := range f.goals {
		if g.UserID == userID && g.Status == domain.GoalStatusActive {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeGoals) CompleteGoal(_ context.Context, userID, goalID string, at time.Time) (bool, error) {
	if err := f.completeErr[goalID]; err != nil {
		return false, err
	}
	g, ok := f.goals[goalID]
	if !ok || g.UserID != userID || !g.ReadyToComplete() {
		return false, nil
	}
	g.Status = domain.GoalStatusCompleted
	g.CompletedAt = &at
	return true, nil
}
