// Package evaluator decides, per user, whether a reminder or achievement
// notification is due.
//
// Evaluators never treat missing data (no sessions, empty catalog, no goals)
// as an error: they return no payloads.
//
// Import Path: fittrack.io/notifier/internal/evaluator
package evaluator

import (
	"context"
	"time"

	"fittrack.io/notifier/internal/domain"
	"fittrack.io/notifier/internal/notification"
)

// Evaluator maps (user, now) to the notifications to create. A nil or empty
// result means no action. Payloads may be returned together with an error
// when part of the evaluation already changed state; the caller must still
// write them.
type Evaluator interface {
	Evaluate(ctx context.Context, user domain.User, now time.Time) ([]notification.Params, error)
}

// SessionReader loads a user's workout history.
type SessionReader interface {
	// SessionsSince returns sessions dated at or after since, with
	// WorkoutType filled from the catalog.
	SessionsSince(ctx context.Context, userID string, since time.Time) ([]domain.WorkoutSession, error)
}

// CatalogReader loads catalog workouts for a fitness level, in a stable order.
type CatalogReader interface {
	WorkoutsByLevel(ctx context.Context, level domain.FitnessLevel) ([]domain.Workout, error)
}

// NutritionReader checks for a nutrition log in [from, to).
type NutritionReader interface {
	HasNutritionLog(ctx context.Context, userID string, from, to time.Time) (bool, error)
}

// GoalStore reads active goals and performs the completion transition.
type GoalStore interface {
	ActiveGoals(ctx context.Context, userID string) ([]domain.Goal, error)
	// CompleteGoal sets status=completed only if the goal is still active and
	// current_value >= target_value. It returns false when the condition no
	// longer holds.
	CompleteGoal(ctx context.Context, userID, goalID string, at time.Time) (bool, error)
}

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// DayWindow returns [midnight, next midnight) of now's calendar day in loc.
// Days are built from calendar fields so DST days are 23 or 25 hours long.
func DayWindow(now time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}
