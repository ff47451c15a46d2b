package evaluator

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"fittrack.io/notifier/internal/domain"
	"fittrack.io/notifier/internal/notification"
)

// GoalAchievement completes goals that reached their target and announces
// each completion once.
type GoalAchievement struct {
	goals GoalStore
}

// NewGoalAchievement creates the evaluator.
func NewGoalAchievement(goals GoalStore) *GoalAchievement {
	return &GoalAchievement{goals: goals}
}

// Evaluate transitions every active goal with current >= target to completed
// and returns one payload per transition it performed. Completed and
// abandoned goals never fire. A goal whose conditional update loses a race
// (edited concurrently, or completed elsewhere) is skipped.
//
// A failure on one goal does not stop the others; payloads for the goals
// already completed are returned alongside the joined error.
func (e *GoalAchievement) Evaluate(ctx context.Context, user domain.User, now time.Time) ([]notification.Params, error) {
	goals, err := e.goals.ActiveGoals(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load active goals: %w", err)
	}

	var (
		out  []notification.Params
		errs []error
	)
	for _, g := range goals {
		if !g.ReadyToComplete() {
			continue
		}
		ok, err := e.goals.CompleteGoal(ctx, user.ID, g.ID, now)
		if err != nil {
			errs = append(errs, fmt.Errorf("complete goal %s: %w", g.ID, err))
			continue
		}
		if !ok {
			continue
		}
		out = append(out, achievementParams(user.ID, g, now))
	}
	return out, errors.Join(errs...)
}

func achievementParams(userID string, g domain.Goal, completedAt time.Time) notification.Params {
	return notification.Params{
		RecipientID: userID,
		Type:        domain.NotificationGoal,
		Title:       "Goal achieved!",
		Message: fmt.Sprintf("You reached your %s goal of %s. Great work!",
			goalLabel(g.Type), strconv.FormatFloat(g.TargetValue, 'f', -1, 64)),
		ActionLink: "/profile/goals",
		RelatedID:  g.ID,
		DedupeKey:  domain.GoalDedupeKey(g.ID, completedAt),
	}
}

func goalLabel(t string) string {
	if t == "" {
		return "fitness"
	}
	return t
}

var _ Evaluator = (*GoalAchievement)(nil)
