package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"fittrack.io/notifier/internal/domain"
)

// ActiveGoals returns the user's goals with status active.
func (s *Store) ActiveGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, user_id, type, target_value, current_value, status, target_date, completed_at
FROM goals
WHERE user_id = $1 AND status = 'active'
ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query active goals for user %s: %w", userID, err)
	}
	goals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Goal, error) {
		var (
			g      domain.Goal
			status string
		)
		err := row.Scan(&g.ID, &g.UserID, &g.Type, &g.TargetValue, &g.CurrentValue, &status, &g.TargetDate, &g.CompletedAt)
		g.Status = domain.GoalStatus(status)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan active goals for user %s: %w", userID, err)
	}
	return goals, nil
}

// CompleteGoal moves an active goal whose current value reached its target
// to completed. The condition is re-checked in the UPDATE, so of two
// concurrent callers at most one gets true.
func (s *Store) CompleteGoal(ctx context.Context, userID, goalID string, at time.Time) (bool, error) {
	tag, err := s.db.Exec(ctx, `
UPDATE goals
SET status = 'completed', completed_at = $3, updated_at = $3
WHERE id = $1 AND user_id = $2 AND status = 'active' AND current_value >= target_value`,
		goalID, userID, at)
	if err != nil {
		return false, fmt.Errorf("complete goal %s: %w", goalID, err)
	}
	return tag.RowsAffected() == 1, nil
}

// UpsertGoal inserts g or overwrites the goal with the same ID.
func (s *Store) UpsertGoal(ctx context.Context, g domain.Goal) error {
	status := g.Status
	if status == "" {
		status = domain.GoalStatusActive
	}
	_, err := s.db.Exec(ctx, `
INSERT INTO goals (id, user_id, type, target_value, current_value, status, target_date, completed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
	type = EXCLUDED.type,
	target_value = EXCLUDED.target_value,
	current_value = EXCLUDED.current_value,
	status = EXCLUDED.status,
	target_date = EXCLUDED.target_date,
	completed_at = EXCLUDED.completed_at,
	updated_at = now()`,
		g.ID, g.UserID, g.Type, g.TargetValue, g.CurrentValue, string(status), g.TargetDate, g.CompletedAt)
	if err != nil {
		return fmt.Errorf("upsert goal %s: %w", g.ID, err)
	}
	return nil
}
