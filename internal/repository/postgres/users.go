package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"fittrack.io/notifier/internal/domain"
)

const userColumns = `id, name, email, fitness_level, workout_reminders, goal_milestones,
	nutrition_reminders, timezone, created_at`

// preferenceColumns maps each opt-in preference to its column. Only these
// names are ever interpolated into SQL.
var preferenceColumns = map[domain.Preference]string{
	domain.PreferenceWorkoutReminders:   "workout_reminders",
	domain.PreferenceGoalMilestones:     "goal_milestones",
	domain.PreferenceNutritionReminders: "nutrition_reminders",
}

func scanUser(row pgx.CollectableRow) (domain.User, error) {
	var (
		u     domain.User
		level string
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &level,
		&u.Preferences.WorkoutReminders, &u.Preferences.GoalMilestones, &u.Preferences.NutritionReminders,
		&u.Timezone, &u.CreatedAt)
	u.FitnessLevel = domain.FitnessLevel(level)
	return u, err
}

// UsersWithPreference returns every user who opted in to pref, ordered by ID.
func (s *Store) UsersWithPreference(ctx context.Context, pref domain.Preference) ([]domain.User, error) {
	col, ok := preferenceColumns[pref]
	if !ok {
		return nil, fmt.Errorf("unknown preference %q", pref)
	}
	rows, err := s.db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+col+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query users with %s: %w", pref, err)
	}
	users, err := pgx.CollectRows(rows, scanUser)
	if err != nil {
		return nil, fmt.Errorf("scan users with %s: %w", pref, err)
	}
	return users, nil
}

// GetUser loads one user. It returns domain.ErrNotFound when absent.
func (s *Store) GetUser(ctx context.Context, id string) (domain.User, error) {
	rows, err := s.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("query user %s: %w", id, err)
	}
	u, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("scan user %s: %w", id, err)
	}
	return u, nil
}

// ResolveAudience returns the IDs of the users an announcement targets.
// Unknown IDs in a users audience are dropped.
func (s *Store) ResolveAudience(ctx context.Context, a domain.Audience) ([]string, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	var (
		rows pgx.Rows
		err  error
	)
	switch a.Type {
	case domain.AudienceAll:
		rows, err = s.db.Query(ctx, `SELECT id FROM users ORDER BY id`)
	case domain.AudienceFitnessLevel:
		rows, err = s.db.Query(ctx, `SELECT id FROM users WHERE fitness_level = $1 ORDER BY id`, string(a.FitnessLevel))
	case domain.AudienceUsers:
		rows, err = s.db.Query(ctx, `SELECT id FROM users WHERE id = ANY($1) ORDER BY id`, a.UserIDs)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve %s audience: %w", a.Type, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan %s audience: %w", a.Type, err)
	}
	return ids, nil
}

// UpsertUser inserts u or updates the existing row with the same ID.
func (s *Store) UpsertUser(ctx context.Context, u domain.User) error {
	_, err := s.db.Exec(ctx, `
INSERT INTO users (id, name, email, fitness_level, workout_reminders, goal_milestones,
	nutrition_reminders, timezone, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, now()))
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	email = EXCLUDED.email,
	fitness_level = EXCLUDED.fitness_level,
	workout_reminders = EXCLUDED.workout_reminders,
	goal_milestones = EXCLUDED.goal_milestones,
	nutrition_reminders = EXCLUDED.nutrition_reminders,
	timezone = EXCLUDED.timezone`,
		u.ID, u.Name, u.Email, string(u.FitnessLevel),
		u.Preferences.WorkoutReminders, u.Preferences.GoalMilestones, u.Preferences.NutritionReminders,
		u.Timezone, nullTime(u.CreatedAt))
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", u.ID, err)
	}
	return nil
}
