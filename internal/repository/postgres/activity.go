package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"fittrack.io/notifier/internal/domain"
)

// SessionsSince returns the user's sessions dated at or after since, oldest
// first, with the workout type joined from the catalog.
func (s *Store) SessionsSince(ctx context.Context, userID string, since time.Time) ([]domain.WorkoutSession, error) {
	rows, err := s.db.Query(ctx, `
SELECT s.id, s.user_id, COALESCE(s.workout_id, ''), COALESCE(w.type, ''), s.date, s.duration_minutes
FROM workout_sessions s
LEFT JOIN workouts w ON w.id = s.workout_id
WHERE s.user_id = $1 AND s.date >= $2
ORDER BY s.date, s.id`, userID, since)
	if err != nil {
		return nil, fmt.Errorf("query sessions for user %s: %w", userID, err)
	}
	sessions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.WorkoutSession, error) {
		var ws domain.WorkoutSession
		err := row.Scan(&ws.ID, &ws.UserID, &ws.WorkoutID, &ws.WorkoutType, &ws.Date, &ws.DurationMinutes)
		return ws, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan sessions for user %s: %w", userID, err)
	}
	return sessions, nil
}

// WorkoutsByLevel returns the catalog for level in creation order.
func (s *Store) WorkoutsByLevel(ctx context.Context, level domain.FitnessLevel) ([]domain.Workout, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, name, type, fitness_level, duration_minutes, created_at
FROM workouts
WHERE fitness_level = $1
ORDER BY created_at, id`, string(level))
	if err != nil {
		return nil, fmt.Errorf("query %s workouts: %w", level, err)
	}
	workouts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Workout, error) {
		var (
			w   domain.Workout
			lvl string
		)
		err := row.Scan(&w.ID, &w.Name, &w.Type, &lvl, &w.DurationMinutes, &w.CreatedAt)
		w.FitnessLevel = domain.FitnessLevel(lvl)
		return w, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s workouts: %w", level, err)
	}
	return workouts, nil
}

// HasNutritionLog reports whether the user logged nutrition on any calendar
// day in [from, to). Both bounds are read as dates in their own location.
func (s *Store) HasNutritionLog(ctx context.Context, userID string, from, to time.Time) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
SELECT EXISTS (
	SELECT 1 FROM nutrition_logs
	WHERE user_id = $1 AND date >= $2::date AND date < $3::date
)`, userID, from.Format(time.DateOnly), to.Format(time.DateOnly)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check nutrition log for user %s: %w", userID, err)
	}
	return exists, nil
}

// UpsertWorkouts writes catalog entries in one batch and returns how many
// rows were inserted or updated.
func (s *Store) UpsertWorkouts(ctx context.Context, workouts []domain.Workout) (int, error) {
	if len(workouts) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	for _, w := range workouts {
		batch.Queue(`
INSERT INTO workouts (id, name, type, fitness_level, duration_minutes, created_at)
VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()))
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	type = EXCLUDED.type,
	fitness_level = EXCLUDED.fitness_level,
	duration_minutes = EXCLUDED.duration_minutes`,
			w.ID, w.Name, w.Type, string(w.FitnessLevel), w.DurationMinutes, nullTime(w.CreatedAt))
	}

	br := s.db.SendBatch(ctx, batch)
	defer br.Close()

	n := 0
	for _, w := range workouts {
		tag, err := br.Exec()
		if err != nil {
			return n, fmt.Errorf("upsert workout %s: %w", w.ID, err)
		}
		n += int(tag.RowsAffected())
	}
	return n, nil
}

// InsertSession records a completed workout session.
func (s *Store) InsertSession(ctx context.Context, ws domain.WorkoutSession) error {
	_, err := s.db.Exec(ctx, `
INSERT INTO workout_sessions (id, user_id, workout_id, date, duration_minutes)
VALUES ($1, $2, NULLIF($3, ''), $4, $5)`,
		ws.ID, ws.UserID, ws.WorkoutID, ws.Date, ws.DurationMinutes)
	if err != nil {
		return fmt.Errorf("insert session %s: %w", ws.ID, err)
	}
	return nil
}

// UpsertNutritionLog records the user's log for the calendar day of l.Date.
func (s *Store) UpsertNutritionLog(ctx context.Context, l domain.NutritionLog) error {
	_, err := s.db.Exec(ctx, `
INSERT INTO nutrition_logs (id, user_id, date, calories)
VALUES ($1, $2, $3::date, $4)
ON CONFLICT (user_id, date) DO UPDATE SET calories = EXCLUDED.calories`,
		l.ID, l.UserID, l.Date.Format(time.DateOnly), l.Calories)
	if err != nil {
		return fmt.Errorf("upsert nutrition log for user %s: %w", l.UserID, err)
	}
	return nil
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
