package domain

import "time"

// Workout is a catalog entry.
type Workout struct {
	ID              string       `yaml:"id"`
	Name            string       `yaml:"name"`
	Type            string       `yaml:"type"`
	FitnessLevel    FitnessLevel `yaml:"fitness_level"`
	DurationMinutes int          `yaml:"duration_minutes"`
	CreatedAt       time.Time    `yaml:"-"`
}

// WorkoutSession is an immutable record of a completed workout.
// WorkoutType is denormalized from the catalog when the session is loaded.
type WorkoutSession struct {
	ID              string
	UserID          string
	WorkoutID       string
	WorkoutType     string
	Date            time.Time
	DurationMinutes int
}

// NutritionLog is unique per user per calendar day.
type NutritionLog struct {
	ID       string
	UserID   string
	Date     time.Time
	Calories int
}
