// Package domain holds the entities the reminder scheduler reads and writes.
//
// Import Path: fittrack.io/notifier/internal/domain
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned by stores when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// FitnessLevel is the ordinal user attribute used to filter workout recommendations.
type FitnessLevel string

const (
	FitnessLevelBeginner     FitnessLevel = "beginner"
	FitnessLevelIntermediate FitnessLevel = "intermediate"
	FitnessLevelAdvanced     FitnessLevel = "advanced"
)

// ParseFitnessLevel normalizes s and rejects unknown levels.
func ParseFitnessLevel(s string) (FitnessLevel, error) {
	switch lvl := FitnessLevel(strings.ToLower(strings.TrimSpace(s))); lvl {
	case FitnessLevelBeginner, FitnessLevelIntermediate, FitnessLevelAdvanced:
		return lvl, nil
	default:
		return "", fmt.Errorf("unknown fitness level %q", s)
	}
}

// Valid reports whether l is one of the known levels.
func (l FitnessLevel) Valid() bool {
	_, err := ParseFitnessLevel(string(l))
	return err == nil
}

// Preference names a notification preference flag on the user document.
type Preference string

const (
	PreferenceWorkoutReminders   Preference = "workout_reminders"
	PreferenceGoalMilestones     Preference = "goal_milestones"
	PreferenceNutritionReminders Preference = "nutrition_reminders"
)

// Preferences are the per-user notification opt-ins.
type Preferences struct {
	WorkoutReminders   bool `json:"workout_reminders" yaml:"workout_reminders"`
	GoalMilestones     bool `json:"goal_milestones" yaml:"goal_milestones"`
	NutritionReminders bool `json:"nutrition_reminders" yaml:"nutrition_reminders"`
}

// Enabled reports whether the given preference flag is on.
func (p Preferences) Enabled(pref Preference) bool {
	switch pref {
	case PreferenceWorkoutReminders:
		return p.WorkoutReminders
	case PreferenceGoalMilestones:
		return p.GoalMilestones
	case PreferenceNutritionReminders:
		return p.NutritionReminders
	default:
		return false
	}
}

// User is read-only from the scheduler's point of view.
type User struct {
	ID           string
	Name         string
	Email        string
	FitnessLevel FitnessLevel
	Preferences  Preferences
	// Timezone is an optional IANA zone name overriding the deployment zone.
	Timezone  string
	CreatedAt time.Time
}
