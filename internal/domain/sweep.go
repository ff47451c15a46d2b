package domain

import "fmt"

// SweepKind identifies one of the daily scheduled sweeps.
type SweepKind string

const (
	SweepWorkoutReminder   SweepKind = "workout_reminder"
	SweepNutritionReminder SweepKind = "nutrition_reminder"
	SweepGoalAchievement   SweepKind = "goal_achievement"
)

// SweepKinds lists every sweep in trigger order.
func SweepKinds() []SweepKind {
	return []SweepKind{SweepWorkoutReminder, SweepNutritionReminder, SweepGoalAchievement}
}

// ParseSweepKind rejects unknown sweep names.
func ParseSweepKind(s string) (SweepKind, error) {
	for _, k := range SweepKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sweep kind %q", s)
}

// Preference returns the opt-in flag that filters the sweep's candidates.
func (k SweepKind) Preference() Preference {
	switch k {
	case SweepWorkoutReminder:
		return PreferenceWorkoutReminders
	case SweepNutritionReminder:
		return PreferenceNutritionReminders
	case SweepGoalAchievement:
		return PreferenceGoalMilestones
	default:
		return ""
	}
}
