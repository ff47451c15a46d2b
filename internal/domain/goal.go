package domain

import "time"

// GoalStatus is the lifecycle state of a profile goal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusAbandoned GoalStatus = "abandoned"
)

// Goal is a target embedded in the user's profile.
type Goal struct {
	ID           string
	UserID       string
	Type         string
	TargetValue  float64
	CurrentValue float64
	Status       GoalStatus
	TargetDate   *time.Time
	CompletedAt  *time.Time
}

// Reached reports whether the goal has met its target.
func (g Goal) Reached() bool {
	return g.CurrentValue >= g.TargetValue
}

// ReadyToComplete reports whether g is active and has reached its target,
// i.e. whether the achievement transition should fire.
func (g Goal) ReadyToComplete() bool {
	return g.Status == GoalStatusActive && g.Reached()
}
