package domain

import (
	"fmt"
	"time"
)

// NotificationType categorizes a notification for the client.
type NotificationType string

const (
	NotificationWorkout   NotificationType = "workout"
	NotificationGoal      NotificationType = "goal"
	NotificationNutrition NotificationType = "nutrition"
	NotificationSystem    NotificationType = "system"
)

// Valid reports whether t is a known notification type.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationWorkout, NotificationGoal, NotificationNutrition, NotificationSystem:
		return true
	default:
		return false
	}
}

// Notification is append-only from the scheduler. Only the read API flips Read.
type Notification struct {
	ID         string
	UserID     string
	Type       NotificationType
	Title      string
	Message    string
	Read       bool
	ActionLink string
	RelatedID  string
	// DedupeKey, when set, is unique across all notifications.
	DedupeKey string
	CreatedAt time.Time
}

// DailyDedupeKey builds the idempotency key for a once-per-day reminder.
func DailyDedupeKey(t NotificationType, userID string, day time.Time) string {
	return fmt.Sprintf("%s:%s:%s", t, userID, day.Format(time.DateOnly))
}

// GoalDedupeKey builds the idempotency key for one completion of a goal.
// completedAt is part of the key so a goal reopened and reached again
// announces its new completion.
func GoalDedupeKey(goalID string, completedAt time.Time) string {
	return "goal:" + goalID + ":" + completedAt.UTC().Format(time.RFC3339Nano)
}
