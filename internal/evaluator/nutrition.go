package evaluator

import (
	"context"
	"fmt"
	"time"

	"fittrack.io/notifier/internal/domain"
	"fittrack.io/notifier/internal/notification"
)

// NutritionReminder nudges users who have not logged food today.
type NutritionReminder struct {
	logs  NutritionReader
	zones *zoneCache
}

// NewNutritionReminder creates the evaluator. nil loc means UTC.
func NewNutritionReminder(logs NutritionReader, loc *time.Location) *NutritionReminder {
	return &NutritionReminder{logs: logs, zones: newZoneCache(loc)}
}

// Evaluate returns a reminder unless a log exists for the user's current day.
// Logs on other days do not count.
func (e *NutritionReminder) Evaluate(ctx context.Context, user domain.User, now time.Time) ([]notification.Params, error) {
	today := DayWindow(now, e.zones.location(user))

	logged, err := e.logs.HasNutritionLog(ctx, user.ID, today.Start, today.End)
	if err != nil {
		return nil, fmt.Errorf("check nutrition log for %s: %w", today.Start.Format(time.DateOnly), err)
	}
	if logged {
		return nil, nil
	}

	return []notification.Params{{
		RecipientID: user.ID,
		Type:        domain.NotificationNutrition,
		Title:       "Don't forget to log your meals",
		Message:     "You haven't logged any meals today. Logging keeps your nutrition goals on track.",
		ActionLink:  "/nutrition",
		DedupeKey:   domain.DailyDedupeKey(domain.NotificationNutrition, user.ID, today.Start),
	}}, nil
}

var _ Evaluator = (*NutritionReminder)(nil)
