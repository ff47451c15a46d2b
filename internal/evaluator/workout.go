package evaluator

import (
	"context"
	"fmt"
	"time"

	"fittrack.io/notifier/internal/domain"
	"fittrack.io/notifier/internal/notification"
)

// DefaultRecentWindow is the trailing lookback for "recently performed" types.
const DefaultRecentWindow = 7 * 24 * time.Hour

// WorkoutReminder recommends a workout the user has not done recently.
type WorkoutReminder struct {
	sessions SessionReader
	catalog  CatalogReader
	window   time.Duration
	zones    *zoneCache
}

// NewWorkoutReminder creates the evaluator. Non-positive window falls back to
// seven days; nil loc means UTC.
func NewWorkoutReminder(sessions SessionReader, catalog CatalogReader, window time.Duration, loc *time.Location) *WorkoutReminder {
	if window <= 0 {
		window = DefaultRecentWindow
	}
	return &WorkoutReminder{sessions: sessions, catalog: catalog, window: window, zones: newZoneCache(loc)}
}

// Evaluate returns at most one reminder, recommending the first catalog
// workout whose type is not among the types done in the window.
//
// A session inside the user's current day suppresses the reminder
// altogether, so a session today never shows up as a "recent" type in a
// recommendation; only sessions on earlier days of the window do.
func (e *WorkoutReminder) Evaluate(ctx context.Context, user domain.User, now time.Time) ([]notification.Params, error) {
	today := DayWindow(now, e.zones.location(user))
	since := now.Add(-e.window)

	sessions, err := e.sessions.SessionsSince(ctx, user.ID, since)
	if err != nil {
		return nil, fmt.Errorf("load sessions since %s: %w", since.Format(time.RFC3339), err)
	}
	if trainedIn(sessions, today) {
		return nil, nil
	}

	catalog, err := e.catalog.WorkoutsByLevel(ctx, user.FitnessLevel)
	if err != nil {
		return nil, fmt.Errorf("load %s workouts: %w", user.FitnessLevel, err)
	}

	recent := RecentWorkoutTypes(sessions, since)
	pick, ok := PickRecommendation(catalog, recent)
	if !ok {
		return nil, nil
	}

	var msg string
	if len(recent) == 0 {
		msg = fmt.Sprintf("You haven't logged a workout in the last %d days. Ease back in with %s.",
			windowDays(e.window), pick.Name)
	} else {
		msg = fmt.Sprintf("Mix it up today with %s, a %s workout you haven't done this week.", pick.Name, pick.Type)
	}

	return []notification.Params{{
		RecipientID: user.ID,
		Type:        domain.NotificationWorkout,
		Title:       "Time for today's workout",
		Message:     msg,
		ActionLink:  "/workouts/" + pick.ID,
		RelatedID:   pick.ID,
		DedupeKey:   domain.DailyDedupeKey(domain.NotificationWorkout, user.ID, today.Start),
	}}, nil
}

// RecentWorkoutTypes returns the set of workout types performed at or after
// since. Sessions with an unknown type are ignored.
func RecentWorkoutTypes(sessions []domain.WorkoutSession, since time.Time) map[string]struct{} {
	types := make(map[string]struct{})
	for _, s := range sessions {
		if s.WorkoutType == "" || s.Date.Before(since) {
			continue
		}
		types[s.WorkoutType] = struct{}{}
	}
	return types
}

// PickRecommendation returns the first catalog workout whose type is not in
// recent, falling back to the first workout at all. ok is false only for an
// empty catalog.
func PickRecommendation(catalog []domain.Workout, recent map[string]struct{}) (domain.Workout, bool) {
	if len(catalog) == 0 {
		return domain.Workout{}, false
	}
	for _, w := range catalog {
		if _, done := recent[w.Type]; !done {
			return w, true
		}
	}
	return catalog[0], true
}

func trainedIn(sessions []domain.WorkoutSession, day Window) bool {
	for _, s := range sessions {
		if day.Contains(s.Date) {
			return true
		}
	}
	return false
}

func windowDays(d time.Duration) int {
	days := int(d / (24 * time.Hour))
	if days < 1 {
		return 1
	}
	return days
}

var _ Evaluator = (*WorkoutReminder)(nil)
