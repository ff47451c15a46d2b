// Package jobs defines the River job types that drive notification sweeps
// and inbox maintenance.
//
// Import Path: fittrack.io/notifier/internal/jobs
package jobs

import (
	"fmt"
	"strings"
	"time"

	"github.com/riverqueue/river"
	"github.com/robfig/cron/v3"
)

// ParseSchedule parses a five-field cron expression evaluated in loc.
// An expression that already carries a CRON_TZ= or TZ= prefix keeps it.
func ParseSchedule(expr string, loc *time.Location) (river.PeriodicSchedule, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty cron expression")
	}
	if loc != nil && !strings.HasPrefix(expr, "CRON_TZ=") && !strings.HasPrefix(expr, "TZ=") {
		expr = "CRON_TZ=" + loc.String() + " " + expr
	}
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("parse cron %q: %w", expr, err)
	}
	return schedule, nil
}
