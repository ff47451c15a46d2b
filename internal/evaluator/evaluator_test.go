package evaluator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDayWindow(t *testing.T) {
	t.Parallel()

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name      string
		now       time.Time
		loc       *time.Location
		wantStart time.Time
		wantHours float64
	}{
		{
			name:      "utc midday",
			now:       time.Date(2026, 5, 4, 12, 30, 0, 0, time.UTC),
			loc:       time.UTC,
			wantStart: time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
			wantHours: 24,
		},
		{
			name:      "utc instant that is still yesterday in new york",
			now:       time.Date(2026, 5, 4, 2, 0, 0, 0, time.UTC),
			loc:       ny,
			wantStart: time.Date(2026, 5, 3, 0, 0, 0, 0, ny),
			wantHours: 24,
		},
		{
			name:      "spring forward day is 23 hours",
			now:       time.Date(2026, 3, 8, 15, 0, 0, 0, ny),
			loc:       ny,
			wantStart: time.Date(2026, 3, 8, 0, 0, 0, 0, ny),
			wantHours: 23,
		},
		{
			name:      "nil location means utc",
			now:       time.Date(2026, 5, 4, 23, 59, 59, 0, time.UTC),
			loc:       nil,
			wantStart: time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
			wantHours: 24,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DayWindow(tt.now, tt.loc)
			require.True(t, w.Start.Equal(tt.wantStart), "start = %s, want %s", w.Start, tt.wantStart)
			require.Equal(t, tt.wantHours, w.End.Sub(w.Start).Hours())
			require.True(t, w.Contains(tt.now))
			require.False(t, w.Contains(w.End))
			require.True(t, w.Contains(w.Start))
		})
	}
}
