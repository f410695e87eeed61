package visibility

import (
	"testing"
	"time"

	"homeground/internal/domain/models"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func tsp(s string) *time.Time {
	t := ts(s)
	return &t
}

func TestVisible(t *testing.T) {
	tests := []struct {
		name       string
		schedule   models.Schedule
		now        time.Time
		privileged bool
		want       bool
	}{
		{
			name:     "immediate is visible",
			schedule: models.Schedule{Visibility: models.VisibilityImmediate},
			now:      ts("2025-01-01T00:00:00Z"),
			want:     true,
		},
		{
			name:     "hidden is not visible",
			schedule: models.Schedule{Visibility: models.VisibilityHidden},
			now:      ts("2025-01-01T00:00:00Z"),
			want:     false,
		},
		{
			name:       "hidden visible to privileged viewer",
			schedule:   models.Schedule{Visibility: models.VisibilityHidden},
			now:        ts("2025-01-01T00:00:00Z"),
			privileged: true,
			want:       true,
		},
		{
			name: "scheduled in the past",
			schedule: models.Schedule{
				Visibility:  models.VisibilityScheduled,
				ScheduledAt: tsp("2024-12-01T00:00:00Z"),
			},
			now:  ts("2025-01-01T00:00:00Z"),
			want: true,
		},
		{
			name: "scheduled exactly at now is visible",
			schedule: models.Schedule{
				Visibility:  models.VisibilityScheduled,
				ScheduledAt: tsp("2025-01-01T00:00:00Z"),
			},
			now:  ts("2025-01-01T00:00:00Z"),
			want: true,
		},
		{
			name: "scheduled one second in the future",
			schedule: models.Schedule{
				Visibility:  models.VisibilityScheduled,
				ScheduledAt: tsp("2025-01-02T00:00:00Z"),
			},
			now:  ts("2025-01-01T23:59:59Z"),
			want: false,
		},
		{
			name: "scheduled future visible to privileged viewer",
			schedule: models.Schedule{
				Visibility:  models.VisibilityScheduled,
				ScheduledAt: tsp("2030-01-01T00:00:00Z"),
			},
			now:        ts("2025-01-01T00:00:00Z"),
			privileged: true,
			want:       true,
		},
		{
			name:     "malformed scheduled with nil timestamp fails closed",
			schedule: models.Schedule{Visibility: models.VisibilityScheduled},
			now:      ts("2025-01-01T00:00:00Z"),
			want:     false,
		},
		{
			name:     "unknown state fails closed",
			schedule: models.Schedule{Visibility: "published"},
			now:      ts("2025-01-01T00:00:00Z"),
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Visible(tt.schedule, tt.now, tt.privileged)
			if got != tt.want {
				t.Errorf("Visible() = %v, want %v", got, tt.want)
			}
			// Pure function: a second evaluation with identical inputs
			// must agree with the first.
			if again := Visible(tt.schedule, tt.now, tt.privileged); again != got {
				t.Errorf("second evaluation = %v, first = %v", again, got)
			}
		})
	}
}

func TestVisibleWindowed(t *testing.T) {
	window := models.Window{
		StartDatetime: ts("2025-06-01T00:00:00Z"),
		EndDatetime:   ts("2025-06-10T00:00:00Z"),
	}
	immediate := models.Schedule{Visibility: models.VisibilityImmediate}

	tests := []struct {
		name       string
		schedule   models.Schedule
		window     models.Window
		now        time.Time
		privileged bool
		want       bool
	}{
		{
			name:     "inside window",
			schedule: immediate,
			window:   window,
			now:      ts("2025-06-05T12:00:00Z"),
			want:     true,
		},
		{
			name:     "exactly at start is visible",
			schedule: immediate,
			window:   window,
			now:      ts("2025-06-01T00:00:00Z"),
			want:     true,
		},
		{
			name:     "exactly at end is still visible",
			schedule: immediate,
			window:   window,
			now:      ts("2025-06-10T00:00:00Z"),
			want:     true,
		},
		{
			name:     "one second past end",
			schedule: immediate,
			window:   window,
			now:      ts("2025-06-10T00:00:01Z"),
			want:     false,
		},
		{
			name:     "before start",
			schedule: immediate,
			window:   window,
			now:      ts("2025-05-31T23:59:59Z"),
			want:     false,
		},
		{
			name:     "window open but schedule hidden",
			schedule: models.Schedule{Visibility: models.VisibilityHidden},
			window:   window,
			now:      ts("2025-06-05T00:00:00Z"),
			want:     false,
		},
		{
			name: "window open but scheduled for later",
			schedule: models.Schedule{
				Visibility:  models.VisibilityScheduled,
				ScheduledAt: tsp("2025-06-08T00:00:00Z"),
			},
			window: window,
			now:    ts("2025-06-05T00:00:00Z"),
			want:   false,
		},
		{
			name: "scheduled open inside window",
			schedule: models.Schedule{
				Visibility:  models.VisibilityScheduled,
				ScheduledAt: tsp("2025-06-02T00:00:00Z"),
			},
			window: window,
			now:    ts("2025-06-05T00:00:00Z"),
			want:   true,
		},
		{
			name:       "outside window visible to privileged viewer",
			schedule:   immediate,
			window:     window,
			now:        ts("2025-07-01T00:00:00Z"),
			privileged: true,
			want:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleWindowed(tt.schedule, tt.window, tt.now, tt.privileged)
			if got != tt.want {
				t.Errorf("VisibleWindowed() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Moving now outside the window in either direction always yields
// false for non-privileged viewers, regardless of how far.
func TestWindowMonotonicity(t *testing.T) {
	window := models.Window{
		StartDatetime: ts("2025-06-01T00:00:00Z"),
		EndDatetime:   ts("2025-06-10T00:00:00Z"),
	}
	schedule := models.Schedule{Visibility: models.VisibilityImmediate}

	for _, offset := range []time.Duration{time.Second, time.Hour, 24 * time.Hour, 365 * 24 * time.Hour} {
		before := window.StartDatetime.Add(-offset)
		after := window.EndDatetime.Add(offset)

		if VisibleWindowed(schedule, window, before, false) {
			t.Errorf("visible %v before start", offset)
		}
		if VisibleWindowed(schedule, window, after, false) {
			t.Errorf("visible %v after end", offset)
		}
	}

	inside := ts("2025-06-05T00:00:00Z")
	if !VisibleWindowed(schedule, window, inside, false) {
		t.Error("not visible strictly inside window")
	}
}
