package models

import (
	"fmt"
	"time"
)

// ScheduleVisibility is the author-controlled schedule state of a
// project content item. The state is set at creation and changed only
// by an explicit update from the owner or an admin; nothing transitions
// it automatically. Only the visibility outcome changes as the clock
// advances past ScheduledAt.
type ScheduleVisibility string

const (
	VisibilityImmediate ScheduleVisibility = "immediate"
	VisibilityScheduled ScheduleVisibility = "scheduled"
	VisibilityHidden    ScheduleVisibility = "hidden"
)

// ParseScheduleVisibility validates a stored visibility string.
func ParseScheduleVisibility(s string) (ScheduleVisibility, error) {
	switch ScheduleVisibility(s) {
	case VisibilityImmediate, VisibilityScheduled, VisibilityHidden:
		return ScheduleVisibility(s), nil
	}
	return "", fmt.Errorf("unknown schedule visibility %q", s)
}

// Schedule carries the visibility state shared by every project content
// item. ScheduledAt is meaningful only in the scheduled state; in the
// immediate and hidden states it is ignored.
type Schedule struct {
	Visibility  ScheduleVisibility `json:"schedule_visibility"`
	ScheduledAt *time.Time         `json:"scheduled_at,omitempty"`
}

// Window is the closed display interval [Start, End] carried by offers
// and events. End must be strictly after Start; both bounds are
// inclusive when evaluated.
type Window struct {
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
}

// ProjectUpdate is a progress note on a project. Updates have no
// display window; once visible they stay visible.
type ProjectUpdate struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	CreatedBy string    `json:"-"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Schedule  Schedule  `json:"schedule"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectOffer is a time-boxed promotion on a project.
type ProjectOffer struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	CreatedBy   string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Terms       string    `json:"terms,omitempty"`
	Schedule    Schedule  `json:"schedule"`
	Window      Window    `json:"window"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectEvent is a time-boxed happening (open house, launch) on a
// project.
type ProjectEvent struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	CreatedBy   string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Venue       string    `json:"venue,omitempty"`
	Schedule    Schedule  `json:"schedule"`
	Window      Window    `json:"window"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
