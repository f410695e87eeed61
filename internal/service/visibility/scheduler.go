// Package visibility decides whether scheduled project content is
// visible to a viewer at a given instant.
//
// Evaluation is a pure function of the item's schedule fields, the
// evaluation time and the viewer's privilege. The clock is always a
// parameter, never read internally, and every item in a collection is
// evaluated independently.
package visibility

import (
	"time"

	"homeground/internal/domain/models"
)

// Visible evaluates a non-windowed item (a project update).
//
// Privileged viewers (item owner, project owner, admin) see everything
// unconditionally so they can preview and manage not-yet-public
// content. For everyone else the schedule state decides: hidden is
// never visible, immediate always is, and scheduled becomes visible
// once ScheduledAt passes (inclusive). A scheduled item with a nil
// ScheduledAt is malformed and fails closed.
func Visible(s models.Schedule, now time.Time, privileged bool) bool {
	if privileged {
		return true
	}
	return scheduleOpen(s, now)
}

// VisibleWindowed evaluates a windowed item (offer or event): the
// schedule state must be open AND now must fall inside the closed
// interval [StartDatetime, EndDatetime]. Both bounds are inclusive.
func VisibleWindowed(s models.Schedule, w models.Window, now time.Time, privileged bool) bool {
	if privileged {
		return true
	}
	if !scheduleOpen(s, now) {
		return false
	}
	return !now.Before(w.StartDatetime) && !now.After(w.EndDatetime)
}

func scheduleOpen(s models.Schedule, now time.Time) bool {
	switch s.Visibility {
	case models.VisibilityImmediate:
		return true
	case models.VisibilityScheduled:
		// nil ScheduledAt in the scheduled state fails closed.
		return s.ScheduledAt != nil && !s.ScheduledAt.After(now)
	default:
		// hidden, and any unknown state, fails closed.
		return false
	}
}
