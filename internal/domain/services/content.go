package services

import (
	"context"
	"time"

	"homeground/internal/domain/models"
)

// ScheduleInput carries the author-controlled visibility fields.
// Mutations replace these fields wholesale; there is no partial patch
// of the schedule state.
type ScheduleInput struct {
	Visibility  string     `json:"schedule_visibility"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

// WindowInput carries the display window for offers and events.
// EndDatetime must be strictly after StartDatetime.
type WindowInput struct {
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
}

// CreateUpdateRequest creates a project update.
type CreateUpdateRequest struct {
	Title    string        `json:"title"`
	Body     string        `json:"body"`
	Schedule ScheduleInput `json:"schedule"`
}

// ReplaceUpdateRequest replaces a project update's content and
// visibility fields.
type ReplaceUpdateRequest = CreateUpdateRequest

// CreateOfferRequest creates a project offer.
type CreateOfferRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Terms       string        `json:"terms"`
	Schedule    ScheduleInput `json:"schedule"`
	Window      WindowInput   `json:"window"`
}

// ReplaceOfferRequest replaces a project offer.
type ReplaceOfferRequest = CreateOfferRequest

// CreateEventRequest creates a project event.
type CreateEventRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Venue       string        `json:"venue"`
	Schedule    ScheduleInput `json:"schedule"`
	Window      WindowInput   `json:"window"`
}

// ReplaceEventRequest replaces a project event.
type ReplaceEventRequest = CreateEventRequest

// ContentService manages the scheduled content items on a project
// microsite. Public list operations pass every row through the
// visibility scheduler independently; privileged viewers (the item
// owner, the project owner, or an admin) see everything so they can
// preview not-yet-public content.
type ContentService interface {
	ListUpdates(ctx context.Context, projectID string) ([]models.ProjectUpdate, error)
	CreateUpdate(ctx context.Context, projectID string, req *CreateUpdateRequest) (*models.ProjectUpdate, error)
	ReplaceUpdate(ctx context.Context, id string, req *ReplaceUpdateRequest) (*models.ProjectUpdate, error)
	DeleteUpdate(ctx context.Context, id string) error

	ListOffers(ctx context.Context, projectID string) ([]models.ProjectOffer, error)
	CreateOffer(ctx context.Context, projectID string, req *CreateOfferRequest) (*models.ProjectOffer, error)
	ReplaceOffer(ctx context.Context, id string, req *ReplaceOfferRequest) (*models.ProjectOffer, error)
	DeleteOffer(ctx context.Context, id string) error

	ListEvents(ctx context.Context, projectID string) ([]models.ProjectEvent, error)
	CreateEvent(ctx context.Context, projectID string, req *CreateEventRequest) (*models.ProjectEvent, error)
	ReplaceEvent(ctx context.Context, id string, req *ReplaceEventRequest) (*models.ProjectEvent, error)
	DeleteEvent(ctx context.Context, id string) error
}
