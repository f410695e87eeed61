package service

import (
	"context"
	"log/slog"
	"time"

	"homeground/internal/domain"
	"homeground/internal/domain/models"
	"homeground/internal/domain/repositories"
	"homeground/internal/domain/services"
	authsvc "homeground/internal/service/auth"
	"homeground/internal/service/visibility"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// contentService implements services.ContentService. The clock is
// injected so visibility evaluation is reproducible under test.
type contentService struct {
	projects repositories.ProjectRepository
	updates  repositories.ProjectUpdateRepository
	offers   repositories.ProjectOfferRepository
	events   repositories.ProjectEventRepository
	gate     services.AuthorizationGate
	now      func() time.Time
	logger   *slog.Logger
}

// NewContentService creates a new project content service.
func NewContentService(
	projects repositories.ProjectRepository,
	updates repositories.ProjectUpdateRepository,
	offers repositories.ProjectOfferRepository,
	events repositories.ProjectEventRepository,
	gate services.AuthorizationGate,
	now func() time.Time,
	logger *slog.Logger,
) services.ContentService {
	if now == nil {
		now = time.Now
	}
	return &contentService{
		projects: projects,
		updates:  updates,
		offers:   offers,
		events:   events,
		gate:     gate,
		now:      now,
		logger:   logger,
	}
}

// privilegedFor reports whether the viewer may see every content item
// on the project: the project owner, the item's own author, or an
// admin. Used to let editors preview not-yet-public content.
func privilegedFor(viewer *models.Principal, projectOwner, itemOwner string) bool {
	return authsvc.CheckOwnership(viewer, projectOwner) || authsvc.CheckOwnership(viewer, itemOwner)
}

// --- Updates ---

// ListUpdates retrieves a project's updates, passing each row through
// the visibility scheduler for non-privileged viewers.
func (s *contentService) ListUpdates(ctx context.Context, projectID string) ([]models.ProjectUpdate, error) {
	viewer, err := s.gate.Current(ctx)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	updates, err := s.updates.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	visibleItems := make([]models.ProjectUpdate, 0, len(updates))
	for _, u := range updates {
		privileged := privilegedFor(viewer, project.CreatedBy, u.CreatedBy)
		if visibility.Visible(u.Schedule, now, privileged) {
			visibleItems = append(visibleItems, u)
		}
	}
	return visibleItems, nil
}

// CreateUpdate creates a project update. Admin only.
func (s *contentService) CreateUpdate(ctx context.Context, projectID string, req *services.CreateUpdateRequest) (*models.ProjectUpdate, error) {
	principal, err := s.gate.RequireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	schedule, err := buildSchedule(req.Schedule)
	if err != nil {
		return nil, err
	}
	if err := validateUpdateContent(req.Title, req.Body); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	now := s.now()
	update := &models.ProjectUpdate{
		ProjectID: projectID,
		CreatedBy: principal.ID,
		Title:     req.Title,
		Body:      req.Body,
		Schedule:  schedule,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.updates.Create(ctx, update); err != nil {
		return nil, err
	}

	s.logger.Info("project update created",
		"id", update.ID,
		"project_id", projectID,
		"visibility", schedule.Visibility,
	)

	return update, nil
}

// ReplaceUpdate replaces an update's content and visibility fields
// wholesale. Owner or admin only; the load runs before the ownership
// check so a miss reads "not found".
func (s *contentService) ReplaceUpdate(ctx context.Context, id string, req *services.ReplaceUpdateRequest) (*models.ProjectUpdate, error) {
	principal, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}

	update, err := s.updates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authsvc.RequireOwnership(principal, update.CreatedBy); err != nil {
		return nil, err
	}

	schedule, err := buildSchedule(req.Schedule)
	if err != nil {
		return nil, err
	}
	if err := validateUpdateContent(req.Title, req.Body); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	update.Title = req.Title
	update.Body = req.Body
	update.Schedule = schedule
	update.UpdatedAt = s.now()

	if err := s.updates.Update(ctx, update); err != nil {
		return nil, err
	}
	return update, nil
}

// DeleteUpdate removes an update permanently. Owner or admin only.
func (s *contentService) DeleteUpdate(ctx context.Context, id string) error {
	principal, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return err
	}
	update, err := s.updates.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authsvc.RequireOwnership(principal, update.CreatedBy); err != nil {
		return err
	}
	return s.updates.Delete(ctx, id)
}

// --- Offers ---

// ListOffers retrieves a project's offers, applying both the schedule
// state and the display window per row.
func (s *contentService) ListOffers(ctx context.Context, projectID string) ([]models.ProjectOffer, error) {
	viewer, err := s.gate.Current(ctx)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	offers, err := s.offers.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	visibleItems := make([]models.ProjectOffer, 0, len(offers))
	for _, o := range offers {
		privileged := privilegedFor(viewer, project.CreatedBy, o.CreatedBy)
		if visibility.VisibleWindowed(o.Schedule, o.Window, now, privileged) {
			visibleItems = append(visibleItems, o)
		}
	}
	return visibleItems, nil
}

// CreateOffer creates a project offer. Admin only.
func (s *contentService) CreateOffer(ctx context.Context, projectID string, req *services.CreateOfferRequest) (*models.ProjectOffer, error) {
	principal, err := s.gate.RequireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	schedule, window, err := buildScheduleAndWindow(req.Schedule, req.Window)
	if err != nil {
		return nil, err
	}
	if err := validateTitled(req.Title); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	now := s.now()
	offer := &models.ProjectOffer{
		ProjectID:   projectID,
		CreatedBy:   principal.ID,
		Title:       req.Title,
		Description: req.Description,
		Terms:       req.Terms,
		Schedule:    schedule,
		Window:      window,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.offers.Create(ctx, offer); err != nil {
		return nil, err
	}

	s.logger.Info("project offer created", "id", offer.ID, "project_id", projectID)

	return offer, nil
}

// ReplaceOffer replaces an offer wholesale. Owner or admin only.
func (s *contentService) ReplaceOffer(ctx context.Context, id string, req *services.ReplaceOfferRequest) (*models.ProjectOffer, error) {
	principal, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}

	offer, err := s.offers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authsvc.RequireOwnership(principal, offer.CreatedBy); err != nil {
		return nil, err
	}

	schedule, window, err := buildScheduleAndWindow(req.Schedule, req.Window)
	if err != nil {
		return nil, err
	}
	if err := validateTitled(req.Title); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	offer.Title = req.Title
	offer.Description = req.Description
	offer.Terms = req.Terms
	offer.Schedule = schedule
	offer.Window = window
	offer.UpdatedAt = s.now()

	if err := s.offers.Update(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// DeleteOffer removes an offer permanently. Owner or admin only.
func (s *contentService) DeleteOffer(ctx context.Context, id string) error {
	principal, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return err
	}
	offer, err := s.offers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authsvc.RequireOwnership(principal, offer.CreatedBy); err != nil {
		return err
	}
	return s.offers.Delete(ctx, id)
}

// --- Events ---

// ListEvents retrieves a project's events, applying both the schedule
// state and the display window per row.
func (s *contentService) ListEvents(ctx context.Context, projectID string) ([]models.ProjectEvent, error) {
	viewer, err := s.gate.Current(ctx)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	events, err := s.events.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	visibleItems := make([]models.ProjectEvent, 0, len(events))
	for _, e := range events {
		privileged := privilegedFor(viewer, project.CreatedBy, e.CreatedBy)
		if visibility.VisibleWindowed(e.Schedule, e.Window, now, privileged) {
			visibleItems = append(visibleItems, e)
		}
	}
	return visibleItems, nil
}

// CreateEvent creates a project event. Unlike updates and offers,
// events may also be authored by sellers and agents.
func (s *contentService) CreateEvent(ctx context.Context, projectID string, req *services.CreateEventRequest) (*models.ProjectEvent, error) {
	principal, err := s.gate.RequireRole(ctx, models.RoleSeller, models.RoleAgent, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	schedule, window, err := buildScheduleAndWindow(req.Schedule, req.Window)
	if err != nil {
		return nil, err
	}
	if err := validateTitled(req.Title); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	now := s.now()
	event := &models.ProjectEvent{
		ProjectID:   projectID,
		CreatedBy:   principal.ID,
		Title:       req.Title,
		Description: req.Description,
		Venue:       req.Venue,
		Schedule:    schedule,
		Window:      window,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info("project event created", "id", event.ID, "project_id", projectID)

	return event, nil
}

// ReplaceEvent replaces an event wholesale. Owner or admin only.
func (s *contentService) ReplaceEvent(ctx context.Context, id string, req *services.ReplaceEventRequest) (*models.ProjectEvent, error) {
	principal, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authsvc.RequireOwnership(principal, event.CreatedBy); err != nil {
		return nil, err
	}

	schedule, window, err := buildScheduleAndWindow(req.Schedule, req.Window)
	if err != nil {
		return nil, err
	}
	if err := validateTitled(req.Title); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Venue = req.Venue
	event.Schedule = schedule
	event.Window = window
	event.UpdatedAt = s.now()

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent removes an event permanently. Owner or admin only.
func (s *contentService) DeleteEvent(ctx context.Context, id string) error {
	principal, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return err
	}
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authsvc.RequireOwnership(principal, event.CreatedBy); err != nil {
		return err
	}
	return s.events.Delete(ctx, id)
}

// --- shared validation ---

// buildSchedule validates the schedule input. A scheduled state
// requires a timestamp; in the immediate and hidden states a provided
// timestamp is stored but never consulted.
func buildSchedule(in services.ScheduleInput) (models.Schedule, error) {
	vis, err := models.ParseScheduleVisibility(in.Visibility)
	if err != nil {
		return models.Schedule{}, &domain.ValidationError{Message: err.Error()}
	}
	if vis == models.VisibilityScheduled && in.ScheduledAt == nil {
		return models.Schedule{}, &domain.ValidationError{Message: "scheduled_at is required when schedule_visibility is scheduled"}
	}
	return models.Schedule{Visibility: vis, ScheduledAt: in.ScheduledAt}, nil
}

// buildScheduleAndWindow additionally enforces end strictly after
// start.
func buildScheduleAndWindow(sin services.ScheduleInput, win services.WindowInput) (models.Schedule, models.Window, error) {
	schedule, err := buildSchedule(sin)
	if err != nil {
		return models.Schedule{}, models.Window{}, err
	}
	if win.StartDatetime.IsZero() || win.EndDatetime.IsZero() {
		return models.Schedule{}, models.Window{}, &domain.ValidationError{Message: "start_datetime and end_datetime are required"}
	}
	if !win.EndDatetime.After(win.StartDatetime) {
		return models.Schedule{}, models.Window{}, &domain.ValidationError{Message: "end_datetime must be after start_datetime"}
	}
	return schedule, models.Window{StartDatetime: win.StartDatetime, EndDatetime: win.EndDatetime}, nil
}

func validateUpdateContent(title, body string) error {
	return validation.Errors{
		"title": validation.Validate(title, validation.Required, validation.Length(1, 200)),
		"body":  validation.Validate(body, validation.Required),
	}.Filter()
}

func validateTitled(title string) error {
	return validation.Errors{
		"title": validation.Validate(title, validation.Required, validation.Length(1, 200)),
	}.Filter()
}
