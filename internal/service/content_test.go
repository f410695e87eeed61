package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"homeground/internal/domain"
	"homeground/internal/domain/models"
	"homeground/internal/domain/services"
)

// fakeGate returns a fixed principal. A nil principal means anonymous.
type fakeGate struct {
	principal *models.Principal
}

func (g *fakeGate) Current(ctx context.Context) (*models.Principal, error) {
	return g.principal, nil
}

func (g *fakeGate) RequireAuth(ctx context.Context) (*models.Principal, error) {
	if g.principal == nil {
		return nil, &domain.UnauthenticatedError{Message: "sign in required"}
	}
	return g.principal, nil
}

func (g *fakeGate) RequireRole(ctx context.Context, allowed ...models.Role) (*models.Principal, error) {
	p, err := g.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	for _, role := range allowed {
		if p.Role == role {
			return p, nil
		}
	}
	return nil, &domain.ForbiddenError{Message: "forbidden"}
}

func (g *fakeGate) RequireAdmin(ctx context.Context) (*models.Principal, error) {
	return g.RequireRole(ctx, models.RoleAdmin)
}

type fakeProjectRepo struct {
	projects map[string]*models.Project
}

func (r *fakeProjectRepo) Create(ctx context.Context, p *models.Project) error { return nil }

func (r *fakeProjectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	if p, ok := r.projects[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
}

func (r *fakeProjectRepo) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	for _, p := range r.projects {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, fmt.Errorf("project %s: %w", slug, domain.ErrNotFound)
}

func (r *fakeProjectRepo) Update(ctx context.Context, p *models.Project) error { return nil }
func (r *fakeProjectRepo) Delete(ctx context.Context, id string) error         { return nil }

func (r *fakeProjectRepo) List(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	for _, p := range r.projects {
		out = append(out, *p)
	}
	return out, nil
}

type fakeUpdateRepo struct {
	updates map[string]*models.ProjectUpdate
	nextID  int
}

func (r *fakeUpdateRepo) Create(ctx context.Context, u *models.ProjectUpdate) error {
	if r.updates == nil {
		r.updates = make(map[string]*models.ProjectUpdate)
	}
	r.nextID++
	u.ID = fmt.Sprintf("update-%d", r.nextID)
	stored := *u
	r.updates[u.ID] = &stored
	return nil
}

func (r *fakeUpdateRepo) GetByID(ctx context.Context, id string) (*models.ProjectUpdate, error) {
	if u, ok := r.updates[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, fmt.Errorf("project update %s: %w", id, domain.ErrNotFound)
}

func (r *fakeUpdateRepo) Update(ctx context.Context, u *models.ProjectUpdate) error {
	if _, ok := r.updates[u.ID]; !ok {
		return fmt.Errorf("project update %s: %w", u.ID, domain.ErrNotFound)
	}
	stored := *u
	r.updates[u.ID] = &stored
	return nil
}

func (r *fakeUpdateRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.updates[id]; !ok {
		return fmt.Errorf("project update %s: %w", id, domain.ErrNotFound)
	}
	delete(r.updates, id)
	return nil
}

func (r *fakeUpdateRepo) ListByProject(ctx context.Context, projectID string) ([]models.ProjectUpdate, error) {
	var out []models.ProjectUpdate
	for _, u := range r.updates {
		if u.ProjectID == projectID {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeOfferRepo struct {
	offers map[string]*models.ProjectOffer
	nextID int
}

func (r *fakeOfferRepo) Create(ctx context.Context, o *models.ProjectOffer) error {
	if r.offers == nil {
		r.offers = make(map[string]*models.ProjectOffer)
	}
	r.nextID++
	o.ID = fmt.Sprintf("offer-%d", r.nextID)
	stored := *o
	r.offers[o.ID] = &stored
	return nil
}

func (r *fakeOfferRepo) GetByID(ctx context.Context, id string) (*models.ProjectOffer, error) {
	if o, ok := r.offers[id]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, fmt.Errorf("project offer %s: %w", id, domain.ErrNotFound)
}

func (r *fakeOfferRepo) Update(ctx context.Context, o *models.ProjectOffer) error {
	stored := *o
	r.offers[o.ID] = &stored
	return nil
}

func (r *fakeOfferRepo) Delete(ctx context.Context, id string) error {
	delete(r.offers, id)
	return nil
}

func (r *fakeOfferRepo) ListByProject(ctx context.Context, projectID string) ([]models.ProjectOffer, error) {
	var out []models.ProjectOffer
	for _, o := range r.offers {
		if o.ProjectID == projectID {
			out = append(out, *o)
		}
	}
	return out, nil
}

type fakeEventRepo struct {
	events map[string]*models.ProjectEvent
	nextID int
}

func (r *fakeEventRepo) Create(ctx context.Context, e *models.ProjectEvent) error {
	if r.events == nil {
		r.events = make(map[string]*models.ProjectEvent)
	}
	r.nextID++
	e.ID = fmt.Sprintf("event-%d", r.nextID)
	stored := *e
	r.events[e.ID] = &stored
	return nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id string) (*models.ProjectEvent, error) {
	if e, ok := r.events[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, fmt.Errorf("project event %s: %w", id, domain.ErrNotFound)
}

func (r *fakeEventRepo) Update(ctx context.Context, e *models.ProjectEvent) error {
	stored := *e
	r.events[e.ID] = &stored
	return nil
}

func (r *fakeEventRepo) Delete(ctx context.Context, id string) error {
	delete(r.events, id)
	return nil
}

func (r *fakeEventRepo) ListByProject(ctx context.Context, projectID string) ([]models.ProjectEvent, error) {
	var out []models.ProjectEvent
	for _, e := range r.events {
		if e.ProjectID == projectID {
			out = append(out, *e)
		}
	}
	return out, nil
}

var testClock = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func newContentFixture(viewer *models.Principal) (services.ContentService, *fakeUpdateRepo, *fakeOfferRepo) {
	projects := &fakeProjectRepo{projects: map[string]*models.Project{
		"proj-1": {ID: "proj-1", CreatedBy: "owner-1", Slug: "ridge", Status: models.ProjectActive},
	}}
	updates := &fakeUpdateRepo{updates: make(map[string]*models.ProjectUpdate)}
	offers := &fakeOfferRepo{offers: make(map[string]*models.ProjectOffer)}
	events := &fakeEventRepo{events: make(map[string]*models.ProjectEvent)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewContentService(projects, updates, offers, events, &fakeGate{principal: viewer},
		func() time.Time { return testClock }, logger)
	return svc, updates, offers
}

func seedUpdate(repo *fakeUpdateRepo, id, createdBy string, schedule models.Schedule) {
	repo.updates[id] = &models.ProjectUpdate{
		ID:        id,
		ProjectID: "proj-1",
		CreatedBy: createdBy,
		Title:     "t",
		Body:      "b",
		Schedule:  schedule,
	}
}

func tptr(t time.Time) *time.Time { return &t }

func TestListUpdatesFiltersBySchedule(t *testing.T) {
	svc, updates, _ := newContentFixture(nil)

	seedUpdate(updates, "u-immediate", "owner-1", models.Schedule{Visibility: models.VisibilityImmediate})
	seedUpdate(updates, "u-past", "owner-1", models.Schedule{
		Visibility:  models.VisibilityScheduled,
		ScheduledAt: tptr(testClock.Add(-time.Hour)),
	})
	seedUpdate(updates, "u-exact", "owner-1", models.Schedule{
		Visibility:  models.VisibilityScheduled,
		ScheduledAt: tptr(testClock),
	})
	seedUpdate(updates, "u-future", "owner-1", models.Schedule{
		Visibility:  models.VisibilityScheduled,
		ScheduledAt: tptr(testClock.Add(time.Hour)),
	})
	seedUpdate(updates, "u-hidden", "owner-1", models.Schedule{Visibility: models.VisibilityHidden})
	seedUpdate(updates, "u-malformed", "owner-1", models.Schedule{Visibility: models.VisibilityScheduled})

	visible, err := svc.ListUpdates(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("ListUpdates() error = %v", err)
	}

	got := make(map[string]bool, len(visible))
	for _, u := range visible {
		got[u.ID] = true
	}

	want := map[string]bool{
		"u-immediate": true,
		"u-past":      true,
		"u-exact":     true, // scheduled_at equal to now is visible
		"u-future":    false,
		"u-hidden":    false,
		"u-malformed": false, // missing timestamp fails closed
	}
	for id, wantVisible := range want {
		if got[id] != wantVisible {
			t.Errorf("update %s visible = %v, want %v", id, got[id], wantVisible)
		}
	}
}

func TestListUpdatesPrivilegedViewersSeeEverything(t *testing.T) {
	viewers := []struct {
		name   string
		viewer *models.Principal
	}{
		{"project owner", &models.Principal{ID: "owner-1", Role: models.RoleAgent}},
		{"admin", &models.Principal{ID: "someone-else", Role: models.RoleAdmin}},
		{"item author", &models.Principal{ID: "author-2", Role: models.RoleSeller}},
	}

	for _, tc := range viewers {
		t.Run(tc.name, func(t *testing.T) {
			svc, updates, _ := newContentFixture(tc.viewer)
			seedUpdate(updates, "u-hidden", "author-2", models.Schedule{Visibility: models.VisibilityHidden})
			seedUpdate(updates, "u-future", "author-2", models.Schedule{
				Visibility:  models.VisibilityScheduled,
				ScheduledAt: tptr(testClock.Add(time.Hour)),
			})

			visible, err := svc.ListUpdates(context.Background(), "proj-1")
			if err != nil {
				t.Fatalf("ListUpdates() error = %v", err)
			}
			if len(visible) != 2 {
				t.Errorf("got %d visible updates, want 2", len(visible))
			}
		})
	}
}

func TestListUpdatesUnprivilegedRoleIsFiltered(t *testing.T) {
	// A signed-in buyer with no stake in the project sees only public
	// rows.
	svc, updates, _ := newContentFixture(&models.Principal{ID: "buyer-1", Role: models.RoleBuyer})
	seedUpdate(updates, "u-hidden", "owner-1", models.Schedule{Visibility: models.VisibilityHidden})
	seedUpdate(updates, "u-live", "owner-1", models.Schedule{Visibility: models.VisibilityImmediate})

	visible, err := svc.ListUpdates(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("ListUpdates() error = %v", err)
	}
	if len(visible) != 1 || visible[0].ID != "u-live" {
		t.Errorf("got %v, want only u-live", visible)
	}
}

func TestListOffersAppliesWindow(t *testing.T) {
	svc, _, offers := newContentFixture(nil)

	open := models.Schedule{Visibility: models.VisibilityImmediate}
	cases := map[string]models.Window{
		"o-open":     {StartDatetime: testClock.Add(-time.Hour), EndDatetime: testClock.Add(time.Hour)},
		"o-ends-now": {StartDatetime: testClock.Add(-time.Hour), EndDatetime: testClock},
		"o-expired":  {StartDatetime: testClock.Add(-2 * time.Hour), EndDatetime: testClock.Add(-time.Second)},
		"o-upcoming": {StartDatetime: testClock.Add(time.Hour), EndDatetime: testClock.Add(2 * time.Hour)},
	}
	for id, window := range cases {
		offers.offers[id] = &models.ProjectOffer{
			ID: id, ProjectID: "proj-1", CreatedBy: "owner-1",
			Title: "t", Schedule: open, Window: window,
		}
	}

	visible, err := svc.ListOffers(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("ListOffers() error = %v", err)
	}

	got := make(map[string]bool, len(visible))
	for _, o := range visible {
		got[o.ID] = true
	}
	want := map[string]bool{
		"o-open":     true,
		"o-ends-now": true, // end bound is inclusive
		"o-expired":  false,
		"o-upcoming": false,
	}
	for id, wantVisible := range want {
		if got[id] != wantVisible {
			t.Errorf("offer %s visible = %v, want %v", id, got[id], wantVisible)
		}
	}
}

func TestListUpdatesUnknownProject(t *testing.T) {
	svc, _, _ := newContentFixture(nil)

	_, err := svc.ListUpdates(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("ListUpdates() error = %v, want ErrNotFound", err)
	}
}

func TestCreateUpdateRequiresAdmin(t *testing.T) {
	svc, _, _ := newContentFixture(&models.Principal{ID: "seller-1", Role: models.RoleSeller})

	req := &services.CreateUpdateRequest{
		Title:    "t",
		Body:     "b",
		Schedule: services.ScheduleInput{Visibility: "immediate"},
	}
	_, err := svc.CreateUpdate(context.Background(), "proj-1", req)

	var forbidden *domain.ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Errorf("CreateUpdate() error = %v, want ForbiddenError", err)
	}
}

func TestCreateUpdateValidatesSchedule(t *testing.T) {
	svc, _, _ := newContentFixture(&models.Principal{ID: "admin-1", Role: models.RoleAdmin})

	tests := []struct {
		name     string
		schedule services.ScheduleInput
		wantErr  bool
	}{
		{"immediate", services.ScheduleInput{Visibility: "immediate"}, false},
		{"scheduled with timestamp", services.ScheduleInput{Visibility: "scheduled", ScheduledAt: tptr(testClock)}, false},
		{"scheduled without timestamp", services.ScheduleInput{Visibility: "scheduled"}, true},
		{"unknown state", services.ScheduleInput{Visibility: "published"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &services.CreateUpdateRequest{Title: "t", Body: "b", Schedule: tt.schedule}
			_, err := svc.CreateUpdate(context.Background(), "proj-1", req)

			var validationErr *domain.ValidationError
			if tt.wantErr && !errors.As(err, &validationErr) {
				t.Errorf("CreateUpdate() error = %v, want ValidationError", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("CreateUpdate() error = %v", err)
			}
		})
	}
}

func TestCreateOfferRejectsInvertedWindow(t *testing.T) {
	svc, _, _ := newContentFixture(&models.Principal{ID: "admin-1", Role: models.RoleAdmin})

	req := &services.CreateOfferRequest{
		Title:    "t",
		Schedule: services.ScheduleInput{Visibility: "immediate"},
		Window: services.WindowInput{
			StartDatetime: testClock.Add(time.Hour),
			EndDatetime:   testClock,
		},
	}
	_, err := svc.CreateOffer(context.Background(), "proj-1", req)

	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("CreateOffer() error = %v, want ValidationError", err)
	}
}

func TestReplaceUpdateOwnership(t *testing.T) {
	tests := []struct {
		name      string
		viewer    *models.Principal
		wantErrAs func(error) bool
	}{
		{
			name:   "author can replace",
			viewer: &models.Principal{ID: "author-1", Role: models.RoleAgent},
		},
		{
			name:   "admin can replace another author's update",
			viewer: &models.Principal{ID: "other-admin", Role: models.RoleAdmin},
		},
		{
			name:   "non-owner is forbidden",
			viewer: &models.Principal{ID: "seller-1", Role: models.RoleSeller},
			wantErrAs: func(err error) bool {
				var forbidden *domain.ForbiddenError
				return errors.As(err, &forbidden)
			},
		},
		{
			name:   "anonymous is unauthenticated",
			viewer: nil,
			wantErrAs: func(err error) bool {
				var unauthed *domain.UnauthenticatedError
				return errors.As(err, &unauthed)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, updates, _ := newContentFixture(tt.viewer)
			seedUpdate(updates, "u-1", "author-1", models.Schedule{Visibility: models.VisibilityImmediate})

			req := &services.ReplaceUpdateRequest{
				Title:    "new title",
				Body:     "new body",
				Schedule: services.ScheduleInput{Visibility: "hidden"},
			}
			got, err := svc.ReplaceUpdate(context.Background(), "u-1", req)

			if tt.wantErrAs != nil {
				if !tt.wantErrAs(err) {
					t.Errorf("ReplaceUpdate() error = %v, want specific error type", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReplaceUpdate() error = %v", err)
			}
			if got.Title != "new title" || got.Schedule.Visibility != models.VisibilityHidden {
				t.Errorf("ReplaceUpdate() = %+v, replacement not applied", got)
			}
		})
	}
}

func TestReplaceUpdateMissingReadsNotFoundBeforeForbidden(t *testing.T) {
	// An authenticated non-owner probing a missing ID must get not
	// found, not forbidden.
	svc, _, _ := newContentFixture(&models.Principal{ID: "seller-1", Role: models.RoleSeller})

	req := &services.ReplaceUpdateRequest{
		Title:    "t",
		Body:     "b",
		Schedule: services.ScheduleInput{Visibility: "immediate"},
	}
	_, err := svc.ReplaceUpdate(context.Background(), "missing", req)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("ReplaceUpdate() error = %v, want ErrNotFound", err)
	}
}
