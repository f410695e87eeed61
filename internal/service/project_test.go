package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"homeground/internal/domain"
	"homeground/internal/domain/models"
	"homeground/internal/domain/services"
)

type fakeMemberRepo struct {
	members map[string]*models.Member
	nextID  int
}

func (r *fakeMemberRepo) Create(ctx context.Context, m *models.Member) error {
	if r.members == nil {
		r.members = make(map[string]*models.Member)
	}
	r.nextID++
	m.ID = fmt.Sprintf("member-%d", r.nextID)
	stored := *m
	r.members[m.ID] = &stored
	return nil
}

func (r *fakeMemberRepo) GetByID(ctx context.Context, id string) (*models.Member, error) {
	if m, ok := r.members[id]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, fmt.Errorf("member %s: %w", id, domain.ErrNotFound)
}

func (r *fakeMemberRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.members[id]; !ok {
		return fmt.Errorf("member %s: %w", id, domain.ErrNotFound)
	}
	delete(r.members, id)
	return nil
}

func (r *fakeMemberRepo) ListByProject(ctx context.Context, projectID string) ([]models.Member, error) {
	var out []models.Member
	for _, m := range r.members {
		if m.ProjectID == projectID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func newProjectFixture(viewer *models.Principal) (services.ProjectService, *fakeProjectRepo, *fakeMemberRepo) {
	projects := &fakeProjectRepo{projects: map[string]*models.Project{
		"p-active": {ID: "p-active", CreatedBy: "owner-1", Slug: "ridge", Status: models.ProjectActive},
		"p-done":   {ID: "p-done", CreatedBy: "owner-1", Slug: "vista", Status: models.ProjectCompleted},
		"p-draft":  {ID: "p-draft", CreatedBy: "owner-1", Slug: "draft-site", Status: models.ProjectDraft},
		"p-gone":   {ID: "p-gone", CreatedBy: "owner-2", Slug: "old-site", Status: models.ProjectArchived},
	}}
	members := &fakeMemberRepo{members: make(map[string]*models.Member)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewProjectService(projects, members, &fakeGate{principal: viewer}, logger)
	return svc, projects, members
}

func TestListProjectsGatesPerRow(t *testing.T) {
	tests := []struct {
		name   string
		viewer *models.Principal
		want   map[string]bool
	}{
		{
			name:   "anonymous sees only listed",
			viewer: nil,
			want:   map[string]bool{"p-active": true, "p-done": true},
		},
		{
			name:   "owner additionally sees own draft but not another's archive",
			viewer: &models.Principal{ID: "owner-1", Role: models.RoleAgent},
			want:   map[string]bool{"p-active": true, "p-done": true, "p-draft": true},
		},
		{
			name:   "admin sees everything",
			viewer: &models.Principal{ID: "any", Role: models.RoleAdmin},
			want:   map[string]bool{"p-active": true, "p-done": true, "p-draft": true, "p-gone": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newProjectFixture(tt.viewer)

			projects, err := svc.List(context.Background())
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}

			got := make(map[string]bool, len(projects))
			for _, p := range projects {
				got[p.ID] = true
			}
			if len(got) != len(tt.want) {
				t.Errorf("List() returned %v, want %v", got, tt.want)
			}
			for id := range tt.want {
				if !got[id] {
					t.Errorf("List() missing %s", id)
				}
			}
		})
	}
}

func TestGetBySlugHidesUnlistedProjects(t *testing.T) {
	tests := []struct {
		name    string
		viewer  *models.Principal
		slug    string
		wantErr bool
	}{
		{"public slug resolves", nil, "ridge", false},
		{"draft reads not found to anonymous", nil, "draft-site", true},
		{"draft reads not found to unrelated user", &models.Principal{ID: "buyer-1", Role: models.RoleBuyer}, "draft-site", true},
		{"draft resolves for owner", &models.Principal{ID: "owner-1", Role: models.RoleAgent}, "draft-site", false},
		{"archive resolves for admin", &models.Principal{ID: "any", Role: models.RoleAdmin}, "old-site", false},
		{"missing slug", nil, "nope", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newProjectFixture(tt.viewer)

			_, err := svc.GetBySlug(context.Background(), tt.slug)
			if tt.wantErr {
				// Hidden and missing must be indistinguishable.
				if !errors.Is(err, domain.ErrNotFound) {
					t.Errorf("GetBySlug(%s) error = %v, want ErrNotFound", tt.slug, err)
				}
				return
			}
			if err != nil {
				t.Errorf("GetBySlug(%s) error = %v", tt.slug, err)
			}
		})
	}
}

func TestCreateProjectValidation(t *testing.T) {
	svc, _, _ := newProjectFixture(&models.Principal{ID: "admin-1", Role: models.RoleAdmin})

	tests := []struct {
		name    string
		req     services.CreateProjectRequest
		wantErr bool
	}{
		{"valid", services.CreateProjectRequest{Name: "Solana Ridge", Slug: "solana-ridge"}, false},
		{"missing slug", services.CreateProjectRequest{Name: "Solana Ridge"}, true},
		{"uppercase slug", services.CreateProjectRequest{Name: "Solana Ridge", Slug: "Solana-Ridge"}, true},
		{"trailing hyphen", services.CreateProjectRequest{Name: "Solana Ridge", Slug: "solana-"}, true},
		{"unknown status", services.CreateProjectRequest{Name: "Solana Ridge", Slug: "solana", Status: "live"}, true},
		{"short name", services.CreateProjectRequest{Name: "ab", Slug: "ab"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req)

			var validationErr *domain.ValidationError
			if tt.wantErr && !errors.As(err, &validationErr) {
				t.Errorf("Create() error = %v, want ValidationError", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Create() error = %v", err)
			}
		})
	}
}

func TestCreateProjectDefaultsToDraft(t *testing.T) {
	svc, _, _ := newProjectFixture(&models.Principal{ID: "admin-1", Role: models.RoleAdmin})

	project, err := svc.Create(context.Background(), &services.CreateProjectRequest{
		Name: "Solana Ridge",
		Slug: "solana-ridge",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if project.Status != models.ProjectDraft {
		t.Errorf("Create() status = %s, want draft", project.Status)
	}
}

func TestCreateProjectRequiresAdmin(t *testing.T) {
	svc, _, _ := newProjectFixture(&models.Principal{ID: "seller-1", Role: models.RoleSeller})

	_, err := svc.Create(context.Background(), &services.CreateProjectRequest{
		Name: "Solana Ridge",
		Slug: "solana-ridge",
	})

	var forbidden *domain.ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Errorf("Create() error = %v, want ForbiddenError", err)
	}
}

func TestAddMemberUnknownProjectReadsNotFound(t *testing.T) {
	svc, _, _ := newProjectFixture(&models.Principal{ID: "admin-1", Role: models.RoleAdmin})

	_, err := svc.AddMember(context.Background(), &services.AddMemberRequest{
		ProjectID: "missing",
		Email:     "x@example.com",
		Name:      "X",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("AddMember() error = %v, want ErrNotFound", err)
	}
}

func TestRemoveMemberOwnership(t *testing.T) {
	admin := &models.Principal{ID: "admin-1", Role: models.RoleAdmin}
	svc, _, members := newProjectFixture(admin)

	member, err := svc.AddMember(context.Background(), &services.AddMemberRequest{
		ProjectID: "p-active",
		Email:     "X@Example.com",
		Name:      "X",
	})
	if err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}
	if member.Email != "x@example.com" {
		t.Errorf("AddMember() email = %s, want normalized lowercase", member.Email)
	}

	// A different non-admin caller cannot remove the record.
	other := NewProjectService(
		&fakeProjectRepo{projects: map[string]*models.Project{}},
		members,
		&fakeGate{principal: &models.Principal{ID: "seller-1", Role: models.RoleSeller}},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	var forbidden *domain.ForbiddenError
	if err := other.RemoveMember(context.Background(), member.ID); !errors.As(err, &forbidden) {
		t.Errorf("RemoveMember() error = %v, want ForbiddenError", err)
	}

	if err := svc.RemoveMember(context.Background(), member.ID); err != nil {
		t.Errorf("RemoveMember() by creator error = %v", err)
	}
}
