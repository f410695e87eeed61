package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"homeground/internal/domain"
	"homeground/internal/domain/models"
	"homeground/internal/domain/repositories"
	"homeground/internal/domain/services"
	authsvc "homeground/internal/service/auth"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// projectService implements services.ProjectService.
type projectService struct {
	projects repositories.ProjectRepository
	members  repositories.MemberRepository
	gate     services.AuthorizationGate
	logger   *slog.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(
	projects repositories.ProjectRepository,
	members repositories.MemberRepository,
	gate services.AuthorizationGate,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		projects: projects,
		members:  members,
		gate:     gate,
		logger:   logger,
	}
}

// List retrieves projects, filtering draft and archived microsites out
// for non-privileged viewers. Each row is gated independently: the
// owner of one draft still doesn't see someone else's.
func (s *projectService) List(ctx context.Context) ([]models.Project, error) {
	viewer, err := s.gate.Current(ctx)
	if err != nil {
		return nil, err
	}

	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.Status.PubliclyListed() || authsvc.CheckOwnership(viewer, p.CreatedBy) {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

// GetBySlug retrieves a project for its public page. Draft and
// archived microsites read as not found to non-privileged viewers so
// their existence doesn't leak.
func (s *projectService) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	viewer, err := s.gate.Current(ctx)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if !project.Status.PubliclyListed() && !authsvc.CheckOwnership(viewer, project.CreatedBy) {
		return nil, fmt.Errorf("project %s: %w", slug, domain.ErrNotFound)
	}
	return project, nil
}

// Create creates a microsite owned by the caller. Admin only.
func (s *projectService) Create(ctx context.Context, req *services.CreateProjectRequest) (*models.Project, error) {
	principal, err := s.gate.RequireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	if err := validateCreateProject(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	status := models.ProjectStatus(req.Status)
	if req.Status == "" {
		status = models.ProjectDraft
	}

	now := time.Now()
	project := &models.Project{
		CreatedBy:   principal.ID,
		Name:        strings.TrimSpace(req.Name),
		Slug:        req.Slug,
		Description: req.Description,
		Location:    req.Location,
		Developer:   req.Developer,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created", "id", project.ID, "slug", project.Slug, "by", principal.ID)

	return project, nil
}

// Update modifies a microsite. Owner or admin only; the load runs
// before the ownership check.
func (s *projectService) Update(ctx context.Context, id string, req *services.UpdateProjectRequest) (*models.Project, error) {
	principal, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authsvc.RequireOwnership(principal, project.CreatedBy); err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Location != nil {
		project.Location = *req.Location
	}
	if req.Developer != nil {
		project.Developer = *req.Developer
	}
	if req.Status != nil {
		status := models.ProjectStatus(*req.Status)
		switch status {
		case models.ProjectDraft, models.ProjectActive, models.ProjectCompleted, models.ProjectArchived:
			project.Status = status
		default:
			return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown status %q", *req.Status)}
		}
	}
	project.UpdatedAt = time.Now()

	if project.Name == "" {
		return nil, &domain.ValidationError{Message: "name: cannot be blank"}
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project updated", "id", id, "by", principal.ID)

	return project, nil
}

// Delete removes a microsite. Owner or admin only. Cascading removal
// of its content items is the database's responsibility.
func (s *projectService) Delete(ctx context.Context, id string) error {
	principal, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return err
	}

	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authsvc.RequireOwnership(principal, project.CreatedBy); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("project deleted", "id", id, "by", principal.ID)

	return nil
}

// AddMember registers a member record on a project. Admin only.
func (s *projectService) AddMember(ctx context.Context, req *services.AddMemberRequest) (*models.Member, error) {
	principal, err := s.gate.RequireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	if err := validateAddMember(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	// Project must exist; a miss reads "not found" before anything else.
	if _, err := s.projects.GetByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	member := &models.Member{
		ProjectID: req.ProjectID,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Name:      strings.TrimSpace(req.Name),
		CreatedBy: principal.ID,
		CreatedAt: time.Now(),
	}

	if err := s.members.Create(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info("member added", "id", member.ID, "project_id", req.ProjectID)

	return member, nil
}

// RemoveMember deletes a member record. Owner or admin only.
func (s *projectService) RemoveMember(ctx context.Context, id string) error {
	principal, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return err
	}

	member, err := s.members.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authsvc.RequireOwnership(principal, member.CreatedBy); err != nil {
		return err
	}

	return s.members.Delete(ctx, id)
}

// ListMembers retrieves a project's members. Admin only.
func (s *projectService) ListMembers(ctx context.Context, projectID string) ([]models.Member, error) {
	if _, err := s.gate.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.members.ListByProject(ctx, projectID)
}

func validateCreateProject(req *services.CreateProjectRequest) error {
	return validation.Errors{
		"name": validation.Validate(req.Name,
			validation.Required, validation.Length(3, 200)),
		"slug": validation.Validate(req.Slug,
			validation.Required, validation.Match(slugPattern)),
		"status": validation.Validate(req.Status,
			validation.In("draft", "active", "completed", "archived")),
	}.Filter()
}

func validateAddMember(req *services.AddMemberRequest) error {
	return validation.Errors{
		"project_id": validation.Validate(req.ProjectID, validation.Required),
		"email":      validation.Validate(req.Email, validation.Required),
		"name":       validation.Validate(req.Name, validation.Required),
	}.Filter()
}
