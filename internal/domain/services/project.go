package services

import (
	"context"

	"homeground/internal/domain/models"
)

// CreateProjectRequest carries the fields for a new microsite.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Developer   string `json:"developer"`
	Status      string `json:"status"`
}

// UpdateProjectRequest carries a partial microsite update.
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Developer   *string `json:"developer"`
	Status      *string `json:"status"`
}

// AddMemberRequest registers a member on a project microsite.
type AddMemberRequest struct {
	ProjectID string `json:"project_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
}

// ProjectService manages development microsites.
type ProjectService interface {
	// List retrieves projects. Draft and archived projects are
	// included only for their owner or an admin.
	List(ctx context.Context) ([]models.Project, error)

	// GetBySlug retrieves a project for its public page. Draft and
	// archived projects read as not found to non-privileged viewers.
	GetBySlug(ctx context.Context, slug string) (*models.Project, error)

	// Create creates a microsite owned by the caller. Admin only.
	Create(ctx context.Context, req *CreateProjectRequest) (*models.Project, error)

	// Update modifies a microsite. Owner or admin only.
	Update(ctx context.Context, id string, req *UpdateProjectRequest) (*models.Project, error)

	// Delete removes a microsite. Owner or admin only.
	Delete(ctx context.Context, id string) error

	// AddMember registers a member record. Admin only.
	AddMember(ctx context.Context, req *AddMemberRequest) (*models.Member, error)

	// RemoveMember deletes a member record. Owner or admin only.
	RemoveMember(ctx context.Context, id string) error

	// ListMembers retrieves a project's members. Admin only.
	ListMembers(ctx context.Context, projectID string) ([]models.Member, error)
}
