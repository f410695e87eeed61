package repositories

import (
	"context"

	"homeground/internal/domain/models"
)

// ProjectRepository defines data access for development microsites.
type ProjectRepository interface {
	Create(ctx context.Context, p *models.Project) error

	GetByID(ctx context.Context, id string) (*models.Project, error)

	GetBySlug(ctx context.Context, slug string) (*models.Project, error)

	Update(ctx context.Context, p *models.Project) error

	Delete(ctx context.Context, id string) error

	// List retrieves all projects, newest first. Status gating for
	// non-privileged viewers happens in the service layer.
	List(ctx context.Context) ([]models.Project, error)
}

// MemberRepository defines data access for project membership records.
type MemberRepository interface {
	Create(ctx context.Context, m *models.Member) error

	GetByID(ctx context.Context, id string) (*models.Member, error)

	Delete(ctx context.Context, id string) error

	ListByProject(ctx context.Context, projectID string) ([]models.Member, error)
}
