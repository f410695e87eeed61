package repositories

import (
	"context"

	"homeground/internal/domain/models"
)

// ProjectUpdateRepository defines data access for project updates.
type ProjectUpdateRepository interface {
	Create(ctx context.Context, u *models.ProjectUpdate) error

	GetByID(ctx context.Context, id string) (*models.ProjectUpdate, error)

	Update(ctx context.Context, u *models.ProjectUpdate) error

	// Delete removes the row permanently; there is no soft delete.
	Delete(ctx context.Context, id string) error

	ListByProject(ctx context.Context, projectID string) ([]models.ProjectUpdate, error)
}

// ProjectOfferRepository defines data access for project offers.
type ProjectOfferRepository interface {
	Create(ctx context.Context, o *models.ProjectOffer) error

	GetByID(ctx context.Context, id string) (*models.ProjectOffer, error)

	Update(ctx context.Context, o *models.ProjectOffer) error

	Delete(ctx context.Context, id string) error

	ListByProject(ctx context.Context, projectID string) ([]models.ProjectOffer, error)
}

// ProjectEventRepository defines data access for project events.
type ProjectEventRepository interface {
	Create(ctx context.Context, e *models.ProjectEvent) error

	GetByID(ctx context.Context, id string) (*models.ProjectEvent, error)

	Update(ctx context.Context, e *models.ProjectEvent) error

	Delete(ctx context.Context, id string) error

	ListByProject(ctx context.Context, projectID string) ([]models.ProjectEvent, error)
}
