package repositories

import (
	"context"

	"homeground/internal/domain/models"
)

// PrincipalRepository defines data access for accounts.
type PrincipalRepository interface {
	// Create inserts a principal row keyed by the auth subject ID.
	Create(ctx context.Context, p *models.Principal) error

	// GetByID retrieves a principal by ID.
	GetByID(ctx context.Context, id string) (*models.Principal, error)

	// Update persists profile fields (name, phone, verified flag).
	Update(ctx context.Context, p *models.Principal) error

	// UpdateRole changes the role. Callers gate this to admins.
	UpdateRole(ctx context.Context, id string, role models.Role) error

	// List retrieves all principals, newest first.
	List(ctx context.Context) ([]models.Principal, error)
}
