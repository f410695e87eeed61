package repositories

import (
	"context"

	"homeground/internal/domain/models"
)

// PropertyFilter narrows the public listing query. Zero values mean
// "no constraint". Radius filtering is not part of the query; the
// service layer scans the result set in memory.
type PropertyFilter struct {
	City        string
	Type        models.PropertyType
	ListingType models.ListingType
	MinPrice    float64
	MaxPrice    float64
}

// PropertyRepository defines data access for listings.
type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error

	// GetByID retrieves a property by ID regardless of owner; callers
	// apply ownership checks after the load.
	GetByID(ctx context.Context, id string) (*models.Property, error)

	Update(ctx context.Context, p *models.Property) error

	Delete(ctx context.Context, id string) error

	// List retrieves available properties matching the filter, newest
	// first.
	List(ctx context.Context, filter PropertyFilter) ([]models.Property, error)

	// ListBySeller retrieves all of a seller's properties, any status.
	ListBySeller(ctx context.Context, sellerID string) ([]models.Property, error)
}
