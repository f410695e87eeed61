package services

import (
	"context"

	"homeground/internal/domain/models"
)

// ListPropertiesRequest carries the public search filters. RadiusKm
// with Lat/Lng enables the in-memory distance scan; properties without
// coordinates are excluded from radius-filtered results.
type ListPropertiesRequest struct {
	City        string
	Type        string
	ListingType string
	MinPrice    float64
	MaxPrice    float64
	Lat         *float64
	Lng         *float64
	RadiusKm    float64
}

// CreatePropertyRequest carries the fields a seller submits for a new
// listing.
type CreatePropertyRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	ListingType string   `json:"listing_type"`
	Price       float64  `json:"price"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Province    string   `json:"province"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	AreaSqm     float64  `json:"area_sqm"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	Amenities   []string `json:"amenities"`
}

// UpdatePropertyRequest carries a partial listing update. Nil pointers
// leave the stored value unchanged.
type UpdatePropertyRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Status      *string  `json:"status"`
	Amenities   []string `json:"amenities"`
}

// PropertyService manages marketplace listings.
type PropertyService interface {
	// List retrieves publicly visible properties matching the filter.
	List(ctx context.Context, req *ListPropertiesRequest) ([]models.Property, error)

	// Get retrieves a single property. Public.
	Get(ctx context.Context, id string) (*models.Property, error)

	// ListMine retrieves the caller's own listings, any status.
	ListMine(ctx context.Context) ([]models.Property, error)

	// Create creates a listing owned by the caller. Seller, agent or
	// admin only.
	Create(ctx context.Context, req *CreatePropertyRequest) (*models.Property, error)

	// Update modifies a listing. Owner or admin only.
	Update(ctx context.Context, id string, req *UpdatePropertyRequest) (*models.Property, error)

	// Delete removes a listing. Owner or admin only.
	Delete(ctx context.Context, id string) error

	// AttachImage uploads an image to the blob store and appends its
	// URL to the listing. Owner or admin only.
	AttachImage(ctx context.Context, id, filename string, data []byte) (*models.Property, error)
}
