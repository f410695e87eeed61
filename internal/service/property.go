package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"homeground/internal/domain"
	"homeground/internal/domain/models"
	"homeground/internal/domain/repositories"
	"homeground/internal/domain/services"
	"homeground/internal/geo"
	authsvc "homeground/internal/service/auth"
	"homeground/internal/storage"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// propertyService implements services.PropertyService.
type propertyService struct {
	properties repositories.PropertyRepository
	gate       services.AuthorizationGate
	blobs      storage.BlobStore
	logger     *slog.Logger
}

// NewPropertyService creates a new property service.
func NewPropertyService(
	properties repositories.PropertyRepository,
	gate services.AuthorizationGate,
	blobs storage.BlobStore,
	logger *slog.Logger,
) services.PropertyService {
	return &propertyService{
		properties: properties,
		gate:       gate,
		blobs:      blobs,
		logger:     logger,
	}
}

// List retrieves available properties matching the filter. The radius
// constraint is applied as an in-memory scan over the query result.
func (s *propertyService) List(ctx context.Context, req *services.ListPropertiesRequest) ([]models.Property, error) {
	filter := repositories.PropertyFilter{
		City:        strings.TrimSpace(req.City),
		Type:        models.PropertyType(req.Type),
		ListingType: models.ListingType(req.ListingType),
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
	}

	properties, err := s.properties.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if req.RadiusKm > 0 && req.Lat != nil && req.Lng != nil {
		within := make([]models.Property, 0, len(properties))
		for _, p := range properties {
			if p.Latitude == nil || p.Longitude == nil {
				continue
			}
			if geo.WithinKm(*req.Lat, *req.Lng, *p.Latitude, *p.Longitude, req.RadiusKm) {
				within = append(within, p)
			}
		}
		properties = within
	}

	return properties, nil
}

// Get retrieves a single property by ID.
func (s *propertyService) Get(ctx context.Context, id string) (*models.Property, error) {
	return s.properties.GetByID(ctx, id)
}

// ListMine retrieves the caller's own listings.
func (s *propertyService) ListMine(ctx context.Context) ([]models.Property, error) {
	p, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	return s.properties.ListBySeller(ctx, p.ID)
}

// Create creates a listing owned by the caller.
func (s *propertyService) Create(ctx context.Context, req *services.CreatePropertyRequest) (*models.Property, error) {
	principal, err := s.gate.RequireRole(ctx, models.RoleSeller, models.RoleAgent, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	if err := validateCreateProperty(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	now := time.Now()
	property := &models.Property{
		SellerID:    principal.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Type:        models.PropertyType(req.Type),
		ListingType: models.ListingType(req.ListingType),
		Status:      models.PropertyAvailable,
		Price:       req.Price,
		Address:     req.Address,
		City:        req.City,
		Province:    req.Province,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		AreaSqm:     req.AreaSqm,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Amenities:   req.Amenities,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.properties.Create(ctx, property); err != nil {
		return nil, err
	}

	s.logger.Info("property created",
		"id", property.ID,
		"seller_id", principal.ID,
		"city", property.City,
	)

	return property, nil
}

// Update modifies a listing after the ownership check passes. The load
// runs first so a missing listing reads "not found" for everyone.
func (s *propertyService) Update(ctx context.Context, id string, req *services.UpdatePropertyRequest) (*models.Property, error) {
	principal, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}

	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authsvc.RequireOwnership(principal, property.SellerID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		property.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		property.Description = *req.Description
	}
	if req.Price != nil {
		property.Price = *req.Price
	}
	if req.Status != nil {
		status := models.PropertyStatus(*req.Status)
		switch status {
		case models.PropertyAvailable, models.PropertyPending, models.PropertySold:
			property.Status = status
		default:
			return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown status %q", *req.Status)}
		}
	}
	if req.Amenities != nil {
		property.Amenities = req.Amenities
	}
	property.UpdatedAt = time.Now()

	if err := validateProperty(property); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	if err := s.properties.Update(ctx, property); err != nil {
		return nil, err
	}

	s.logger.Info("property updated", "id", id, "by", principal.ID)

	return property, nil
}

// Delete removes a listing. Owner or admin only.
func (s *propertyService) Delete(ctx context.Context, id string) error {
	principal, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return err
	}

	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authsvc.RequireOwnership(principal, property.SellerID); err != nil {
		return err
	}

	if err := s.properties.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("property deleted", "id", id, "by", principal.ID)

	return nil
}

// AttachImage uploads an image and appends its URL to the listing.
func (s *propertyService) AttachImage(ctx context.Context, id, filename string, data []byte) (*models.Property, error) {
	principal, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}

	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authsvc.RequireOwnership(principal, property.SellerID); err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, &domain.ValidationError{Message: "image data is empty"}
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := imageContentTypes[ext]
	if !ok {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unsupported image type %q", ext)}
	}

	path := fmt.Sprintf("properties/%s/%s%s", id, uuid.NewString(), ext)
	url, err := s.blobs.Upload(ctx, path, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload property image: %w", err)
	}

	property.ImageURLs = append(property.ImageURLs, url)
	property.UpdatedAt = time.Now()
	if err := s.properties.Update(ctx, property); err != nil {
		return nil, err
	}

	s.logger.Info("property image attached", "id", id, "url", url)

	return property, nil
}

var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

func validateCreateProperty(req *services.CreatePropertyRequest) error {
	return validation.Errors{
		"title": validation.Validate(req.Title,
			validation.Required, validation.Length(3, 200)),
		"type": validation.Validate(req.Type,
			validation.Required, validation.In("house", "condo", "lot", "commercial")),
		"listing_type": validation.Validate(req.ListingType,
			validation.Required, validation.In("sale", "rent")),
		"price": validation.Validate(req.Price,
			validation.Required, validation.Min(0.01)),
		"address": validation.Validate(req.Address, validation.Required),
		"city":    validation.Validate(req.City, validation.Required),
	}.Filter()
}

func validateProperty(p *models.Property) error {
	return validation.Errors{
		"title": validation.Validate(p.Title,
			validation.Required, validation.Length(3, 200)),
		"price": validation.Validate(p.Price,
			validation.Required, validation.Min(0.01)),
	}.Filter()
}
