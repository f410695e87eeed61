package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"homeground/internal/domain"
	"homeground/internal/domain/models"
	"homeground/internal/domain/repositories"
)

// PostgresPropertyRepository implements repositories.PropertyRepository.
type PostgresPropertyRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(config *RepositoryConfig) repositories.PropertyRepository {
	return &PostgresPropertyRepository{pool: config.Pool, tables: config.Tables}
}

const propertyColumns = `id, seller_id, title, description, type, listing_type, status, price,
	address, city, province, latitude, longitude, area_sqm, bedrooms, bathrooms,
	amenities, image_urls, created_at, updated_at`

// Create inserts a property and fills in the generated ID.
func (r *PostgresPropertyRepository) Create(ctx context.Context, p *models.Property) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (seller_id, title, description, type, listing_type, status, price,
			address, city, province, latitude, longitude, area_sqm, bedrooms, bathrooms,
			amenities, image_urls, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id
	`, r.tables.Properties)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		p.SellerID, p.Title, p.Description, string(p.Type), string(p.ListingType), string(p.Status), p.Price,
		p.Address, p.City, p.Province, p.Latitude, p.Longitude, p.AreaSqm, p.Bedrooms, p.Bathrooms,
		p.Amenities, p.ImageURLs, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("create property: %w", err)
	}
	return nil
}

// GetByID retrieves a property by ID.
func (r *PostgresPropertyRepository) GetByID(ctx context.Context, id string) (*models.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, propertyColumns, r.tables.Properties)

	executor := GetExecutor(ctx, r.pool)
	p, err := scanProperty(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("property %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get property: %w", err)
	}
	return p, nil
}

// Update persists all mutable fields.
func (r *PostgresPropertyRepository) Update(ctx context.Context, p *models.Property) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $2, description = $3, status = $4, price = $5,
			amenities = $6, image_urls = $7, updated_at = $8
		WHERE id = $1
	`, r.tables.Properties)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		p.ID, p.Title, p.Description, string(p.Status), p.Price,
		p.Amenities, p.ImageURLs, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("property %s: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a property permanently.
func (r *PostgresPropertyRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Properties)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("property %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List retrieves available properties matching the filter, newest
// first. The WHERE clause is assembled from the non-zero filter fields.
func (r *PostgresPropertyRepository) List(ctx context.Context, filter repositories.PropertyFilter) ([]models.Property, error) {
	conditions := []string{"status = 'available'"}
	args := []any{}
	arg := 1

	if filter.City != "" {
		conditions = append(conditions, fmt.Sprintf("lower(city) = lower($%d)", arg))
		args = append(args, filter.City)
		arg++
	}
	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", arg))
		args = append(args, string(filter.Type))
		arg++
	}
	if filter.ListingType != "" {
		conditions = append(conditions, fmt.Sprintf("listing_type = $%d", arg))
		args = append(args, string(filter.ListingType))
		arg++
	}
	if filter.MinPrice > 0 {
		conditions = append(conditions, fmt.Sprintf("price >= $%d", arg))
		args = append(args, filter.MinPrice)
		arg++
	}
	if filter.MaxPrice > 0 {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", arg))
		args = append(args, filter.MaxPrice)
		arg++
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY created_at DESC`,
		propertyColumns, r.tables.Properties, strings.Join(conditions, " AND "))

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		properties = append(properties, *p)
	}
	return properties, rows.Err()
}

// ListBySeller retrieves all of a seller's properties, any status.
func (r *PostgresPropertyRepository) ListBySeller(ctx context.Context, sellerID string) ([]models.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE seller_id = $1 ORDER BY created_at DESC`,
		propertyColumns, r.tables.Properties)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list properties by seller: %w", err)
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		properties = append(properties, *p)
	}
	return properties, rows.Err()
}

func scanProperty(row rowScanner) (*models.Property, error) {
	var p models.Property
	var ptype, listingType, status string
	err := row.Scan(
		&p.ID, &p.SellerID, &p.Title, &p.Description, &ptype, &listingType, &status, &p.Price,
		&p.Address, &p.City, &p.Province, &p.Latitude, &p.Longitude, &p.AreaSqm, &p.Bedrooms, &p.Bathrooms,
		&p.Amenities, &p.ImageURLs, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Type = models.PropertyType(ptype)
	p.ListingType = models.ListingType(listingType)
	p.Status = models.PropertyStatus(status)
	return &p, nil
}
