package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"homeground/internal/domain"
	"homeground/internal/domain/models"
	"homeground/internal/domain/repositories"
)

// PostgresPrincipalRepository implements repositories.PrincipalRepository.
type PostgresPrincipalRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewPrincipalRepository creates a new principal repository
func NewPrincipalRepository(config *RepositoryConfig) repositories.PrincipalRepository {
	return &PostgresPrincipalRepository{pool: config.Pool, tables: config.Tables}
}

// Create inserts a principal row. The ID is the auth subject, supplied
// by the caller rather than generated.
func (r *PostgresPrincipalRepository) Create(ctx context.Context, p *models.Principal) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, email, name, phone, role, is_active, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.Principals)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		p.ID, p.Email, p.Name, p.Phone, string(p.Role), p.IsActive, p.IsVerified, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("account %s already exists", p.ID),
				ResourceType: "principal",
				ResourceID:   p.ID,
			}
		}
		return fmt.Errorf("create principal: %w", err)
	}
	return nil
}

// GetByID retrieves a principal by ID.
func (r *PostgresPrincipalRepository) GetByID(ctx context.Context, id string) (*models.Principal, error) {
	query := fmt.Sprintf(`
		SELECT id, email, name, phone, role, is_active, is_verified, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Principals)

	executor := GetExecutor(ctx, r.pool)
	p, err := scanPrincipal(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("principal %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get principal: %w", err)
	}
	return p, nil
}

// Update persists profile fields.
func (r *PostgresPrincipalRepository) Update(ctx context.Context, p *models.Principal) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET email = $2, name = $3, phone = $4, is_verified = $5, updated_at = $6
		WHERE id = $1
	`, r.tables.Principals)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, p.ID, p.Email, p.Name, p.Phone, p.IsVerified, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update principal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("principal %s: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

// UpdateRole changes the role.
func (r *PostgresPrincipalRepository) UpdateRole(ctx context.Context, id string, role models.Role) error {
	query := fmt.Sprintf(`
		UPDATE %s SET role = $2, updated_at = now() WHERE id = $1
	`, r.tables.Principals)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, string(role))
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("principal %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List retrieves all principals, newest first.
func (r *PostgresPrincipalRepository) List(ctx context.Context) ([]models.Principal, error) {
	query := fmt.Sprintf(`
		SELECT id, email, name, phone, role, is_active, is_verified, created_at, updated_at
		FROM %s
		ORDER BY created_at DESC
	`, r.tables.Principals)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list principals: %w", err)
	}
	defer rows.Close()

	var principals []models.Principal
	for rows.Next() {
		p, err := scanPrincipal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan principal: %w", err)
		}
		principals = append(principals, *p)
	}
	return principals, rows.Err()
}

// rowScanner covers pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrincipal(row rowScanner) (*models.Principal, error) {
	var p models.Principal
	var role string
	err := row.Scan(&p.ID, &p.Email, &p.Name, &p.Phone, &role, &p.IsActive, &p.IsVerified, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	parsed, err := models.ParseRole(role)
	if err != nil {
		return nil, err
	}
	p.Role = parsed
	return &p, nil
}
