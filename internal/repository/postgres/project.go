package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"homeground/internal/domain"
	"homeground/internal/domain/models"
	"homeground/internal/domain/repositories"
)

// PostgresProjectRepository implements repositories.ProjectRepository.
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &PostgresProjectRepository{pool: config.Pool, tables: config.Tables}
}

const projectColumns = `id, created_by, name, slug, description, location, developer, status, created_at, updated_at`

// Create inserts a project and fills in the generated ID.
func (r *PostgresProjectRepository) Create(ctx context.Context, p *models.Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (created_by, name, slug, description, location, developer, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		p.CreatedBy, p.Name, p.Slug, p.Description, p.Location, p.Developer, string(p.Status), p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if IsPgDuplicateError(err) {
			existingID, queryErr := r.getIDBySlug(ctx, p.Slug)
			if queryErr != nil {
				return fmt.Errorf("project %q already exists: %w", p.Slug, domain.ErrConflict)
			}
			return &domain.ConflictError{
				Message:      fmt.Sprintf("project %q already exists", p.Slug),
				ResourceType: "project",
				ResourceID:   existingID,
			}
		}
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// GetByID retrieves a project by ID.
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, projectColumns, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	p, err := scanProject(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// GetBySlug retrieves a project by its public slug.
func (r *PostgresProjectRepository) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE slug = $1`, projectColumns, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	p, err := scanProject(executor.QueryRow(ctx, query, slug))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %s: %w", slug, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project by slug: %w", err)
	}
	return p, nil
}

// Update persists mutable project fields. The slug is immutable once
// created; public URLs depend on it.
func (r *PostgresProjectRepository) Update(ctx context.Context, p *models.Project) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $2, description = $3, location = $4, developer = $5, status = $6, updated_at = $7
		WHERE id = $1
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Location, p.Developer, string(p.Status), p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a project. Content rows cascade at the database.
func (r *PostgresProjectRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List retrieves all projects, newest first.
func (r *PostgresProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at DESC`, projectColumns, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (r *PostgresProjectRepository) getIDBySlug(ctx context.Context, slug string) (string, error) {
	query := fmt.Sprintf(`SELECT id FROM %s WHERE slug = $1`, r.tables.Projects)
	var id string
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, slug).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func scanProject(row rowScanner) (*models.Project, error) {
	var p models.Project
	var status string
	err := row.Scan(&p.ID, &p.CreatedBy, &p.Name, &p.Slug, &p.Description, &p.Location, &p.Developer, &status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Status = models.ProjectStatus(status)
	return &p, nil
}

// PostgresMemberRepository implements repositories.MemberRepository.
type PostgresMemberRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(config *RepositoryConfig) repositories.MemberRepository {
	return &PostgresMemberRepository{pool: config.Pool, tables: config.Tables}
}

// Create inserts a member record and fills in the generated ID.
func (r *PostgresMemberRepository) Create(ctx context.Context, m *models.Member) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, email, name, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, r.tables.Members)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, m.ProjectID, m.Email, m.Name, m.CreatedBy, m.CreatedAt).Scan(&m.ID)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("member %s already on project", m.Email),
				ResourceType: "member",
			}
		}
		return fmt.Errorf("create member: %w", err)
	}
	return nil
}

// GetByID retrieves a member record by ID.
func (r *PostgresMemberRepository) GetByID(ctx context.Context, id string) (*models.Member, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, email, name, created_by, created_at FROM %s WHERE id = $1
	`, r.tables.Members)

	executor := GetExecutor(ctx, r.pool)
	var m models.Member
	err := executor.QueryRow(ctx, query, id).Scan(&m.ID, &m.ProjectID, &m.Email, &m.Name, &m.CreatedBy, &m.CreatedAt)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("member %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return &m, nil
}

// Delete removes a member record.
func (r *PostgresMemberRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Members)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("member %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListByProject retrieves a project's members.
func (r *PostgresMemberRepository) ListByProject(ctx context.Context, projectID string) ([]models.Member, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, email, name, created_by, created_at
		FROM %s WHERE project_id = $1 ORDER BY created_at DESC
	`, r.tables.Members)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.Email, &m.Name, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
