package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"homeground/internal/domain"
	"homeground/internal/domain/models"
	"homeground/internal/domain/repositories"
)

// The three scheduled-content repositories share the same shape:
// denormalized schedule_visibility enum plus a nullable scheduled_at,
// with the display window columns only on offers and events. Rows are
// stored as authored; visibility is decided on read.

// PostgresProjectUpdateRepository implements repositories.ProjectUpdateRepository.
type PostgresProjectUpdateRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProjectUpdateRepository creates a new project update repository
func NewProjectUpdateRepository(config *RepositoryConfig) repositories.ProjectUpdateRepository {
	return &PostgresProjectUpdateRepository{pool: config.Pool, tables: config.Tables}
}

// Create inserts an update and fills in the generated ID.
func (r *PostgresProjectUpdateRepository) Create(ctx context.Context, u *models.ProjectUpdate) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, created_by, title, body, schedule_visibility, scheduled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, r.tables.ProjectUpdates)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		u.ProjectID, u.CreatedBy, u.Title, u.Body,
		string(u.Schedule.Visibility), u.Schedule.ScheduledAt, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("create project update: %w", err)
	}
	return nil
}

// GetByID retrieves an update by ID.
func (r *PostgresProjectUpdateRepository) GetByID(ctx context.Context, id string) (*models.ProjectUpdate, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, created_by, title, body, schedule_visibility, scheduled_at, created_at, updated_at
		FROM %s WHERE id = $1
	`, r.tables.ProjectUpdates)

	executor := GetExecutor(ctx, r.pool)
	u, err := scanProjectUpdate(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project update %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project update: %w", err)
	}
	return u, nil
}

// Update replaces an update's content and visibility fields.
func (r *PostgresProjectUpdateRepository) Update(ctx context.Context, u *models.ProjectUpdate) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $2, body = $3, schedule_visibility = $4, scheduled_at = $5, updated_at = $6
		WHERE id = $1
	`, r.tables.ProjectUpdates)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		u.ID, u.Title, u.Body, string(u.Schedule.Visibility), u.Schedule.ScheduledAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project update %s: %w", u.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes an update permanently.
func (r *PostgresProjectUpdateRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.pool, r.tables.ProjectUpdates, "project update", id)
}

// ListByProject retrieves a project's updates, newest first.
func (r *PostgresProjectUpdateRepository) ListByProject(ctx context.Context, projectID string) ([]models.ProjectUpdate, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, created_by, title, body, schedule_visibility, scheduled_at, created_at, updated_at
		FROM %s WHERE project_id = $1 ORDER BY created_at DESC
	`, r.tables.ProjectUpdates)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project updates: %w", err)
	}
	defer rows.Close()

	var updates []models.ProjectUpdate
	for rows.Next() {
		u, err := scanProjectUpdate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project update: %w", err)
		}
		updates = append(updates, *u)
	}
	return updates, rows.Err()
}

func scanProjectUpdate(row rowScanner) (*models.ProjectUpdate, error) {
	var u models.ProjectUpdate
	var vis string
	err := row.Scan(&u.ID, &u.ProjectID, &u.CreatedBy, &u.Title, &u.Body, &vis, &u.Schedule.ScheduledAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Schedule.Visibility = models.ScheduleVisibility(vis)
	return &u, nil
}

// PostgresProjectOfferRepository implements repositories.ProjectOfferRepository.
type PostgresProjectOfferRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProjectOfferRepository creates a new project offer repository
func NewProjectOfferRepository(config *RepositoryConfig) repositories.ProjectOfferRepository {
	return &PostgresProjectOfferRepository{pool: config.Pool, tables: config.Tables}
}

// Create inserts an offer and fills in the generated ID.
func (r *PostgresProjectOfferRepository) Create(ctx context.Context, o *models.ProjectOffer) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, created_by, title, description, terms,
			schedule_visibility, scheduled_at, start_datetime, end_datetime, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, r.tables.ProjectOffers)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		o.ProjectID, o.CreatedBy, o.Title, o.Description, o.Terms,
		string(o.Schedule.Visibility), o.Schedule.ScheduledAt,
		o.Window.StartDatetime, o.Window.EndDatetime, o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("create project offer: %w", err)
	}
	return nil
}

// GetByID retrieves an offer by ID.
func (r *PostgresProjectOfferRepository) GetByID(ctx context.Context, id string) (*models.ProjectOffer, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, created_by, title, description, terms,
			schedule_visibility, scheduled_at, start_datetime, end_datetime, created_at, updated_at
		FROM %s WHERE id = $1
	`, r.tables.ProjectOffers)

	executor := GetExecutor(ctx, r.pool)
	o, err := scanProjectOffer(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project offer %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project offer: %w", err)
	}
	return o, nil
}

// Update replaces an offer's content, visibility and window fields.
func (r *PostgresProjectOfferRepository) Update(ctx context.Context, o *models.ProjectOffer) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $2, description = $3, terms = $4, schedule_visibility = $5,
			scheduled_at = $6, start_datetime = $7, end_datetime = $8, updated_at = $9
		WHERE id = $1
	`, r.tables.ProjectOffers)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		o.ID, o.Title, o.Description, o.Terms, string(o.Schedule.Visibility),
		o.Schedule.ScheduledAt, o.Window.StartDatetime, o.Window.EndDatetime, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project offer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project offer %s: %w", o.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes an offer permanently.
func (r *PostgresProjectOfferRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.pool, r.tables.ProjectOffers, "project offer", id)
}

// ListByProject retrieves a project's offers, newest first.
func (r *PostgresProjectOfferRepository) ListByProject(ctx context.Context, projectID string) ([]models.ProjectOffer, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, created_by, title, description, terms,
			schedule_visibility, scheduled_at, start_datetime, end_datetime, created_at, updated_at
		FROM %s WHERE project_id = $1 ORDER BY start_datetime DESC
	`, r.tables.ProjectOffers)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project offers: %w", err)
	}
	defer rows.Close()

	var offers []models.ProjectOffer
	for rows.Next() {
		o, err := scanProjectOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project offer: %w", err)
		}
		offers = append(offers, *o)
	}
	return offers, rows.Err()
}

func scanProjectOffer(row rowScanner) (*models.ProjectOffer, error) {
	var o models.ProjectOffer
	var vis string
	err := row.Scan(&o.ID, &o.ProjectID, &o.CreatedBy, &o.Title, &o.Description, &o.Terms,
		&vis, &o.Schedule.ScheduledAt, &o.Window.StartDatetime, &o.Window.EndDatetime, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Schedule.Visibility = models.ScheduleVisibility(vis)
	return &o, nil
}

// PostgresProjectEventRepository implements repositories.ProjectEventRepository.
type PostgresProjectEventRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProjectEventRepository creates a new project event repository
func NewProjectEventRepository(config *RepositoryConfig) repositories.ProjectEventRepository {
	return &PostgresProjectEventRepository{pool: config.Pool, tables: config.Tables}
}

// Create inserts an event and fills in the generated ID.
func (r *PostgresProjectEventRepository) Create(ctx context.Context, e *models.ProjectEvent) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, created_by, title, description, venue,
			schedule_visibility, scheduled_at, start_datetime, end_datetime, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, r.tables.ProjectEvents)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		e.ProjectID, e.CreatedBy, e.Title, e.Description, e.Venue,
		string(e.Schedule.Visibility), e.Schedule.ScheduledAt,
		e.Window.StartDatetime, e.Window.EndDatetime, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("create project event: %w", err)
	}
	return nil
}

// GetByID retrieves an event by ID.
func (r *PostgresProjectEventRepository) GetByID(ctx context.Context, id string) (*models.ProjectEvent, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, created_by, title, description, venue,
			schedule_visibility, scheduled_at, start_datetime, end_datetime, created_at, updated_at
		FROM %s WHERE id = $1
	`, r.tables.ProjectEvents)

	executor := GetExecutor(ctx, r.pool)
	e, err := scanProjectEvent(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project event %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project event: %w", err)
	}
	return e, nil
}

// Update replaces an event's content, visibility and window fields.
func (r *PostgresProjectEventRepository) Update(ctx context.Context, e *models.ProjectEvent) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $2, description = $3, venue = $4, schedule_visibility = $5,
			scheduled_at = $6, start_datetime = $7, end_datetime = $8, updated_at = $9
		WHERE id = $1
	`, r.tables.ProjectEvents)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		e.ID, e.Title, e.Description, e.Venue, string(e.Schedule.Visibility),
		e.Schedule.ScheduledAt, e.Window.StartDatetime, e.Window.EndDatetime, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project event %s: %w", e.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes an event permanently.
func (r *PostgresProjectEventRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.pool, r.tables.ProjectEvents, "project event", id)
}

// ListByProject retrieves a project's events, soonest first.
func (r *PostgresProjectEventRepository) ListByProject(ctx context.Context, projectID string) ([]models.ProjectEvent, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, created_by, title, description, venue,
			schedule_visibility, scheduled_at, start_datetime, end_datetime, created_at, updated_at
		FROM %s WHERE project_id = $1 ORDER BY start_datetime ASC
	`, r.tables.ProjectEvents)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project events: %w", err)
	}
	defer rows.Close()

	var events []models.ProjectEvent
	for rows.Next() {
		e, err := scanProjectEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func scanProjectEvent(row rowScanner) (*models.ProjectEvent, error) {
	var e models.ProjectEvent
	var vis string
	err := row.Scan(&e.ID, &e.ProjectID, &e.CreatedBy, &e.Title, &e.Description, &e.Venue,
		&vis, &e.Schedule.ScheduledAt, &e.Window.StartDatetime, &e.Window.EndDatetime, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Schedule.Visibility = models.ScheduleVisibility(vis)
	return &e, nil
}

// deleteByID removes one row, mapping a zero-row delete to not found.
func deleteByID(ctx context.Context, pool *pgxpool.Pool, table, kind, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table)

	executor := GetExecutor(ctx, pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	return nil
}
