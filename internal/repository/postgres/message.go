package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"homeground/internal/domain"
	"homeground/internal/domain/models"
	"homeground/internal/domain/repositories"
)

// PostgresThreadRepository implements repositories.ThreadRepository.
type PostgresThreadRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewThreadRepository creates a new thread repository
func NewThreadRepository(config *RepositoryConfig) repositories.ThreadRepository {
	return &PostgresThreadRepository{pool: config.Pool, tables: config.Tables}
}

const threadColumns = `id, property_id, buyer_id, seller_id, created_at, updated_at`

// Create inserts a thread and fills in the generated ID.
func (r *PostgresThreadRepository) Create(ctx context.Context, t *models.MessageThread) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (property_id, buyer_id, seller_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, r.tables.Threads)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		t.PropertyID, t.BuyerID, t.SellerID, t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      "thread already exists for this property",
				ResourceType: "thread",
			}
		}
		// Property deleted between the service check and the insert.
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("property %s: %w", t.PropertyID, domain.ErrNotFound)
		}
		return fmt.Errorf("create thread: %w", err)
	}
	return nil
}

// GetByID retrieves a thread by ID.
func (r *PostgresThreadRepository) GetByID(ctx context.Context, id string) (*models.MessageThread, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, threadColumns, r.tables.Threads)

	executor := GetExecutor(ctx, r.pool)
	t, err := scanThread(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("thread %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get thread: %w", err)
	}
	return t, nil
}

// GetByPropertyAndBuyer finds the buyer's existing thread on a property.
func (r *PostgresThreadRepository) GetByPropertyAndBuyer(ctx context.Context, propertyID, buyerID string) (*models.MessageThread, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE property_id = $1 AND buyer_id = $2`,
		threadColumns, r.tables.Threads)

	executor := GetExecutor(ctx, r.pool)
	t, err := scanThread(executor.QueryRow(ctx, query, propertyID, buyerID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("thread for property %s: %w", propertyID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get thread by property and buyer: %w", err)
	}
	return t, nil
}

// ListByParticipant retrieves threads the principal is on either side
// of, most recently active first.
func (r *PostgresThreadRepository) ListByParticipant(ctx context.Context, principalID string) ([]models.MessageThread, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE buyer_id = $1 OR seller_id = $1
		ORDER BY updated_at DESC
	`, threadColumns, r.tables.Threads)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, principalID)
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	defer rows.Close()

	var threads []models.MessageThread
	for rows.Next() {
		t, err := scanThread(rows)
		if err != nil {
			return nil, fmt.Errorf("scan thread: %w", err)
		}
		threads = append(threads, *t)
	}
	return threads, rows.Err()
}

// Touch bumps updated_at so the thread sorts to the top of inboxes.
func (r *PostgresThreadRepository) Touch(ctx context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET updated_at = now() WHERE id = $1`, r.tables.Threads)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("touch thread: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("thread %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanThread(row rowScanner) (*models.MessageThread, error) {
	var t models.MessageThread
	err := row.Scan(&t.ID, &t.PropertyID, &t.BuyerID, &t.SellerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// PostgresMessageRepository implements repositories.MessageRepository.
type PostgresMessageRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(config *RepositoryConfig) repositories.MessageRepository {
	return &PostgresMessageRepository{pool: config.Pool, tables: config.Tables}
}

// Create inserts a message and fills in the generated ID.
func (r *PostgresMessageRepository) Create(ctx context.Context, m *models.Message) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (thread_id, sender_id, body, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, r.tables.Messages)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, m.ThreadID, m.SenderID, m.Body, m.CreatedAt).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

// ListByThread retrieves a thread's messages, oldest first.
func (r *PostgresMessageRepository) ListByThread(ctx context.Context, threadID string) ([]models.Message, error) {
	query := fmt.Sprintf(`
		SELECT id, thread_id, sender_id, body, created_at
		FROM %s WHERE thread_id = $1 ORDER BY created_at ASC
	`, r.tables.Messages)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, threadID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ThreadID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
