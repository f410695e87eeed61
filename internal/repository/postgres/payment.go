package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"homeground/internal/domain"
	"homeground/internal/domain/models"
	"homeground/internal/domain/repositories"
)

// PostgresPaymentRepository implements repositories.PaymentRepository.
type PostgresPaymentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(config *RepositoryConfig) repositories.PaymentRepository {
	return &PostgresPaymentRepository{pool: config.Pool, tables: config.Tables}
}

const paymentColumns = `id, payer_id, property_id, amount, reference, proof_url, status,
	reviewed_by, review_note, submitted_at, reviewed_at`

// Create inserts a payment claim and fills in the generated ID.
func (r *PostgresPaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (payer_id, property_id, amount, reference, proof_url, status, review_note, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, r.tables.Payments)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		p.PayerID, p.PropertyID, p.Amount, p.Reference, p.ProofURL, string(p.Status), p.ReviewNote, p.SubmittedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

// GetByID retrieves a payment by ID.
func (r *PostgresPaymentRepository) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, paymentColumns, r.tables.Payments)

	executor := GetExecutor(ctx, r.pool)
	p, err := scanPayment(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("payment %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// UpdateStatus records the review decision.
func (r *PostgresPaymentRepository) UpdateStatus(ctx context.Context, p *models.Payment) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $2, reviewed_by = $3, review_note = $4, reviewed_at = $5
		WHERE id = $1
	`, r.tables.Payments)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, p.ID, string(p.Status), p.ReviewedBy, p.ReviewNote, p.ReviewedAt)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment %s: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

// ListByPayer retrieves a payer's claims, newest first.
func (r *PostgresPaymentRepository) ListByPayer(ctx context.Context, payerID string) ([]models.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE payer_id = $1 ORDER BY submitted_at DESC`,
		paymentColumns, r.tables.Payments)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, payerID)
	if err != nil {
		return nil, fmt.Errorf("list payments by payer: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

// List retrieves all payment claims, newest first.
func (r *PostgresPaymentRepository) List(ctx context.Context) ([]models.Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY submitted_at DESC`, paymentColumns, r.tables.Payments)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func scanPayment(row rowScanner) (*models.Payment, error) {
	var p models.Payment
	var status string
	err := row.Scan(&p.ID, &p.PayerID, &p.PropertyID, &p.Amount, &p.Reference, &p.ProofURL, &status,
		&p.ReviewedBy, &p.ReviewNote, &p.SubmittedAt, &p.ReviewedAt)
	if err != nil {
		return nil, err
	}
	p.Status = models.PaymentStatus(status)
	return &p, nil
}
