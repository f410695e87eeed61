package repositories

import (
	"context"

	"homeground/internal/domain/models"
)

// PaymentRepository defines data access for bank-transfer claims.
type PaymentRepository interface {
	Create(ctx context.Context, p *models.Payment) error

	GetByID(ctx context.Context, id string) (*models.Payment, error)

	// UpdateStatus records the admin review decision.
	UpdateStatus(ctx context.Context, p *models.Payment) error

	ListByPayer(ctx context.Context, payerID string) ([]models.Payment, error)

	// List retrieves all payments, newest first. Admin surface only.
	List(ctx context.Context) ([]models.Payment, error)
}
