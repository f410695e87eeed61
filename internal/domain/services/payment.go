package services

import (
	"context"

	"homeground/internal/domain/models"
)

// SubmitPaymentRequest records a claimed bank transfer with its proof
// document. Proof is stored in the blob store; only the URL is kept on
// the payment row.
type SubmitPaymentRequest struct {
	PropertyID    string
	Amount        float64
	Reference     string
	ProofFilename string
	Proof         []byte
}

// ReviewPaymentRequest records an admin verdict on a claim.
type ReviewPaymentRequest struct {
	Verified bool   `json:"verified"`
	Note     string `json:"note"`
}

// PaymentService manages manually claimed bank transfers.
type PaymentService interface {
	// Submit records a claim by the caller. Any authenticated user.
	Submit(ctx context.Context, req *SubmitPaymentRequest) (*models.Payment, error)

	// ListMine retrieves the caller's own claims.
	ListMine(ctx context.Context) ([]models.Payment, error)

	// ListAll retrieves every claim. Admin only.
	ListAll(ctx context.Context) ([]models.Payment, error)

	// Review marks a claim verified or rejected. Admin only.
	Review(ctx context.Context, id string, req *ReviewPaymentRequest) (*models.Payment, error)
}
