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
	"homeground/internal/storage"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// paymentService implements services.PaymentService. Payments are
// claims only: this layer records the transfer details and the proof
// document, and an admin settles the claim by hand.
type paymentService struct {
	payments   repositories.PaymentRepository
	properties repositories.PropertyRepository
	gate       services.AuthorizationGate
	blobs      storage.BlobStore
	logger     *slog.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	payments repositories.PaymentRepository,
	properties repositories.PropertyRepository,
	gate services.AuthorizationGate,
	blobs storage.BlobStore,
	logger *slog.Logger,
) services.PaymentService {
	return &paymentService{
		payments:   payments,
		properties: properties,
		gate:       gate,
		blobs:      blobs,
		logger:     logger,
	}
}

var proofContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// Submit records a bank-transfer claim with its proof document.
func (s *paymentService) Submit(ctx context.Context, req *services.SubmitPaymentRequest) (*models.Payment, error) {
	principal, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if err := validateSubmitPayment(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	// Property must exist before anything is stored.
	if _, err := s.properties.GetByID(ctx, req.PropertyID); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(req.ProofFilename))
	contentType, ok := proofContentTypes[ext]
	if !ok {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unsupported proof type %q", ext)}
	}

	path := fmt.Sprintf("payments/%s/%s%s", principal.ID, uuid.NewString(), ext)
	proofURL, err := s.blobs.Upload(ctx, path, req.Proof, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload payment proof: %w", err)
	}

	payment := &models.Payment{
		PayerID:     principal.ID,
		PropertyID:  req.PropertyID,
		Amount:      req.Amount,
		Reference:   strings.TrimSpace(req.Reference),
		ProofURL:    proofURL,
		Status:      models.PaymentSubmitted,
		SubmittedAt: time.Now(),
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info("payment claim submitted",
		"id", payment.ID,
		"payer_id", principal.ID,
		"property_id", req.PropertyID,
		"amount", req.Amount,
	)

	return payment, nil
}

// ListMine retrieves the caller's own claims.
func (s *paymentService) ListMine(ctx context.Context) ([]models.Payment, error) {
	principal, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	return s.payments.ListByPayer(ctx, principal.ID)
}

// ListAll retrieves every claim. Admin only.
func (s *paymentService) ListAll(ctx context.Context) ([]models.Payment, error) {
	if _, err := s.gate.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.payments.List(ctx)
}

// Review marks a claim verified or rejected. Admin only. Reviews are
// terminal; a decided claim cannot be re-decided.
func (s *paymentService) Review(ctx context.Context, id string, req *services.ReviewPaymentRequest) (*models.Payment, error) {
	principal, err := s.gate.RequireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment.Status != models.PaymentSubmitted {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("payment already %s", payment.Status)}
	}

	if req.Verified {
		payment.Status = models.PaymentVerified
	} else {
		payment.Status = models.PaymentRejected
	}
	now := time.Now()
	payment.ReviewedBy = &principal.ID
	payment.ReviewedAt = &now
	payment.ReviewNote = strings.TrimSpace(req.Note)

	if err := s.payments.UpdateStatus(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info("payment reviewed",
		"id", id,
		"status", payment.Status,
		"by", principal.ID,
	)

	return payment, nil
}

func validateSubmitPayment(req *services.SubmitPaymentRequest) error {
	return validation.Errors{
		"property_id":    validation.Validate(req.PropertyID, validation.Required),
		"amount":         validation.Validate(req.Amount, validation.Required, validation.Min(0.01)),
		"reference":      validation.Validate(req.Reference, validation.Required, validation.Length(4, 64)),
		"proof_filename": validation.Validate(req.ProofFilename, validation.Required),
		"proof":          validation.Validate(req.Proof, validation.Required),
	}.Filter()
}
