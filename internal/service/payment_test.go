package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"homeground/internal/domain"
	"homeground/internal/domain/models"
	"homeground/internal/domain/services"
)

type fakePaymentRepo struct {
	payments map[string]*models.Payment
	nextID   int
}

func (r *fakePaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	if r.payments == nil {
		r.payments = make(map[string]*models.Payment)
	}
	r.nextID++
	p.ID = fmt.Sprintf("pay-%d", r.nextID)
	stored := *p
	r.payments[p.ID] = &stored
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	if p, ok := r.payments[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, fmt.Errorf("payment %s: %w", id, domain.ErrNotFound)
}

func (r *fakePaymentRepo) UpdateStatus(ctx context.Context, p *models.Payment) error {
	if _, ok := r.payments[p.ID]; !ok {
		return fmt.Errorf("payment %s: %w", p.ID, domain.ErrNotFound)
	}
	stored := *p
	r.payments[p.ID] = &stored
	return nil
}

func (r *fakePaymentRepo) ListByPayer(ctx context.Context, payerID string) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.payments {
		if p.PayerID == payerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) List(ctx context.Context) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.payments {
		out = append(out, *p)
	}
	return out, nil
}

type fakeBlobStore struct {
	uploads int
}

func (b *fakeBlobStore) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	b.uploads++
	return "https://blobs.example/" + path, nil
}

// newPaymentFixture seeds one submitted claim by buyer-1 on prop-1.
func newPaymentFixture(viewer *models.Principal) (services.PaymentService, *fakePaymentRepo, *fakeBlobStore) {
	payments := &fakePaymentRepo{nextID: 1, payments: map[string]*models.Payment{
		"pay-1": {
			ID:          "pay-1",
			PayerID:     "buyer-1",
			PropertyID:  "prop-1",
			Amount:      50000,
			Reference:   "BT-2026-0001",
			Status:      models.PaymentSubmitted,
			SubmittedAt: time.Now(),
		},
	}}
	properties := &fakePropertyRepo{properties: map[string]*models.Property{
		"prop-1": {ID: "prop-1", SellerID: "seller-1", Title: "Two-Storey House"},
	}}
	blobs := &fakeBlobStore{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewPaymentService(payments, properties, &fakeGate{principal: viewer}, blobs, logger)
	return svc, payments, blobs
}

func TestReviewRequiresAdmin(t *testing.T) {
	tests := []struct {
		name   string
		viewer *models.Principal
	}{
		{"buyer", &models.Principal{ID: "buyer-1", Role: models.RoleBuyer}},
		{"seller", &models.Principal{ID: "seller-1", Role: models.RoleSeller}},
		{"agent", &models.Principal{ID: "agent-1", Role: models.RoleAgent}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, payments, _ := newPaymentFixture(tt.viewer)

			_, err := svc.Review(context.Background(), "pay-1", &services.ReviewPaymentRequest{Verified: true})

			var forbidden *domain.ForbiddenError
			if !errors.As(err, &forbidden) {
				t.Errorf("Review() error = %v, want ForbiddenError", err)
			}
			if payments.payments["pay-1"].Status != models.PaymentSubmitted {
				t.Errorf("Review() by non-admin changed status to %s", payments.payments["pay-1"].Status)
			}
		})
	}
}

func TestReviewAnonymousUnauthenticated(t *testing.T) {
	svc, _, _ := newPaymentFixture(nil)

	_, err := svc.Review(context.Background(), "pay-1", &services.ReviewPaymentRequest{Verified: true})

	var unauthed *domain.UnauthenticatedError
	if !errors.As(err, &unauthed) {
		t.Errorf("Review() error = %v, want UnauthenticatedError", err)
	}
}

func TestReviewRecordsVerdict(t *testing.T) {
	tests := []struct {
		name string
		req  services.ReviewPaymentRequest
		want models.PaymentStatus
	}{
		{"verify", services.ReviewPaymentRequest{Verified: true}, models.PaymentVerified},
		{"reject with note", services.ReviewPaymentRequest{Verified: false, Note: "reference not found on statement"}, models.PaymentRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admin := &models.Principal{ID: "admin-1", Role: models.RoleAdmin}
			svc, payments, _ := newPaymentFixture(admin)

			payment, err := svc.Review(context.Background(), "pay-1", &tt.req)
			if err != nil {
				t.Fatalf("Review() error = %v", err)
			}
			if payment.Status != tt.want {
				t.Errorf("Review() status = %s, want %s", payment.Status, tt.want)
			}
			if payment.ReviewedBy == nil || *payment.ReviewedBy != admin.ID {
				t.Errorf("Review() reviewed_by = %v, want %s", payment.ReviewedBy, admin.ID)
			}
			if payment.ReviewedAt == nil {
				t.Error("Review() left reviewed_at unset")
			}
			if payment.ReviewNote != tt.req.Note {
				t.Errorf("Review() note = %q, want %q", payment.ReviewNote, tt.req.Note)
			}
			if payments.payments["pay-1"].Status != tt.want {
				t.Errorf("Review() stored status = %s, want %s", payments.payments["pay-1"].Status, tt.want)
			}
		})
	}
}

func TestReviewIsTerminal(t *testing.T) {
	for _, decided := range []models.PaymentStatus{models.PaymentVerified, models.PaymentRejected} {
		t.Run(string(decided), func(t *testing.T) {
			svc, payments, _ := newPaymentFixture(&models.Principal{ID: "admin-1", Role: models.RoleAdmin})
			payments.payments["pay-1"].Status = decided

			_, err := svc.Review(context.Background(), "pay-1", &services.ReviewPaymentRequest{Verified: false})

			var validationErr *domain.ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("Review() error = %v, want ValidationError", err)
			}
			if payments.payments["pay-1"].Status != decided {
				t.Errorf("Review() overwrote decided status with %s", payments.payments["pay-1"].Status)
			}
		})
	}
}

func TestReviewMissingPaymentReadsNotFound(t *testing.T) {
	svc, _, _ := newPaymentFixture(&models.Principal{ID: "admin-1", Role: models.RoleAdmin})

	_, err := svc.Review(context.Background(), "pay-missing", &services.ReviewPaymentRequest{Verified: true})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Review() error = %v, want ErrNotFound", err)
	}
}

func TestListAllRequiresAdmin(t *testing.T) {
	svc, _, _ := newPaymentFixture(&models.Principal{ID: "buyer-1", Role: models.RoleBuyer})

	_, err := svc.ListAll(context.Background())

	var forbidden *domain.ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Errorf("ListAll() error = %v, want ForbiddenError", err)
	}
}

func TestSubmitRejectsUnknownProofType(t *testing.T) {
	svc, _, blobs := newPaymentFixture(&models.Principal{ID: "buyer-1", Role: models.RoleBuyer})

	_, err := svc.Submit(context.Background(), &services.SubmitPaymentRequest{
		PropertyID:    "prop-1",
		Amount:        50000,
		Reference:     "BT-2026-0002",
		ProofFilename: "proof.exe",
		Proof:         []byte("binary"),
	})

	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Submit() error = %v, want ValidationError", err)
	}
	if blobs.uploads != 0 {
		t.Errorf("Submit() uploaded %d blobs for a rejected claim", blobs.uploads)
	}
}

func TestSubmitStoresProofURL(t *testing.T) {
	svc, payments, blobs := newPaymentFixture(&models.Principal{ID: "buyer-1", Role: models.RoleBuyer})

	payment, err := svc.Submit(context.Background(), &services.SubmitPaymentRequest{
		PropertyID:    "prop-1",
		Amount:        50000,
		Reference:     "BT-2026-0002",
		ProofFilename: "deposit-slip.pdf",
		Proof:         []byte("%PDF-1.7"),
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if payment.Status != models.PaymentSubmitted {
		t.Errorf("Submit() status = %s, want submitted", payment.Status)
	}
	if payment.ProofURL == "" {
		t.Error("Submit() left proof_url empty")
	}
	if blobs.uploads != 1 {
		t.Errorf("Submit() uploads = %d, want 1", blobs.uploads)
	}
	if len(payments.payments) != 2 {
		t.Errorf("Submit() stored %d payments, want 2", len(payments.payments))
	}
}
