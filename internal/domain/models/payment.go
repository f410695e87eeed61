package models

import "time"

// PaymentStatus tracks a claimed bank transfer through manual review.
// There is no gateway integration; this system only records the claim
// and the uploaded proof document.
type PaymentStatus string

const (
	PaymentSubmitted PaymentStatus = "submitted"
	PaymentVerified  PaymentStatus = "verified"
	PaymentRejected  PaymentStatus = "rejected"
)

// Payment is a manually claimed bank transfer against a property,
// with an uploaded proof document. Verification is admin-only.
type Payment struct {
	ID          string        `json:"id"`
	PayerID     string        `json:"payer_id"`
	PropertyID  string        `json:"property_id"`
	Amount      float64       `json:"amount"`
	Reference   string        `json:"reference"`
	ProofURL    string        `json:"proof_url"`
	Status      PaymentStatus `json:"status"`
	ReviewedBy  *string       `json:"reviewed_by,omitempty"`
	ReviewNote  string        `json:"review_note,omitempty"`
	SubmittedAt time.Time     `json:"submitted_at"`
	ReviewedAt  *time.Time    `json:"reviewed_at,omitempty"`
}
