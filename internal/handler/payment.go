package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"homeground/internal/domain/services"
	"homeground/internal/httputil"
)

// maxProofBytes caps payment proof uploads.
const maxProofBytes = 10 << 20

// PaymentHandler handles bank-transfer claim HTTP requests
type PaymentHandler struct {
	service services.PaymentService
	logger  *slog.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(service services.PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger,
	}
}

// SubmitPayment records a claimed transfer. Expects multipart form data
// with property_id, amount and reference fields plus a "file" proof
// part.
// POST /api/payments
func (h *PaymentHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	proof, filename, err := readUpload(w, r, maxProofBytes)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	req := services.SubmitPaymentRequest{
		PropertyID:    r.FormValue("property_id"),
		Amount:        amount,
		Reference:     r.FormValue("reference"),
		ProofFilename: filename,
		Proof:         proof,
	}

	payment, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, payment)
}

// ListMyPayments retrieves the caller's claims
// GET /api/payments/mine
func (h *PaymentHandler) ListMyPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.ListMine(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, payments)
}

// ListPayments retrieves every claim for review
// GET /api/payments
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.ListAll(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, payments)
}

// ReviewPayment records a verdict on a claim
// POST /api/payments/{id}/review
func (h *PaymentHandler) ReviewPayment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "payment ID is required")
		return
	}

	var req services.ReviewPaymentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payment, err := h.service.Review(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, payment)
}
