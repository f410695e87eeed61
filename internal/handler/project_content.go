package handler

import (
	"log/slog"
	"net/http"

	"homeground/internal/domain/services"
	"homeground/internal/httputil"
)

// ContentHandler handles the scheduled content on project microsites:
// updates, offers and events. Public list endpoints return only what
// the visibility scheduler lets the caller see.
type ContentHandler struct {
	service services.ContentService
	logger  *slog.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(service services.ContentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		service: service,
		logger:  logger,
	}
}

// ListUpdates retrieves a project's visible updates
// GET /api/projects/{id}/updates
func (h *ContentHandler) ListUpdates(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	updates, err := h.service.ListUpdates(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, updates)
}

// CreateUpdate creates a project update
// POST /api/projects/{id}/updates
func (h *ContentHandler) CreateUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	var req services.CreateUpdateRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update, err := h.service.CreateUpdate(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, update)
}

// ReplaceUpdate replaces a project update
// PUT /api/updates/{id}
func (h *ContentHandler) ReplaceUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "update ID is required")
		return
	}

	var req services.ReplaceUpdateRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update, err := h.service.ReplaceUpdate(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, update)
}

// DeleteUpdate removes a project update
// DELETE /api/updates/{id}
func (h *ContentHandler) DeleteUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "update ID is required")
		return
	}

	if err := h.service.DeleteUpdate(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListOffers retrieves a project's visible offers
// GET /api/projects/{id}/offers
func (h *ContentHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	offers, err := h.service.ListOffers(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, offers)
}

// CreateOffer creates a project offer
// POST /api/projects/{id}/offers
func (h *ContentHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	var req services.CreateOfferRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	offer, err := h.service.CreateOffer(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, offer)
}

// ReplaceOffer replaces a project offer
// PUT /api/offers/{id}
func (h *ContentHandler) ReplaceOffer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "offer ID is required")
		return
	}

	var req services.ReplaceOfferRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	offer, err := h.service.ReplaceOffer(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, offer)
}

// DeleteOffer removes a project offer
// DELETE /api/offers/{id}
func (h *ContentHandler) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "offer ID is required")
		return
	}

	if err := h.service.DeleteOffer(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListEvents retrieves a project's visible events
// GET /api/projects/{id}/events
func (h *ContentHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	events, err := h.service.ListEvents(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, events)
}

// CreateEvent creates a project event
// POST /api/projects/{id}/events
func (h *ContentHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	var req services.CreateEventRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.service.CreateEvent(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, event)
}

// ReplaceEvent replaces a project event
// PUT /api/events/{id}
func (h *ContentHandler) ReplaceEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "event ID is required")
		return
	}

	var req services.ReplaceEventRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.service.ReplaceEvent(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, event)
}

// DeleteEvent removes a project event
// DELETE /api/events/{id}
func (h *ContentHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "event ID is required")
		return
	}

	if err := h.service.DeleteEvent(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
