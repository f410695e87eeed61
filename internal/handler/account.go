package handler

import (
	"log/slog"
	"net/http"

	"homeground/internal/domain/services"
	"homeground/internal/httputil"
)

// AccountHandler handles account HTTP requests, including the admin
// user management surface.
type AccountHandler struct {
	service services.PrincipalService
	logger  *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(service services.PrincipalService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		logger:  logger,
	}
}

// Register creates the caller's account row after first sign-in
// POST /api/users/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	principal, err := h.service.Register(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, principal)
}

// Me retrieves the caller's account
// GET /api/users/me
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, err := h.service.Me(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, principal)
}

// UpdateMe modifies the caller's profile
// PATCH /api/users/me
func (h *AccountHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateProfileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	principal, err := h.service.UpdateMe(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, principal)
}

// ListAccounts retrieves all accounts
// GET /api/admin/users
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	principals, err := h.service.ListAccounts(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, principals)
}

// ChangeRole reassigns an account's role
// PATCH /api/admin/users/{id}/role
func (h *AccountHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	principal, err := h.service.ChangeRole(r.Context(), id, req.Role)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, principal)
}
