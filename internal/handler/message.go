package handler

import (
	"log/slog"
	"net/http"

	"homeground/internal/domain/services"
	"homeground/internal/httputil"
)

// MessageHandler handles buyer/seller conversation HTTP requests
type MessageHandler struct {
	service services.MessageService
	logger  *slog.Logger
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(service services.MessageService, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		service: service,
		logger:  logger,
	}
}

// StartThread opens a conversation about a property
// POST /api/threads
func (h *MessageHandler) StartThread(w http.ResponseWriter, r *http.Request) {
	var req services.StartThreadRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	thread, err := h.service.StartThread(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, thread)
}

// ListThreads retrieves the caller's conversations
// GET /api/threads
func (h *MessageHandler) ListThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := h.service.ListThreads(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, threads)
}

// ListMessages retrieves a thread's messages
// GET /api/threads/{id}/messages
func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "thread ID is required")
		return
	}

	messages, err := h.service.ListMessages(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, messages)
}

// PostMessage appends a message to a thread
// POST /api/threads/{id}/messages
func (h *MessageHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "thread ID is required")
		return
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.service.Post(r.Context(), id, req.Body)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, message)
}
