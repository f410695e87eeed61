package handler

import (
	"log/slog"
	"net/http"

	"homeground/internal/domain/services"
	"homeground/internal/httputil"
)

// ProjectHandler handles development microsite HTTP requests
type ProjectHandler struct {
	service services.ProjectService
	logger  *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(service services.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		service: service,
		logger:  logger,
	}
}

// ListProjects retrieves projects visible to the caller
// GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.List(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, projects)
}

// GetProject retrieves a project by its public slug
// GET /api/projects/{slug}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project slug is required")
		return
	}

	project, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// CreateProject creates a new microsite
// POST /api/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req services.CreateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, project)
}

// UpdateProject modifies a microsite
// PATCH /api/projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	var req services.UpdateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// DeleteProject removes a microsite
// DELETE /api/projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListMembers retrieves a project's member records
// GET /api/projects/{id}/members
func (h *ProjectHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	members, err := h.service.ListMembers(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, members)
}

// AddMember registers a member on a project
// POST /api/projects/{id}/members
func (h *ProjectHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	var req services.AddMemberRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ProjectID = id

	member, err := h.service.AddMember(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, member)
}

// RemoveMember deletes a member record
// DELETE /api/members/{id}
func (h *ProjectHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "member ID is required")
		return
	}

	if err := h.service.RemoveMember(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
