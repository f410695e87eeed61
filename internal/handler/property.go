package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"homeground/internal/domain/services"
	"homeground/internal/httputil"
)

// maxImageBytes caps listing image uploads.
const maxImageBytes = 5 << 20

// PropertyHandler handles property listing HTTP requests
type PropertyHandler struct {
	service services.PropertyService
	logger  *slog.Logger
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(service services.PropertyService, logger *slog.Logger) *PropertyHandler {
	return &PropertyHandler{
		service: service,
		logger:  logger,
	}
}

// ListProperties retrieves public listings matching the query filters
// GET /api/properties
func (h *PropertyHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := services.ListPropertiesRequest{
		City:        q.Get("city"),
		Type:        q.Get("type"),
		ListingType: q.Get("listing_type"),
	}
	var err error
	if req.MinPrice, err = parseFloatParam(q.Get("min_price")); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid min_price")
		return
	}
	if req.MaxPrice, err = parseFloatParam(q.Get("max_price")); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid max_price")
		return
	}
	if req.RadiusKm, err = parseFloatParam(q.Get("radius_km")); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid radius_km")
		return
	}
	if req.RadiusKm > 0 {
		lat, latErr := parseFloatParam(q.Get("lat"))
		lng, lngErr := parseFloatParam(q.Get("lng"))
		if latErr != nil || lngErr != nil || q.Get("lat") == "" || q.Get("lng") == "" {
			httputil.RespondError(w, http.StatusBadRequest, "radius_km requires lat and lng")
			return
		}
		req.Lat = &lat
		req.Lng = &lng
	}

	properties, err := h.service.List(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, properties)
}

// GetProperty retrieves a single listing
// GET /api/properties/{id}
func (h *PropertyHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "property ID is required")
		return
	}

	property, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, property)
}

// ListMyProperties retrieves the caller's own listings
// GET /api/properties/mine
func (h *PropertyHandler) ListMyProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.service.ListMine(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, properties)
}

// CreateProperty creates a new listing
// POST /api/properties
func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var req services.CreatePropertyRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	property, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, property)
}

// UpdateProperty modifies a listing
// PATCH /api/properties/{id}
func (h *PropertyHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "property ID is required")
		return
	}

	var req services.UpdatePropertyRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	property, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, property)
}

// DeleteProperty removes a listing
// DELETE /api/properties/{id}
func (h *PropertyHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "property ID is required")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadImage attaches an image to a listing. Expects multipart form
// data with a "file" part.
// POST /api/properties/{id}/images
func (h *PropertyHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "property ID is required")
		return
	}

	data, filename, err := readUpload(w, r, maxImageBytes)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	property, err := h.service.AttachImage(r.Context(), id, filename, data)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, property)
}

func parseFloatParam(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// readUpload reads the "file" part of a multipart form, enforcing the
// given size cap. Returns the file contents and the client filename.
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, "", errors.New("expected multipart form with a file part")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", errors.New("expected multipart form with a file part")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", errors.New("failed to read uploaded file")
	}
	return data, header.Filename, nil
}
