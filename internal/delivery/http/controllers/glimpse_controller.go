package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"clubportal/internal/delivery/http/helpers"
	"clubportal/internal/domain"
)

type GlimpseController struct {
	Logger  *slog.Logger
	Service domain.GlimpseService
}

func NewGlimpseController(logger *slog.Logger, svc domain.GlimpseService) *GlimpseController {
	return &GlimpseController{
		Logger:  logger,
		Service: svc,
	}
}

// GlimpseSuccessResponse is the success response envelope for POST /admin/events/{eventID}/glimpses (201).
type GlimpseSuccessResponse struct {
	Data  *domain.Glimpse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListGlimpsesSuccessResponse is the success response envelope for GET /events/{eventID}/glimpses (200).
type ListGlimpsesSuccessResponse struct {
	Data  []*domain.Glimpse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListByEvent godoc
// @Summary List glimpses for an event
// @Tags glimpses
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ListGlimpsesSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/glimpses [get]
func (c *GlimpseController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}

	items, err := c.Service.ListByEventID(r.Context(), eventID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if items == nil {
		items = []*domain.Glimpse{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// Upload godoc
// @Summary Upload a glimpse image for an event (admin)
// @Description Accepts a multipart form with an "image" file part (jpeg, png, webp, or gif, max 10MB) and an optional "caption" field. The image is stored in the blob store and its public URL recorded.
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param image formData file true "Image file"
// @Param caption formData string false "Caption"
// @Success 201 {object} controllers.GlimpseSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 413 {object} helpers.APIResponse "error.code: bad_request (file too large)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID}/glimpses [post]
func (c *GlimpseController) Upload(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxImageSize+1024)
	if err := r.ParseMultipartForm(domain.MaxImageSize); err != nil {
		helpers.WriteJSONError(w, http.StatusRequestEntityTooLarge, helpers.ErrCodeBadRequest, "image exceeds the maximum allowed size")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "image file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	caption := strings.TrimSpace(r.FormValue("caption"))

	g, err := c.Service.Upload(r.Context(), eventID, header.Filename, contentType, caption, file, header.Size)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, g)
}

// Delete godoc
// @Summary Delete a glimpse (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param glimpseID path string true "Glimpse ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/glimpses/{glimpseID} [delete]
func (c *GlimpseController) Delete(w http.ResponseWriter, r *http.Request) {
	glimpseID := r.PathValue("glimpseID")
	if !uuidRegex.MatchString(glimpseID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid glimpseID")
		return
	}

	if err := c.Service.Delete(r.Context(), glimpseID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "glimpse not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"deleted": glimpseID})
}
