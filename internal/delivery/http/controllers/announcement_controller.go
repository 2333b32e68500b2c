package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"clubportal/internal/delivery/http/helpers"
	"clubportal/internal/domain"
)

type AnnouncementController struct {
	Logger  *slog.Logger
	Service domain.AnnouncementService
}

func NewAnnouncementController(logger *slog.Logger, svc domain.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{
		Logger:  logger,
		Service: svc,
	}
}

// AnnouncementRequest is the request body for creating or updating an announcement.
type AnnouncementRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Validate implements helpers.Validator.
func (r *AnnouncementRequest) Validate() []string {
	var errs []string
	r.Title = strings.TrimSpace(r.Title)
	r.Body = strings.TrimSpace(r.Body)
	if r.Title == "" {
		errs = append(errs, "title is required")
	}
	if r.Body == "" {
		errs = append(errs, "body is required")
	}
	return errs
}

// AnnouncementSuccessResponse is the success response envelope for single-announcement endpoints.
type AnnouncementSuccessResponse struct {
	Data  *domain.Announcement `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ListAnnouncementsSuccessResponse is the success response envelope for GET /announcements (200).
type ListAnnouncementsSuccessResponse struct {
	Data  []*domain.Announcement `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// List godoc
// @Summary List announcements
// @Tags announcements
// @Produce json
// @Success 200 {object} controllers.ListAnnouncementsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /announcements [get]
func (c *AnnouncementController) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if items == nil {
		items = []*domain.Announcement{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// Create godoc
// @Summary Create an announcement (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.AnnouncementRequest true "Announcement"
// @Success 201 {object} controllers.AnnouncementSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/announcements [post]
func (c *AnnouncementController) Create(w http.ResponseWriter, r *http.Request) {
	var req AnnouncementRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	a, err := c.Service.Create(r.Context(), req.Title, req.Body)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, a)
}

// Update godoc
// @Summary Update an announcement (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param announcementID path string true "Announcement ID (UUID)"
// @Param body body controllers.AnnouncementRequest true "Announcement"
// @Success 200 {object} controllers.AnnouncementSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/announcements/{announcementID} [put]
func (c *AnnouncementController) Update(w http.ResponseWriter, r *http.Request) {
	announcementID := r.PathValue("announcementID")
	if !uuidRegex.MatchString(announcementID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid announcementID")
		return
	}

	var req AnnouncementRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	a, err := c.Service.Update(r.Context(), announcementID, req.Title, req.Body)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "announcement not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, a)
}

// Delete godoc
// @Summary Delete an announcement (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param announcementID path string true "Announcement ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/announcements/{announcementID} [delete]
func (c *AnnouncementController) Delete(w http.ResponseWriter, r *http.Request) {
	announcementID := r.PathValue("announcementID")
	if !uuidRegex.MatchString(announcementID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid announcementID")
		return
	}

	if err := c.Service.Delete(r.Context(), announcementID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "announcement not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"deleted": announcementID})
}
