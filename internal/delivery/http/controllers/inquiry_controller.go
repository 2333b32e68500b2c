package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"clubportal/internal/delivery/http/helpers"
	"clubportal/internal/domain"
)

type InquiryController struct {
	Logger  *slog.Logger
	Service domain.InquiryService
}

func NewInquiryController(logger *slog.Logger, svc domain.InquiryService) *InquiryController {
	return &InquiryController{
		Logger:  logger,
		Service: svc,
	}
}

// SubmitInquiryRequest is the request body for POST /inquiries.
type SubmitInquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate implements helpers.Validator.
func (r *SubmitInquiryRequest) Validate() []string {
	var errs []string
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Message = strings.TrimSpace(r.Message)
	if r.Name == "" {
		errs = append(errs, "name is required")
	}
	if r.Email == "" {
		errs = append(errs, "email is required")
	}
	if r.Message == "" {
		errs = append(errs, "message is required")
	}
	return errs
}

// SubmitInquirySuccessResponse is the success response envelope for POST /inquiries (201).
type SubmitInquirySuccessResponse struct {
	Data  *domain.Inquiry   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Submit godoc
// @Summary Submit a contact inquiry
// @Description Public contact form; no authentication required.
// @Tags inquiries
// @Accept json
// @Produce json
// @Param body body controllers.SubmitInquiryRequest true "Inquiry"
// @Success 201 {object} controllers.SubmitInquirySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /inquiries [post]
func (c *InquiryController) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitInquiryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	in, err := c.Service.Submit(r.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, in)
}

// ListInquiriesSuccessResponse is the success response envelope for GET /admin/inquiries (200).
type ListInquiriesSuccessResponse struct {
	Data  []*domain.Inquiry `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AdminList godoc
// @Summary List inquiries (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListInquiriesSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/inquiries [get]
func (c *InquiryController) AdminList(w http.ResponseWriter, r *http.Request) {
	items, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if items == nil {
		items = []*domain.Inquiry{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// AdminDelete godoc
// @Summary Delete an inquiry (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param inquiryID path string true "Inquiry ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/inquiries/{inquiryID} [delete]
func (c *InquiryController) AdminDelete(w http.ResponseWriter, r *http.Request) {
	inquiryID := r.PathValue("inquiryID")
	if !uuidRegex.MatchString(inquiryID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid inquiryID")
		return
	}

	if err := c.Service.Delete(r.Context(), inquiryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "inquiry not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"deleted": inquiryID})
}
