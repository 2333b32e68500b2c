package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"clubportal/internal/delivery/http/helpers"
	"clubportal/internal/delivery/http/middleware"
	"clubportal/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// RegisterSuccessResponse is the success response envelope for POST /events/{eventID}/registrations (201).
type RegisterSuccessResponse struct {
	Data  *domain.Registration `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// Register godoc
// @Summary Register the current user for an event
// @Description Registers the authenticated user for the specified event. Requires a complete profile (year, dept, roll_no, mobile_number). At most one confirmed registration per user per event; capacity is enforced atomically.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 201 {object} controllers.RegisterSuccessResponse "New registration created"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: already_registered, event_full, or registration_closed"
// @Failure 422 {object} helpers.APIResponse "error.code: profile_incomplete"
// @Failure 500 {object} helpers.APIResponse "error.code: partial_failure or internal_error"
// @Failure 503 {object} helpers.APIResponse "error.code: store_unavailable"
// @Router /events/{eventID}/registrations [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	userEmail, _ := middleware.EmailFromContext(r.Context())

	reg, err := c.Service.Register(r.Context(), eventID, userID, userEmail)
	if err != nil {
		c.writeRegisterError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

func (c *RegistrationController) writeRegisterError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrProfileNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "profile not found")
	case errors.Is(err, domain.ErrProfileIncomplete):
		helpers.WriteJSONError(w, http.StatusUnprocessableEntity, helpers.ErrCodeProfileIncomplete, err.Error())
	case errors.Is(err, domain.ErrAlreadyRegistered):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeAlreadyRegistered, "already registered for this event")
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrRegistrationClosed):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeClosed, "registration is closed for this event")
	case errors.Is(err, domain.ErrEventFull):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeEventFull, "event is full")
	case errors.Is(err, domain.ErrPartialFailure):
		c.Logger.ErrorContext(r.Context(), "registration left inconsistent", "path", r.URL.Path, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodePartialFailure, err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeStoreUnavailable, "store unavailable, retry later")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// CancelSuccessResponse is the success response envelope for POST /registrations/{registrationID}/cancel (200).
type CancelSuccessResponse struct {
	Data  map[string]string `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Cancel godoc
// @Summary Cancel a registration
// @Description Cancels the registration and releases its seat. Idempotent: cancelling an already-cancelled registration returns 200. Members may only cancel their own registrations; admins may cancel any.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Success 200 {object} controllers.CancelSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: partial_failure or internal_error"
// @Router /registrations/{registrationID}/cancel [post]
func (c *RegistrationController) Cancel(w http.ResponseWriter, r *http.Request) {
	registrationID := r.PathValue("registrationID")
	if !uuidRegex.MatchString(registrationID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid registrationID")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())

	err := c.Service.Cancel(r.Context(), registrationID, userID, role == domain.RoleAdmin)
	if err != nil && !errors.Is(err, domain.ErrAlreadyCancelled) {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
		case errors.Is(err, domain.ErrRegistrationNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "registration not found")
		case errors.Is(err, domain.ErrPartialFailure):
			c.Logger.ErrorContext(r.Context(), "cancellation left inconsistent", "path", r.URL.Path, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodePartialFailure, err.Error())
		case errors.Is(err, domain.ErrStoreUnavailable):
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeStoreUnavailable, "store unavailable, retry later")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": string(domain.RegistrationCancelled)})
}

// ListMyRegistrationsSuccessResponse is the success response envelope for GET /me/registrations (200).
type ListMyRegistrationsSuccessResponse struct {
	Data  []*domain.RegistrationWithEvent `json:"data"`
	Error *helpers.APIError               `json:"error"`
}

// ListMyRegistrations godoc
// @Summary List the current user's registrations
// @Description Returns the authenticated user's registrations, each with its event. Registrations whose event has been deleted are omitted.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListMyRegistrationsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /me/registrations [get]
func (c *RegistrationController) ListMyRegistrations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	items, err := c.Service.ListMyRegistrations(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if items == nil {
		items = []*domain.RegistrationWithEvent{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// AdminListRegistrationsData is the paginated payload for GET /admin/registrations.
type AdminListRegistrationsData struct {
	Registrations []*domain.Registration `json:"registrations"`
	Pagination    helpers.PaginationMeta `json:"pagination"`
}

// AdminListRegistrationsSuccessResponse is the success response envelope for GET /admin/registrations (200).
type AdminListRegistrationsSuccessResponse struct {
	Data  *AdminListRegistrationsData `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

// AdminList godoc
// @Summary List registrations (admin)
// @Description Returns registrations across all events, optionally filtered by event_id, user_id, and status, with pagination.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param event_id query string false "Filter by event ID (UUID)"
// @Param user_id query string false "Filter by user ID (UUID)"
// @Param status query string false "Filter by status (confirmed or cancelled)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.AdminListRegistrationsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/registrations [get]
func (c *RegistrationController) AdminList(w http.ResponseWriter, r *http.Request) {
	p := helpers.ParsePagination(r)

	filter := domain.RegistrationFilter{
		EventID: r.URL.Query().Get("event_id"),
		UserID:  r.URL.Query().Get("user_id"),
	}
	if filter.EventID != "" && !uuidRegex.MatchString(filter.EventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid event_id")
		return
	}
	if filter.UserID != "" && !uuidRegex.MatchString(filter.UserID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid user_id")
		return
	}
	if status := r.URL.Query().Get("status"); status != "" {
		st := domain.RegistrationStatus(status)
		if st != domain.RegistrationConfirmed && st != domain.RegistrationCancelled {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "status must be confirmed or cancelled")
			return
		}
		filter.Status = st
	}

	regs, total, err := c.Service.ListFiltered(r.Context(), filter, p)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &AdminListRegistrationsData{
		Registrations: regs,
		Pagination:    helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}
