package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"clubportal/internal/delivery/http/helpers"
	"clubportal/internal/domain"
)

type WinnerController struct {
	Logger  *slog.Logger
	Service domain.WinnerService
}

func NewWinnerController(logger *slog.Logger, svc domain.WinnerService) *WinnerController {
	return &WinnerController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateWinnerRequest is the request body for POST /admin/winners.
type CreateWinnerRequest struct {
	EventName   string    `json:"event_name"`
	EventDate   time.Time `json:"event_date"`
	FirstPlace  string    `json:"first_place"`
	SecondPlace string    `json:"second_place"`
	ThirdPlace  string    `json:"third_place"`
}

// Validate implements helpers.Validator.
func (r *CreateWinnerRequest) Validate() []string {
	var errs []string
	r.EventName = strings.TrimSpace(r.EventName)
	r.FirstPlace = strings.TrimSpace(r.FirstPlace)
	if r.EventName == "" {
		errs = append(errs, "event_name is required")
	}
	if r.EventDate.IsZero() {
		errs = append(errs, "event_date is required")
	}
	if r.FirstPlace == "" {
		errs = append(errs, "first_place is required")
	}
	return errs
}

// WinnerSuccessResponse is the success response envelope for POST /admin/winners (201).
type WinnerSuccessResponse struct {
	Data  *domain.Winner    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListWinnersSuccessResponse is the success response envelope for GET /winners (200).
type ListWinnersSuccessResponse struct {
	Data  []*domain.Winner  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// List godoc
// @Summary List event winners
// @Tags winners
// @Produce json
// @Success 200 {object} controllers.ListWinnersSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /winners [get]
func (c *WinnerController) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if items == nil {
		items = []*domain.Winner{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// Create godoc
// @Summary Record event winners (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateWinnerRequest true "Winner placements"
// @Success 201 {object} controllers.WinnerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/winners [post]
func (c *WinnerController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateWinnerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	win, err := c.Service.Create(r.Context(), req.EventName, req.EventDate, req.FirstPlace, req.SecondPlace, req.ThirdPlace)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, win)
}

// Delete godoc
// @Summary Delete a winner record (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param winnerID path string true "Winner ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/winners/{winnerID} [delete]
func (c *WinnerController) Delete(w http.ResponseWriter, r *http.Request) {
	winnerID := r.PathValue("winnerID")
	if !uuidRegex.MatchString(winnerID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid winnerID")
		return
	}

	if err := c.Service.Delete(r.Context(), winnerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "winner not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"deleted": winnerID})
}
