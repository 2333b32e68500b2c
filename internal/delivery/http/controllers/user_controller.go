package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"clubportal/internal/delivery/http/helpers"
	"clubportal/internal/delivery/http/middleware"
	"clubportal/internal/domain"
)

type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// UserSuccessResponse is the success response envelope for user endpoints returning a single user.
type UserSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetMe godoc
// @Summary Get the current user's profile
// @Description Returns the authenticated user's profile together with its completeness check.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.GetMeSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /me [get]
func (c *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	user, err := c.Service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &GetMeData{
		User:    user,
		Profile: domain.CheckProfileCompleteness(user),
	})
}

// GetMeData is the payload for GET /me: the profile plus whether it is
// complete enough to register for events.
type GetMeData struct {
	User    *domain.User               `json:"user"`
	Profile domain.ProfileCompleteness `json:"profile"`
}

// GetMeSuccessResponse is the success response envelope for GET /me (200).
type GetMeSuccessResponse struct {
	Data  *GetMeData        `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UpdateProfileRequest is the request body for PATCH /me and PATCH /admin/users/{userID}.
// Absent fields are left unchanged. role is honored only on the admin route.
type UpdateProfileRequest struct {
	Name         *string `json:"name"`
	Year         *string `json:"year"`
	Dept         *string `json:"dept"`
	RollNo       *string `json:"roll_no"`
	MobileNumber *string `json:"mobile_number"`
	Designation  *string `json:"designation"`
	Role         *string `json:"role"`
}

// Validate implements helpers.Validator.
func (r *UpdateProfileRequest) Validate() []string {
	var errs []string
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		errs = append(errs, "name must not be empty")
	}
	if r.MobileNumber != nil {
		n := strings.TrimSpace(*r.MobileNumber)
		if len(n) < 7 || len(n) > 15 {
			errs = append(errs, "mobile_number must be 7 to 15 digits")
		} else {
			for _, ch := range n {
				if ch < '0' || ch > '9' {
					errs = append(errs, "mobile_number must contain only digits")
					break
				}
			}
		}
	}
	return errs
}

func (r *UpdateProfileRequest) toDomain() domain.UserUpdate {
	return domain.UserUpdate{
		Name:         r.Name,
		Year:         r.Year,
		Dept:         r.Dept,
		RollNo:       r.RollNo,
		MobileNumber: r.MobileNumber,
		Designation:  r.Designation,
		Role:         r.Role,
	}
}

// UpdateMe godoc
// @Summary Update the current user's profile
// @Description Partially updates the authenticated user's profile. Role changes are ignored on this route.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} controllers.UserSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /me [patch]
func (c *UserController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req UpdateProfileRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	user, err := c.Service.UpdateProfile(r.Context(), userID, req.toDomain(), false)
	if err != nil {
		c.writeUpdateError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// AdminListUsersSuccessResponse is the success response envelope for GET /admin/users (200).
type AdminListUsersSuccessResponse struct {
	Data  []*domain.User    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AdminList godoc
// @Summary List all users (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.AdminListUsersSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/users [get]
func (c *UserController) AdminList(w http.ResponseWriter, r *http.Request) {
	users, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if users == nil {
		users = []*domain.User{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, users)
}

// AdminUpdate godoc
// @Summary Update a user (admin)
// @Description Partially updates any user's profile, including role.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Param body body controllers.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} controllers.UserSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/users/{userID} [patch]
func (c *UserController) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if !uuidRegex.MatchString(userID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid userID")
		return
	}

	var req UpdateProfileRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	user, err := c.Service.UpdateProfile(r.Context(), userID, req.toDomain(), true)
	if err != nil {
		c.writeUpdateError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// AdminDelete godoc
// @Summary Delete a user (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/users/{userID} [delete]
func (c *UserController) AdminDelete(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if !uuidRegex.MatchString(userID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid userID")
		return
	}

	if err := c.Service.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"deleted": userID})
}

func (c *UserController) writeUpdateError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
