package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"recordclubs/internal/delivery/http/helpers"
	"recordclubs/internal/delivery/http/middleware"
	"recordclubs/internal/domain"
)

// CreateClubRequest is the request body for POST /clubs.
type CreateClubRequest struct {
	Name             string `json:"name"`
	ShortDescription string `json:"short_description"`
	LongDescription  string `json:"long_description"`
	Visibility       string `json:"visibility"`
}

// Validate implements Validator.
func (c CreateClubRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.Visibility != "" && c.Visibility != string(domain.ClubVisibilityPublic) && c.Visibility != string(domain.ClubVisibilityPrivate) {
		errs = append(errs, "visibility must be \"public\" or \"private\"")
	}
	return errs
}

// UpdateClubRequest is the request body for PATCH /clubs/{clubID}. All fields
// optional; omitted fields are unchanged.
type UpdateClubRequest struct {
	Name             *string `json:"name"`
	ShortDescription *string `json:"short_description"`
	LongDescription  *string `json:"long_description"`
	Visibility       *string `json:"visibility"`
}

// Validate implements Validator.
func (u UpdateClubRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if u.Visibility != nil && *u.Visibility != string(domain.ClubVisibilityPublic) && *u.Visibility != string(domain.ClubVisibilityPrivate) {
		errs = append(errs, "visibility must be \"public\" or \"private\"")
	}
	return errs
}

type ClubController struct {
	Logger  *slog.Logger
	Service domain.ClubService
}

func NewClubController(logger *slog.Logger, svc domain.ClubService) *ClubController {
	return &ClubController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateClub godoc
// @Summary Create a club
// @Description Create a new record club. The authenticated user becomes the owner. Clubs start inactive and private unless visibility is given.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateClubRequest true "Club data"
// @Success 201 {object} helpers.APIResponse "data contains the created club"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs [post]
func (c *ClubController) CreateClub(w http.ResponseWriter, r *http.Request) {
	var req CreateClubRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	now := time.Now()
	club := domain.NewClub(req.Name, domain.ClubVisibility(req.Visibility), userID, now, now)
	club.ShortDescription = req.ShortDescription
	club.LongDescription = req.LongDescription
	if err := c.Service.CreateClub(r.Context(), club); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid club data")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, club)
}

// GetClub godoc
// @Summary Get a club by ID
// @Description Returns the club. Private clubs are only visible to their members; non-members get not_found.
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the club"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: blocked"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID} [get]
func (c *ClubController) GetClub(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("clubID")
	if clubID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing clubID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	club, err := c.Service.GetClub(r.Context(), clubID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "club not found")
			return
		}
		if errors.Is(err, domain.ErrBlocked) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeBlocked, "blocked from this club")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, club)
}

// UpdateClub godoc
// @Summary Update club details
// @Description Updates name, descriptions, and visibility. Owner or admin only. Omitted fields are unchanged.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Param body body UpdateClubRequest true "Fields to update (all optional)"
// @Success 200 {object} helpers.APIResponse "data contains the updated club"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied or blocked"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID} [patch]
func (c *ClubController) UpdateClub(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("clubID")
	if clubID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing clubID")
		return
	}
	var req UpdateClubRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	upd := domain.ClubUpdate{
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
	}
	if req.Visibility != nil {
		v := domain.ClubVisibility(*req.Visibility)
		upd.Visibility = &v
	}
	club, err := c.Service.UpdateClub(r.Context(), clubID, userID, upd)
	if err != nil {
		c.writeClubError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, club)
}

// ActivateClub godoc
// @Summary Activate a club
// @Description Marks the club active so it appears to members. Owner only.
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the updated club"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID}/activate [post]
func (c *ClubController) ActivateClub(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("clubID")
	if clubID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing clubID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	club, err := c.Service.ActivateClub(r.Context(), clubID, userID)
	if err != nil {
		c.writeClubError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, club)
}

// ListMyClubs godoc
// @Summary List clubs the current user belongs to
// @Description Returns clubs where the authenticated user has an active membership.
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data is an array of clubs"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/me [get]
func (c *ClubController) ListMyClubs(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	clubs, err := c.Service.ListMyClubs(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if clubs == nil {
		clubs = []*domain.Club{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, clubs)
}

// writeClubError maps common club service errors to API responses.
func (c *ClubController) writeClubError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "club not found")
	case errors.Is(err, domain.ErrPermissionDenied):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodePermissionDenied, "permission denied")
	case errors.Is(err, domain.ErrBlocked):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeBlocked, "blocked from this club")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
