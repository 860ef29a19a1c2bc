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

// AddAlbumRequest is the request body for POST /clubs/{clubID}/schedule.
type AddAlbumRequest struct {
	Title        string    `json:"title"`
	Artist       string    `json:"artist"`
	CoverURL     string    `json:"cover_url"`
	ScheduledFor time.Time `json:"scheduled_for"`
}

// Validate implements Validator.
func (a AddAlbumRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(a.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(a.Artist) == "" {
		errs = append(errs, "artist is required")
	}
	if a.ScheduledFor.IsZero() {
		errs = append(errs, "scheduled_for is required")
	}
	return errs
}

// RescheduleAlbumRequest is the request body for PATCH /clubs/{clubID}/schedule/{albumID}.
type RescheduleAlbumRequest struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// Validate implements Validator.
func (a RescheduleAlbumRequest) Validate() []string {
	if a.ScheduledFor.IsZero() {
		return []string{"scheduled_for is required"}
	}
	return nil
}

// ScheduleActionResponse is the data payload for schedule mutations (200).
type ScheduleActionResponse struct {
	Status string `json:"status"`
}

type ScheduleController struct {
	Logger  *slog.Logger
	Service domain.ScheduleService
}

func NewScheduleController(logger *slog.Logger, svc domain.ScheduleService) *ScheduleController {
	return &ScheduleController{
		Logger:  logger,
		Service: svc,
	}
}

// AddAlbum godoc
// @Summary Add an album to a club's schedule
// @Description Schedules an album for the club to listen to. Owner or admin only.
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Param body body AddAlbumRequest true "Album data"
// @Success 201 {object} helpers.APIResponse "data contains the scheduled album"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied or blocked"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID}/schedule [post]
func (c *ScheduleController) AddAlbum(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("clubID")
	if clubID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing clubID")
		return
	}
	var req AddAlbumRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	album := domain.NewScheduledAlbum(clubID, req.Title, req.Artist, req.CoverURL, req.ScheduledFor, userID, time.Now())
	if err := c.Service.AddAlbum(r.Context(), clubID, userID, album); err != nil {
		c.writeScheduleError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, album)
}

// ListSchedule godoc
// @Summary List a club's listening schedule
// @Description Returns the club's scheduled albums ordered by date. Active members only. Optional from filters to albums scheduled on or after the given RFC 3339 time.
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Param from query string false "Only albums scheduled at or after this time (RFC 3339)"
// @Success 200 {object} helpers.APIResponse "data is an array of scheduled albums"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied or blocked"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID}/schedule [get]
func (c *ScheduleController) ListSchedule(w http.ResponseWriter, r *http.Request) {
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
	var from *time.Time
	if s := r.URL.Query().Get("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "from must be RFC 3339")
			return
		}
		from = &t
	}
	albums, err := c.Service.ListSchedule(r.Context(), clubID, userID, from)
	if err != nil {
		c.writeScheduleError(w, r, err)
		return
	}
	if albums == nil {
		albums = []*domain.ScheduledAlbum{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, albums)
}

// RescheduleAlbum godoc
// @Summary Move a scheduled album to a new date
// @Description Changes when the club listens to the album. Owner or admin only.
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Param albumID path string true "Scheduled album ID (UUID)"
// @Param body body RescheduleAlbumRequest true "New date"
// @Success 200 {object} helpers.APIResponse "data contains the updated album"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied or blocked"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID}/schedule/{albumID} [patch]
func (c *ScheduleController) RescheduleAlbum(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("clubID")
	albumID := r.PathValue("albumID")
	if clubID == "" || albumID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing clubID or albumID")
		return
	}
	var req RescheduleAlbumRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	album, err := c.Service.RescheduleAlbum(r.Context(), clubID, albumID, userID, req.ScheduledFor)
	if err != nil {
		c.writeScheduleError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, album)
}

// RemoveAlbum godoc
// @Summary Remove an album from the schedule
// @Description Deletes the scheduled album. Owner or admin only.
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Param albumID path string true "Scheduled album ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied or blocked"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID}/schedule/{albumID} [delete]
func (c *ScheduleController) RemoveAlbum(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("clubID")
	albumID := r.PathValue("albumID")
	if clubID == "" || albumID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing clubID or albumID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.RemoveAlbum(r.Context(), clubID, albumID, userID); err != nil {
		c.writeScheduleError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ScheduleActionResponse{Status: "removed"})
}

// writeScheduleError maps common schedule service errors to API responses.
func (c *ScheduleController) writeScheduleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "album not found")
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
