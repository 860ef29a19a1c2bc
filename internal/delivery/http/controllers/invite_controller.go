package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"recordclubs/internal/delivery/http/helpers"
	"recordclubs/internal/delivery/http/middleware"
	"recordclubs/internal/domain"
)

// SendInvitesRequest is the request body for POST /clubs/{clubID}/invites.
// Emails is a string of addresses separated by commas or spaces.
type SendInvitesRequest struct {
	Emails string `json:"emails"`
}

// Validate implements Validator.
func (s SendInvitesRequest) Validate() []string {
	if strings.TrimSpace(s.Emails) == "" {
		return []string{"emails is required"}
	}
	return nil
}

// parseEmailsFromString splits the input by commas and spaces, trims, lowercases,
// deduplicates, and returns only strings that match emailRegexp. May return an
// empty slice.
func parseEmailsFromString(raw string) []string {
	raw = strings.ReplaceAll(raw, ",", " ")
	parts := strings.Fields(raw)
	seen := make(map[string]struct{})
	var out []string
	for _, p := range parts {
		email := strings.TrimSpace(strings.ToLower(p))
		if email == "" {
			continue
		}
		if !emailRegexp.MatchString(email) {
			continue
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		out = append(out, email)
	}
	return out
}

// ListClubInvitesResponse is the data payload for GET /clubs/{clubID}/invites (200).
type ListClubInvitesResponse struct {
	Items      []*domain.Invite       `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// InviteActionResponse is the data payload for invite mutations (200).
type InviteActionResponse struct {
	Status string `json:"status"`
}

// AcceptInviteResponse is the data payload for POST /invites/{inviteID}/accept (200).
type AcceptInviteResponse struct {
	Status string       `json:"status"`
	Club   *domain.Club `json:"club"`
}

type InviteController struct {
	Logger      *slog.Logger
	Service     domain.InviteService
	OpenInvites domain.OpenInviteService
}

func NewInviteController(logger *slog.Logger, svc domain.InviteService, openSvc domain.OpenInviteService) *InviteController {
	return &InviteController{
		Logger:      logger,
		Service:     svc,
		OpenInvites: openSvc,
	}
}

// SendInvites godoc
// @Summary Send club invites
// @Description Creates one invite per email and sends each an invitation email. Owner or admin only. Email delivery is best effort: a failed send is recorded on the invite but does not undo its creation. Returns all created invites.
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Param body body SendInvitesRequest true "Emails string (comma or space separated)"
// @Success 201 {object} helpers.APIResponse "data is an array of created invites"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (empty or no valid emails)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied or blocked"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID}/invites [post]
func (c *InviteController) SendInvites(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("clubID")
	if clubID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing clubID")
		return
	}
	var req SendInvitesRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	emails := parseEmailsFromString(req.Emails)
	if len(emails) == 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "no valid emails found")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	invites, err := c.Service.IssueInvites(r.Context(), clubID, userID, emails)
	if err != nil {
		c.writeInviteError(w, r, err)
		return
	}
	if invites == nil {
		invites = []*domain.Invite{}
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, invites)
}

// ListClubInvites godoc
// @Summary List invites for a club
// @Description Returns a paginated list of the club's invites with derived status. Owner or admin only. Optional search filters by email substring (case-insensitive).
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Param search query string false "Filter emails containing this string (case-insensitive)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied or blocked"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID}/invites [get]
func (c *InviteController) ListClubInvites(w http.ResponseWriter, r *http.Request) {
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
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	params := helpers.ParsePagination(r)
	invites, total, err := c.Service.ListClubInvites(r.Context(), clubID, userID, search, params)
	if err != nil {
		c.writeInviteError(w, r, err)
		return
	}
	if invites == nil {
		invites = []*domain.Invite{}
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListClubInvitesResponse{Items: invites, Pagination: meta})
}

// ListMyInvites godoc
// @Summary List invites addressed to the current user
// @Description Returns invites sent to the authenticated user's email, newest first.
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data is an array of invites"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invites/me [get]
func (c *InviteController) ListMyInvites(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	invites, err := c.Service.ListMyInvites(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if invites == nil {
		invites = []*domain.Invite{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, invites)
}

// AcceptInvite godoc
// @Summary Accept an invite
// @Description Accepts an invite addressed to the authenticated user's email and joins the club. Invites addressed to another email respond not_found. Returns the joined club.
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param inviteID path string true "Invite ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status and the joined club"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: blocked"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already a member, or invite already resolved)"
// @Failure 410 {object} helpers.APIResponse "error.code: invite_expired"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invites/{inviteID}/accept [post]
func (c *InviteController) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	inviteID := r.PathValue("inviteID")
	if inviteID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing inviteID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	club, err := c.Service.AcceptInvite(r.Context(), inviteID, userID)
	if err != nil {
		c.writeInviteError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AcceptInviteResponse{Status: "accepted", Club: club})
}

// DeclineInvite godoc
// @Summary Decline an invite
// @Description Declines an invite addressed to the authenticated user's email. Declining an already-declined invite succeeds without change.
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param inviteID path string true "Invite ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already accepted or revoked)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invites/{inviteID}/decline [post]
func (c *InviteController) DeclineInvite(w http.ResponseWriter, r *http.Request) {
	inviteID := r.PathValue("inviteID")
	if inviteID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing inviteID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeclineInvite(r.Context(), inviteID, userID); err != nil {
		c.writeInviteError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, InviteActionResponse{Status: "declined"})
}

// RevokeInvite godoc
// @Summary Revoke an invite
// @Description Revokes a pending invite. Owner or admin of the invite's club only. Invites that were already accepted, declined, or revoked respond conflict.
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param inviteID path string true "Invite ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied or blocked"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already resolved)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invites/{inviteID} [delete]
func (c *InviteController) RevokeInvite(w http.ResponseWriter, r *http.Request) {
	inviteID := r.PathValue("inviteID")
	if inviteID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing inviteID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.RevokeInvite(r.Context(), inviteID, userID); err != nil {
		c.writeInviteError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, InviteActionResponse{Status: "revoked"})
}

// MintOpenInvite godoc
// @Summary Mint an open invite link
// @Description Creates a fresh shareable invite token for the club, revoking any previous one. Owner only.
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Success 201 {object} helpers.APIResponse "data contains the open invite"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID}/open-invite [post]
func (c *InviteController) MintOpenInvite(w http.ResponseWriter, r *http.Request) {
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
	inv, err := c.OpenInvites.MintOpenInvite(r.Context(), clubID, userID)
	if err != nil {
		c.writeInviteError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, inv)
}

// GetOpenInvite godoc
// @Summary Get the club's current open invite
// @Description Returns the club's live open invite token, if any. Owner or admin only.
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the open invite"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied or blocked"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (no live token)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID}/open-invite [get]
func (c *InviteController) GetOpenInvite(w http.ResponseWriter, r *http.Request) {
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
	inv, err := c.OpenInvites.GetOpenInvite(r.Context(), clubID, userID)
	if err != nil {
		c.writeInviteError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}

// RevokeOpenInvite godoc
// @Summary Revoke the club's open invite
// @Description Kills the club's live open invite token. Anyone holding the old link can no longer join. Owner only.
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID}/open-invite [delete]
func (c *InviteController) RevokeOpenInvite(w http.ResponseWriter, r *http.Request) {
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
	if err := c.OpenInvites.RevokeOpenInvite(r.Context(), clubID, userID); err != nil {
		c.writeInviteError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, InviteActionResponse{Status: "revoked"})
}

// RedeemOpenInvite godoc
// @Summary Join a club via an open invite link
// @Description Joins the authenticated user to the club behind the token. A revoked token responds not_found. Returns the joined club.
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param token path string true "Open invite token"
// @Success 200 {object} helpers.APIResponse "data contains status and the joined club"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: blocked"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown or revoked token)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already a member)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /open-invites/{token}/redeem [post]
func (c *InviteController) RedeemOpenInvite(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing token")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	club, err := c.OpenInvites.RedeemOpenInvite(r.Context(), token, userID)
	if err != nil {
		c.writeInviteError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AcceptInviteResponse{Status: "joined", Club: club})
}

// writeInviteError maps common invite service errors to API responses.
func (c *InviteController) writeInviteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invite not found")
	case errors.Is(err, domain.ErrPermissionDenied):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodePermissionDenied, "permission denied")
	case errors.Is(err, domain.ErrBlocked):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeBlocked, "blocked from this club")
	case errors.Is(err, domain.ErrAlreadyMember):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "already a member")
	case errors.Is(err, domain.ErrConflict):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "invite already resolved")
	case errors.Is(err, domain.ErrInviteExpired):
		helpers.WriteJSONError(w, http.StatusGone, helpers.ErrCodeInviteExpired, "invite expired")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
