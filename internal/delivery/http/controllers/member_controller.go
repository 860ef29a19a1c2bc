package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"recordclubs/internal/delivery/http/helpers"
	"recordclubs/internal/delivery/http/middleware"
	"recordclubs/internal/domain"
)

// MemberStatusResponse is the data payload for GET /clubs/{clubID}/members/me/status (200).
type MemberStatusResponse struct {
	Status domain.MemberStatus `json:"status"`
}

// MemberActionResponse is the data payload for membership mutations (200).
type MemberActionResponse struct {
	Status string `json:"status"`
}

// ChangeMemberRoleRequest is the request body for PATCH /clubs/{clubID}/members/{userID}/role.
type ChangeMemberRoleRequest struct {
	Role string `json:"role"`
}

// Validate implements Validator.
func (c ChangeMemberRoleRequest) Validate() []string {
	if c.Role == "" {
		return []string{"role is required"}
	}
	return nil
}

type MemberController struct {
	Logger  *slog.Logger
	Service domain.MembershipService
}

func NewMemberController(logger *slog.Logger, svc domain.MembershipService) *MemberController {
	return &MemberController{
		Logger:  logger,
		Service: svc,
	}
}

// GetMyStatus godoc
// @Summary Get my standing in a club
// @Description Returns the caller's membership status in the club: non_member, active, inactive, or blocked.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID}/members/me/status [get]
func (c *MemberController) GetMyStatus(w http.ResponseWriter, r *http.Request) {
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
	status, err := c.Service.ResolveStatus(r.Context(), clubID, userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MemberStatusResponse{Status: status})
}

// ListMembers godoc
// @Summary List club members
// @Description Returns the club's members with role and status. Active members only.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is an array of members"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied or blocked"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID}/members [get]
func (c *MemberController) ListMembers(w http.ResponseWriter, r *http.Request) {
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
	members, err := c.Service.ListMembers(r.Context(), clubID, userID)
	if err != nil {
		c.writeMemberError(w, r, err)
		return
	}
	if members == nil {
		members = []*domain.ClubMember{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, members)
}

// Leave godoc
// @Summary Leave a club
// @Description Marks the caller's membership inactive. The owner cannot leave.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied (owner cannot leave)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (not an active member)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID}/members/me/leave [post]
func (c *MemberController) Leave(w http.ResponseWriter, r *http.Request) {
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
	if err := c.Service.Leave(r.Context(), clubID, userID); err != nil {
		c.writeMemberError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MemberActionResponse{Status: "left"})
}

// Rejoin godoc
// @Summary Rejoin a club
// @Description Reactivates the caller's inactive membership. Blocked users cannot rejoin.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: blocked"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (never a member)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already active)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID}/members/me/rejoin [post]
func (c *MemberController) Rejoin(w http.ResponseWriter, r *http.Request) {
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
	if err := c.Service.Rejoin(r.Context(), clubID, userID); err != nil {
		c.writeMemberError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MemberActionResponse{Status: "rejoined"})
}

// RemoveMember godoc
// @Summary Remove a member from a club
// @Description Marks the member inactive. Owner or admin only; admins cannot remove other admins, and the owner cannot be removed.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Param userID path string true "User ID (UUID) of the member to remove"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (not an active member)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID}/members/{userID} [delete]
func (c *MemberController) RemoveMember(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("clubID")
	targetID := r.PathValue("userID")
	if clubID == "" || targetID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing clubID or userID")
		return
	}
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.RemoveMember(r.Context(), clubID, targetID, actorID); err != nil {
		c.writeMemberError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MemberActionResponse{Status: "removed"})
}

// BlockMember godoc
// @Summary Block a member
// @Description Blocks the member from the club and demotes them to member. Owner or admin only; admins cannot block other admins, and the owner can never be blocked.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Param userID path string true "User ID (UUID) of the member to block"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already blocked)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID}/members/{userID}/block [post]
func (c *MemberController) BlockMember(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("clubID")
	targetID := r.PathValue("userID")
	if clubID == "" || targetID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing clubID or userID")
		return
	}
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.BlockMember(r.Context(), clubID, targetID, actorID); err != nil {
		c.writeMemberError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MemberActionResponse{Status: "blocked"})
}

// UnblockMember godoc
// @Summary Unblock a member
// @Description Removes the block. The membership becomes inactive so the user rejoins explicitly. Owner or admin only.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Param userID path string true "User ID (UUID) of the member to unblock"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (not blocked)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID}/members/{userID}/unblock [post]
func (c *MemberController) UnblockMember(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("clubID")
	targetID := r.PathValue("userID")
	if clubID == "" || targetID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing clubID or userID")
		return
	}
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.UnblockMember(r.Context(), clubID, targetID, actorID); err != nil {
		c.writeMemberError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MemberActionResponse{Status: "unblocked"})
}

// ChangeMemberRole godoc
// @Summary Change a member's role
// @Description Promotes or demotes a member between member and admin. Owner only.
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID (UUID)"
// @Param userID path string true "User ID (UUID) of the member"
// @Param body body ChangeMemberRoleRequest true "New role (member or admin)"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clubs/{clubID}/members/{userID}/role [patch]
func (c *MemberController) ChangeMemberRole(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("clubID")
	targetID := r.PathValue("userID")
	if clubID == "" || targetID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing clubID or userID")
		return
	}
	var req ChangeMemberRoleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.ChangeMemberRole(r.Context(), clubID, targetID, actorID, domain.MemberRole(req.Role)); err != nil {
		c.writeMemberError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MemberActionResponse{Status: "role updated"})
}

// writeMemberError maps common membership service errors to API responses.
func (c *MemberController) writeMemberError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "membership not found")
	case errors.Is(err, domain.ErrPermissionDenied):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodePermissionDenied, "permission denied")
	case errors.Is(err, domain.ErrBlocked):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeBlocked, "blocked from this club")
	case errors.Is(err, domain.ErrAlreadyMember):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "already a member")
	case errors.Is(err, domain.ErrConflict):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
