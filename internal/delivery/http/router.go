package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"recordclubs/internal/delivery/http/controllers"
	"recordclubs/internal/delivery/http/middleware"
	"recordclubs/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	clubController *controllers.ClubController,
	memberController *controllers.MemberController,
	inviteController *controllers.InviteController,
	scheduleController *controllers.ScheduleController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)
	mux.HandleFunc("POST /auth/code", authController.RequestLoginCode)
	mux.HandleFunc("POST /auth/code/verify", authController.VerifyLoginCode)

	// Users
	mux.HandleFunc("GET /users/me", auth(userController.GetMe))
	mux.HandleFunc("PATCH /users/me", auth(userController.UpdateMe))

	// Clubs
	mux.HandleFunc("POST /clubs", auth(clubController.CreateClub))
	mux.HandleFunc("GET /clubs/me", auth(clubController.ListMyClubs))
	mux.HandleFunc("GET /clubs/{clubID}", auth(clubController.GetClub))
	mux.HandleFunc("PATCH /clubs/{clubID}", auth(clubController.UpdateClub))
	mux.HandleFunc("POST /clubs/{clubID}/activate", auth(clubController.ActivateClub))

	// Members
	mux.HandleFunc("GET /clubs/{clubID}/members", auth(memberController.ListMembers))
	mux.HandleFunc("GET /clubs/{clubID}/members/me/status", auth(memberController.GetMyStatus))
	mux.HandleFunc("POST /clubs/{clubID}/members/me/leave", auth(memberController.Leave))
	mux.HandleFunc("POST /clubs/{clubID}/members/me/rejoin", auth(memberController.Rejoin))
	mux.HandleFunc("DELETE /clubs/{clubID}/members/{userID}", auth(memberController.RemoveMember))
	mux.HandleFunc("POST /clubs/{clubID}/members/{userID}/block", auth(memberController.BlockMember))
	mux.HandleFunc("POST /clubs/{clubID}/members/{userID}/unblock", auth(memberController.UnblockMember))
	mux.HandleFunc("PATCH /clubs/{clubID}/members/{userID}/role", auth(memberController.ChangeMemberRole))

	// Invites
	mux.HandleFunc("POST /clubs/{clubID}/invites", auth(inviteController.SendInvites))
	mux.HandleFunc("GET /clubs/{clubID}/invites", auth(inviteController.ListClubInvites))
	mux.HandleFunc("GET /invites/me", auth(inviteController.ListMyInvites))
	mux.HandleFunc("POST /invites/{inviteID}/accept", auth(inviteController.AcceptInvite))
	mux.HandleFunc("POST /invites/{inviteID}/decline", auth(inviteController.DeclineInvite))
	mux.HandleFunc("DELETE /invites/{inviteID}", auth(inviteController.RevokeInvite))

	// Open invites
	mux.HandleFunc("POST /clubs/{clubID}/open-invite", auth(inviteController.MintOpenInvite))
	mux.HandleFunc("GET /clubs/{clubID}/open-invite", auth(inviteController.GetOpenInvite))
	mux.HandleFunc("DELETE /clubs/{clubID}/open-invite", auth(inviteController.RevokeOpenInvite))
	mux.HandleFunc("POST /open-invites/{token}/redeem", auth(inviteController.RedeemOpenInvite))

	// Schedule
	mux.HandleFunc("POST /clubs/{clubID}/schedule", auth(scheduleController.AddAlbum))
	mux.HandleFunc("GET /clubs/{clubID}/schedule", auth(scheduleController.ListSchedule))
	mux.HandleFunc("PATCH /clubs/{clubID}/schedule/{albumID}", auth(scheduleController.RescheduleAlbum))
	mux.HandleFunc("DELETE /clubs/{clubID}/schedule/{albumID}", auth(scheduleController.RemoveAlbum))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
