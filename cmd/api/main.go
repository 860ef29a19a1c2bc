package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"recordclubs/config"
	_ "recordclubs/docs"
	"recordclubs/internal/adapters/auth"
	"recordclubs/internal/adapters/email"
	delivery "recordclubs/internal/delivery/http"
	"recordclubs/internal/delivery/http/controllers"
	"recordclubs/internal/delivery/http/middleware"
	"recordclubs/internal/repository/postgres"
	"recordclubs/internal/services"
)

const serviceTimeout = 10 * time.Second

// @title Record Clubs API
// @version 1.0
// @description Backend for record clubs: membership, invites, and listening schedules.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	loginCodeRepo := postgres.NewLoginCodeRepository(db)
	clubRepo := postgres.NewClubRepository(db)
	membershipRepo := postgres.NewMembershipRepository(db)
	inviteRepo := postgres.NewInviteRepository(db)
	openInviteRepo := postgres.NewOpenInviteRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)

	// Adapters
	mailer, err := email.NewMailer(cfg.Mail)
	if err != nil {
		logger.Error("failed to initialize mailer", "err", err)
		os.Exit(1)
	}
	renderer := email.NewTemplateRenderer()
	hasher := auth.NewBcryptHasher(12)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)

	// Services
	emailService := services.NewEmailService(mailer, renderer)
	authService := services.NewAuthService(userRepo, hasher, tokenIssuer, cfg.JWTExpiry)
	userService := services.NewUserService(userRepo, loginCodeRepo, tokenIssuer, cfg.JWTExpiry, emailService)
	clubService := services.NewClubService(clubRepo, membershipRepo, serviceTimeout)
	membershipService := services.NewMembershipService(membershipRepo, clubRepo, serviceTimeout)
	inviteService := services.NewInviteService(inviteRepo, membershipRepo, clubRepo, userRepo, emailService, cfg.AppBaseURL, logger, serviceTimeout)
	openInviteService := services.NewOpenInviteService(openInviteRepo, membershipRepo, clubRepo, serviceTimeout)
	scheduleService := services.NewScheduleService(scheduleRepo, membershipRepo, serviceTimeout)

	// Controllers
	authController := controllers.NewAuthController(logger, authService, userService)
	userController := controllers.NewUserController(logger, userService)
	clubController := controllers.NewClubController(logger, clubService)
	memberController := controllers.NewMemberController(logger, membershipService)
	inviteController := controllers.NewInviteController(logger, inviteService, openInviteService)
	scheduleController := controllers.NewScheduleController(logger, scheduleService)

	mux := delivery.NewRouter(
		logger,
		tokenVerifier,
		authController,
		userController,
		clubController,
		memberController,
		inviteController,
		scheduleController,
	)

	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "err", err)
	}
}
