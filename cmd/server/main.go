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
	"golang.org/x/crypto/bcrypt"

	"clubportal/config"
	_ "clubportal/docs"
	authadapter "clubportal/internal/adapters/auth"
	emailadapter "clubportal/internal/adapters/email"
	"clubportal/internal/adapters/storage"
	httpdelivery "clubportal/internal/delivery/http"
	"clubportal/internal/delivery/http/controllers"
	"clubportal/internal/delivery/http/middleware"
	"clubportal/internal/domain"
	"clubportal/internal/repository/postgres"
	"clubportal/internal/services"
)

// @title Club Portal API
// @version 1.0
// @description Club membership and event management backend: events with bounded capacity, an idempotent registration ledger, announcements, winners, glimpses, and inquiries.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		cancel()
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}
	cancel()

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	announcementRepo := postgres.NewAnnouncementRepository(db)
	inquiryRepo := postgres.NewInquiryRepository(db)
	winnerRepo := postgres.NewWinnerRepository(db)
	glimpseRepo := postgres.NewGlimpseRepository(db)

	hasher := authadapter.NewBcryptHasher(bcrypt.DefaultCost)
	jwtCodec := authadapter.NewJWTCodec(cfg.JWTSecret)

	mailer, err := emailadapter.NewMailer(cfg.Email)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer())

	var blobs domain.BlobStore
	if cfg.S3.Bucket != "" {
		s3Store, err := storage.NewS3(context.Background(), cfg.S3, logger)
		if err != nil {
			logger.Error("failed to create S3 store", "err", err)
			os.Exit(1)
		}
		blobs = s3Store
	} else {
		logger.Warn("S3_BUCKET not set; glimpse uploads disabled")
	}

	authService := services.NewAuthService(userRepo, hasher, jwtCodec, cfg.TokenExpiry)
	userService := services.NewUserService(userRepo)
	eventService := services.NewEventService(eventRepo)
	registrationService := services.NewRegistrationService(userRepo, eventRepo, registrationRepo, emailService, logger)
	announcementService := services.NewAnnouncementService(announcementRepo)
	inquiryService := services.NewInquiryService(inquiryRepo)
	winnerService := services.NewWinnerService(winnerRepo)
	glimpseService := services.NewGlimpseService(glimpseRepo, eventRepo, blobs)

	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:         controllers.NewAuthController(logger, authService),
		User:         controllers.NewUserController(logger, userService),
		Event:        controllers.NewEventController(logger, eventService),
		Registration: controllers.NewRegistrationController(logger, registrationService),
		Announcement: controllers.NewAnnouncementController(logger, announcementService),
		Inquiry:      controllers.NewInquiryController(logger, inquiryService),
		Winner:       controllers.NewWinnerController(logger, winnerService),
		Glimpse:      controllers.NewGlimpseController(logger, glimpseService),
	}, jwtCodec)

	handler := middleware.CORS(cfg.AllowedOrigins, middleware.Logging(logger, mux))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "err", err)
			os.Exit(1)
		}
	}
}
