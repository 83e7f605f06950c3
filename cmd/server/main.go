package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"venueops/config"
	"venueops/internal/adapters/auth"
	"venueops/internal/adapters/email"
	delivery "venueops/internal/delivery/http"
	"venueops/internal/delivery/http/controllers"
	"venueops/internal/delivery/http/middleware"
	"venueops/internal/domain"
	"venueops/internal/repository/postgres"
	"venueops/internal/repository/rediscache"
	"venueops/internal/services"
)

const (
	serviceTimeout = 5 * time.Second
	venueCacheTTL  = 5 * time.Minute
)

// @title VenueOps API
// @version 1.0
// @description Venue availability, booking conflict detection, and alternative date suggestion service.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisClient.Close()
	}

	// Repositories
	venueRepo := rediscache.NewCachedVenueRepository(postgres.NewVenueRepository(db), redisClient, venueCacheTTL)
	slotRepo := postgres.NewSlotRepository(db)
	conflictLogRepo := postgres.NewConflictLogRepository(db)
	opportunityRepo := postgres.NewOpportunityRepository(db)

	// Adapters
	tokenIssuer, tokenVerifier := auth.NewJWTTokens(cfg.JWTSecret)
	keyVerifier := auth.NewBcryptAPIKeyVerifier(cfg.APIKeyHash)
	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretKey,
		},
	}, logger)

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	schedulingService := services.NewSchedulingService(venueRepo, slotRepo, opportunityRepo, domain.DefaultSchedulePolicy(), serviceTimeout)
	venueService := services.NewVenueService(venueRepo, serviceTimeout)
	bookingService := services.NewBookingService(slotRepo, venueRepo, schedulingService, serviceTimeout)
	conflictLogService := services.NewConflictLogService(conflictLogRepo, opportunityRepo, venueRepo, emailService, logger, serviceTimeout)

	// Controllers
	authController := controllers.NewAuthController(logger, keyVerifier, tokenIssuer)
	venueController := controllers.NewVenueController(logger, venueService)
	schedulingController := controllers.NewSchedulingController(logger, schedulingService)
	bookingController := controllers.NewBookingController(logger, bookingService)
	conflictController := controllers.NewConflictController(logger, conflictLogService)

	requireAuth := middleware.RequireAuth(tokenVerifier, logger)
	mux := delivery.NewRouter(authController, venueController, schedulingController, bookingController, conflictController, requireAuth)

	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, mux))

	addr := ":" + cfg.Port
	logger.Info("server starting", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
