package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"planbook/config"
	_ "planbook/docs"
	authadapter "planbook/internal/adapters/auth"
	emailadapter "planbook/internal/adapters/email"
	"planbook/internal/adapters/notify"
	httpdelivery "planbook/internal/delivery/http"
	"planbook/internal/delivery/http/controllers"
	"planbook/internal/delivery/http/middleware"
	"planbook/internal/domain"
	"planbook/internal/repository/postgres"
	"planbook/internal/schedule"
	"planbook/internal/services"
)

// @title Planbook API
// @version 1.0
// @description Personal event planning API with reminder scheduling.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
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

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone", "timezone", cfg.Timezone, "err", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)

	// Adapters
	tokens := authadapter.NewJWTCodec(cfg.JWTSecret)
	hasher := authadapter.NewBcryptHasher(10)
	mailer, err := emailadapter.NewMailer(cfg.Email, logger)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	// Services
	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer(), logger)
	authService := services.NewAuthService(userRepo, hasher, tokens, cfg.JWTExpiry, emailService, logger)
	userService := services.NewUserService(userRepo)
	eventService := services.NewEventService(eventRepo)
	categoryService := services.NewCategoryService(categoryRepo)

	// Reminder sweep engine
	notifiers := map[domain.DeliveryType]domain.Notifier{
		domain.DeliveryNotification: notify.NewLogNotifier(logger),
		domain.DeliveryEmail:        notify.NewEmailNotifier(emailService),
	}
	sweeper := schedule.NewSweeper(eventRepo, userRepo, notifiers, logger, cfg.SweepPeriod, cfg.SweepTolerance, loc)

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		sweeper.Run(sweepCtx)
	}()

	// HTTP delivery
	mux := httpdelivery.NewRouter(
		controllers.NewAuthController(logger, authService),
		controllers.NewEventController(logger, eventService),
		controllers.NewCategoryController(logger, categoryService),
		controllers.NewUserController(logger, userService),
		tokens,
		logger,
	)
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(nil, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	// Stop scheduling future sweep ticks; an in-flight sweep finishes.
	stopSweeper()
	<-sweeperDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
