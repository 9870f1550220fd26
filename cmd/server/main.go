package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/joho/godotenv"

	"github.com/Anway001/AI-Memory-Space/internal/audio"
	"github.com/Anway001/AI-Memory-Space/internal/config"
	"github.com/Anway001/AI-Memory-Space/internal/database"
	"github.com/Anway001/AI-Memory-Space/internal/generation"
	"github.com/Anway001/AI-Memory-Space/internal/handlers"
	"github.com/Anway001/AI-Memory-Space/internal/logging"
	"github.com/Anway001/AI-Memory-Space/internal/media"
	"github.com/Anway001/AI-Memory-Space/internal/middleware"
	"github.com/Anway001/AI-Memory-Space/internal/routes"
	"github.com/Anway001/AI-Memory-Space/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not read .env", "error", err)
	}

	cfg := config.Load()
	logging.Setup(cfg.AppEnv)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	ctx := context.Background()

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// ERROR+ logs also go to system_logs
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.StdoutHandler(cfg.AppEnv),
		pgLogHandler,
	)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetentionDays, cleanupDone)

	// Story generation backend
	generator, backend, err := generation.New(ctx, cfg)
	if err != nil {
		slog.Error("generation backend init failed", "backend", cfg.AIProvider, "error", err)
		os.Exit(1)
	}
	slog.Info("generation backend ready", "backend", backend)

	// Narration: the model loads on the first story that asks for audio.
	var (
		narrator services.Narrator
		ttsReady handlers.ReadinessReporter
	)
	if cfg.TTSEnabled {
		holder := audio.NewHolder(audio.HTTPLoader(cfg.TTSURL, cfg.TTSModel, &http.Client{Timeout: cfg.TTSTimeout}))
		synth := audio.NewSynthesizer(holder, cfg.TTSMaxChars)
		narrator, ttsReady = synth, synth
		slog.Info("narration enabled", "model", cfg.TTSModel, "url", cfg.TTSURL)
	}

	uploader, err := media.NewUploader(ctx, cfg)
	if err != nil {
		slog.Error("media uploader init failed", "error", err)
		os.Exit(1)
	}

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	storyService := services.NewStoryService(database.DB)
	generationService := services.NewGenerationService(generator, backend, narrator, storyService, cfg.AITimeout)
	settingsService := services.NewSettingsService(database.DB, authService, uploader)
	contactService := services.NewContactService(database.DB)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	if cfg.S3Bucket == "" && cfg.UploadDir != "" {
		app.Static(media.LocalPublicPrefix, cfg.UploadDir)
	}

	routes.Setup(app, cfg, routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Health:   handlers.NewHealthHandler(database.DB, backend, ttsReady),
		Generate: handlers.NewGenerateHandler(generationService, authService),
		Story:    handlers.NewStoryHandler(storyService),
		Settings: handlers.NewSettingsHandler(settingsService),
		Contact:  handlers.NewContactHandler(contactService),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(cfg.AITimeout + 5*time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	// 5xx details stay in the logs.
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
