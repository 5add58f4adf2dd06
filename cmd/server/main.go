package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/joho/godotenv"

	"github.com/freementors/backend/internal/config"
	"github.com/freementors/backend/internal/database"
	"github.com/freementors/backend/internal/graph"
	"github.com/freementors/backend/internal/handlers"
	"github.com/freementors/backend/internal/logging"
	"github.com/freementors/backend/internal/middleware"
	"github.com/freementors/backend/internal/routes"
	"github.com/freementors/backend/internal/services"
	"github.com/freementors/backend/internal/store"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Stores and services
	st := store.NewGormStore(database.DB)
	authService := services.NewAuthService(st.Users, cfg)
	sessionService := services.NewSessionService(st.Users, st.Sessions)
	reviewService := services.NewReviewService(st.Users, st.Sessions, st.Reviews)

	// Bootstrap admin
	if err := authService.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		slog.Error("admin seed failed", "error", err)
		os.Exit(1)
	}

	// GraphQL schema
	schema, err := graph.NewSchema(&graph.Resolver{
		Auth:     authService,
		Sessions: sessionService,
		Reviews:  reviewService,
	})
	if err != nil {
		slog.Error("schema build failed", "error", err)
		os.Exit(1)
	}

	graphqlHandler := handlers.NewGraphQLHandler(schema)
	healthHandler := handlers.NewHealthHandler()

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

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, authService, graphqlHandler, healthHandler)

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

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

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
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
