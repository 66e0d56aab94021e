// Package main is the entry point for the NextWave Digital Solutions web
// server. It loads configuration, connects to services, sets up routing,
// and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nextwave/internal/cache"
	"nextwave/internal/config"
	"nextwave/internal/crm"
	"nextwave/internal/database"
	"nextwave/internal/handlers"
	"nextwave/internal/mail"
	"nextwave/internal/render"
	"nextwave/internal/router"
	"nextwave/internal/session"
	"nextwave/internal/store"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger — JSON in production, text in development.
	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible cache + session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Initialize session store backed by Valkey.
	// In non-development environments, mark session cookies as Secure (HTTPS-only).
	sessionStore := session.NewStore(valkeyClient, !cfg.IsDev())

	// Initialize the HTML template renderer.
	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	postStore := store.NewPostStore(db)
	subscriberStore := store.NewSubscriberStore(db)

	// Full-page HTML cache in Valkey for public blog pages.
	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)

	// HubSpot CRM client for contact form leads (optional — without a token
	// the contact endpoint reports the form as temporarily unavailable).
	hubspot := crm.NewHubSpot(cfg.HubSpotToken, cfg.HubSpotBaseURL)
	if !hubspot.Enabled() {
		slog.Warn("hubspot not configured — contact form lead capture disabled")
	}

	// Resend transactional email (optional — emails are best effort).
	mailer := mail.NewResend(cfg.ResendAPIKey, cfg.ResendBaseURL, cfg.EmailFrom)
	if !mailer.Enabled() {
		slog.Warn("resend not configured — outbound email disabled")
	}

	// Create handler groups with their dependencies.
	adminHandlers := handlers.NewAdmin(renderer, postStore, subscriberStore, pageCache)
	authHandlers := handlers.NewAuth(renderer, sessionStore, userStore, mailer, cfg.BaseURL)
	publicHandlers := handlers.NewPublic(renderer, postStore, pageCache)
	apiHandlers := handlers.NewAPI(subscriberStore, hubspot, mailer, cfg.NotificationEmail)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, adminHandlers, authHandlers, publicHandlers, apiHandlers)

	// Create the HTTP server with sensible timeouts. WriteTimeout covers the
	// API handlers that call out to HubSpot and Resend synchronously.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
