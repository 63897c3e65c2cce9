package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courtside/internal/catalog"
	"courtside/internal/config"
	"courtside/internal/database"
	"courtside/internal/fixtures"
	server "courtside/internal/http"
	"courtside/internal/metrics"
	"courtside/internal/notifier"
	"courtside/internal/notifier/slack"
	"courtside/internal/session"
	sigbus "courtside/internal/signal"
	"courtside/internal/store"
	"courtside/internal/syncer"

	"github.com/charmbracelet/log"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	var kv store.KV
	switch cfg.Store.Backend {
	case "redis":
		kv = store.NewRedis(cfg.Store.RedisAddr)
		log.Info("Using redis store backend", "addr", cfg.Store.RedisAddr)
	default:
		kv = store.NewSQLite(db)
		log.Info("Using sqlite store backend", "db", cfg.DBName)
	}

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	var notif notifier.Notifier
	if cfg.Slack.Token != "" {
		notif = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Warn("No Slack token configured, operational alerts are log-only")
		notif = notifier.NewLog()
	}

	var bus sigbus.Bus
	if cfg.ProjectID != "" {
		bus = sigbus.New(cfg.ProjectID)
	} else {
		log.Warn("No GCP project configured, session changes stay local")
		bus = sigbus.NewLocal()
	}

	loader := fixtures.NewLoader(cfg.Fixtures.BaseURL, metricsSvc)
	sync := syncer.New(loader, kv, metricsSvc, notif, syncer.DefaultSources())
	cat := catalog.New(kv, sync)
	sessions := session.New(kv, cat, bus)

	s := server.NewServer(
		kv,
		cat,
		sync,
		sessions,
		metricsSvc,
		metricsHandler,
		cfg,
		notif,
		bus,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
