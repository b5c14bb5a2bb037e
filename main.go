package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/courtflow/courtflow/internal/config"
	"github.com/courtflow/courtflow/internal/database"
	"github.com/courtflow/courtflow/internal/engine"
	"github.com/courtflow/courtflow/internal/facility"
	server "github.com/courtflow/courtflow/internal/http"
	"github.com/courtflow/courtflow/internal/ledger"
	"github.com/courtflow/courtflow/internal/metrics"
	"github.com/courtflow/courtflow/internal/notifier/slack"
	"github.com/courtflow/courtflow/internal/players"
	"github.com/courtflow/courtflow/internal/predictor"
	"github.com/courtflow/courtflow/internal/pubsub"
	"github.com/courtflow/courtflow/internal/queue"
	"github.com/courtflow/courtflow/internal/rotation"
	"github.com/courtflow/courtflow/internal/webhook"
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

	queueStore := queue.New(db)
	gameLedger := ledger.New(db)
	playerStore := players.New(db)
	registry := facility.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	pubsubClient := pubsub.New(cfg.ProjectID)
	webhooks := webhook.New(db, metricsSvc)

	waitPredictor := predictor.New(gameLedger, queueStore, registry, predictor.Config{
		MinSamples:  cfg.Predictor.MinSamples,
		SampleLimit: cfg.Predictor.SampleLimit,
	})
	rotationCfg := rotation.Config{
		FullRotationQueueLen: cfg.Rotation.FullRotationQueueLen,
		MaxConsecutiveWins:   cfg.Rotation.MaxConsecutiveWins,
	}
	eng := engine.New(queueStore, gameLedger, waitPredictor, rotationCfg,
		notifier, webhooks, pubsubClient, metricsSvc)

	s := server.NewServer(
		eng,
		queueStore,
		playerStore,
		registry,
		webhooks,
		metricsSvc,
		metricsHandler,
		cfg,
		pubsubClient,
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
