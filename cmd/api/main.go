package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/internal/api"
	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/internal/api/handlers"
	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/internal/config"
	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/internal/domain/services"
	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/internal/infrastructure/cache"
	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/internal/rules"
	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger from config (RISKRATE_LOGGER_* overridable)
	log := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		TimeFormat: cfg.Logger.TimeFormat,
	})

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting risk rating assistant")

	// Load the rules document once; it is immutable for the process
	// lifetime and shared by all evaluations.
	doc, err := rules.Load(cfg.Rules.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Rules.Path).Msg("failed to load rules document")
	}
	if unknown := doc.UnknownControlRefs(); len(unknown) > 0 {
		log.Warn().Strs("control_ids", unknown).Msg("rules document references unknown controls")
	}
	log.Info().
		Int("controls", len(doc.AllControls())).
		Int("incident_elements", len(doc.Catalog.IncidentResponseElements)).
		Str("path", cfg.Rules.Path).
		Msg("rules document loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect Redis when rate limiting needs it
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedis(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without rate limiting")
		} else {
			defer redisCache.Close()
		}
	}

	// Initialize the evaluation engine
	evaluator := services.NewEvaluator(doc, log)

	// Initialize handlers
	h := handlers.NewHandlers(handlers.Dependencies{
		Evaluator: evaluator,
		Cache:     redisCache,
		Logger:    log,
		Version:   cfg.App.Version,
	})

	// Create router
	router := api.NewRouter(*cfg, h, redisCache, log)

	// Start HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}
