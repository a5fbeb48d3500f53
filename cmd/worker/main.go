package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/felixgeelhaar/focusfive/internal/app"
	progressCommands "github.com/felixgeelhaar/focusfive/internal/progress/application/commands"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/focusfive/pkg/config"
	"github.com/felixgeelhaar/focusfive/pkg/observability"
)

func main() {
	logger := observability.NewLogger(observability.ProductionLogConfig())

	logger.Info("starting focusfive worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if !cfg.Hosted() {
		logger.Error("worker requires a hosted backend, set DATABASE_URL")
		os.Exit(1)
	}

	if cfg.IsDevelopment() {
		devCfg := observability.DefaultLogConfig()
		devCfg.Level = observability.LogLevelDebug
		logger = observability.NewLogger(devCfg)
	}

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	// Outbox relay
	processor := container.OutboxProcessor
	if err := processor.Start(ctx); err != nil {
		logger.Error("failed to start outbox processor", "error", err)
		os.Exit(1)
	}

	// Badge evaluation reacts to completion events from the broker.
	registry := eventbus.NewConsumerRegistry(logger)
	registry.Register(container.BadgeSubscriber)
	consumer, err := eventbus.NewRabbitMQConsumer(eventbus.RabbitMQConsumerConfig{
		URL:    cfg.RabbitMQURL,
		Logger: logger,
	}, registry)
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("RabbitMQ consumer not available", "error", err)
		} else {
			logger.Error("failed to create RabbitMQ consumer", "error", err)
			os.Exit(1)
		}
	} else {
		consumer.WithMetrics(container.Metrics)
		go func() {
			if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
				logger.Error("consumer stopped", "error", err)
			}
		}()
		defer consumer.Close()
	}

	// Daily rollover: just past each user's reset a fresh evaluation
	// settles streak-break badges that no completion event will trigger.
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.RolloverSchedule, func() {
		rollover(ctx, container, logger)
	})
	if err != nil {
		logger.Error("invalid rollover schedule", "schedule", cfg.RolloverSchedule, "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()
	logger.Info("rollover scheduled", "schedule", cfg.RolloverSchedule)

	// Outbox cleanup
	cleanupTicker := time.NewTicker(cfg.OutboxCleanupInterval)
	defer cleanupTicker.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-cleanupTicker.C:
				deleted, err := container.OutboxRepo.DeleteOld(ctx, cfg.OutboxRetentionDays)
				if err != nil {
					logger.Error("outbox cleanup failed", "error", err)
					continue
				}
				if deleted > 0 {
					logger.Info("outbox cleanup completed", "deleted", deleted, "retention_days", cfg.OutboxRetentionDays)
				}
			}
		}
	}()

	if cfg.WorkerHealthAddr != "" {
		startHealthServer(ctx, cfg, container, logger)
	}

	statsTicker := time.NewTicker(cfg.OutboxStatsInterval)
	defer statsTicker.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-statsTicker.C:
				stats := processor.GetStats()
				logger.Info("outbox stats",
					"running", stats.IsRunning,
					"published", stats.PublishedCount,
					"failed", stats.FailedCount,
					"dead", stats.DeadCount,
					"lag_seconds", stats.LagSeconds,
					"oldest_message_at", stats.OldestMessageAt,
					"last_processed_at", stats.LastProcessedAt,
					"last_error_at", stats.LastErrorAt,
					"last_error", stats.LastError,
				)
			}
		}
	}()

	// Wait for shutdown
	<-ctx.Done()
	logger.Info("shutting down worker")

	processor.Stop()
	logger.Info("worker stopped")
}

// rollover re-evaluates badges for every active user at their current
// effective day.
func rollover(ctx context.Context, container *app.Container, logger *slog.Logger) {
	users, err := container.CompletionSource.ActiveUsers(ctx)
	if err != nil {
		logger.Error("rollover: failed to list active users", "error", err)
		return
	}

	evaluated := 0
	for _, userID := range users {
		today, err := container.EffectiveToday(ctx, userID)
		if err != nil {
			logger.Error("rollover: failed to resolve day", "user_id", userID, "error", err)
			continue
		}
		result, err := container.EvaluateBadgesHandler.Handle(ctx, progressCommands.EvaluateBadgesCommand{
			UserID: userID,
			Today:  today,
		})
		if err != nil {
			logger.Error("rollover: badge evaluation failed", "user_id", userID, "error", err)
			continue
		}
		evaluated++
		if len(result.Awarded) > 0 {
			logger.Info("rollover: badges awarded", "user_id", userID, "badges", result.Awarded)
		}
	}
	logger.Info("rollover completed", "users", evaluated)
}

func startHealthServer(ctx context.Context, cfg *config.Config, container *app.Container, logger *slog.Logger) {
	processor := container.OutboxProcessor

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		stats := processor.GetStats()
		response := map[string]any{
			"status":            "ok",
			"running":           stats.IsRunning,
			"published":         stats.PublishedCount,
			"failed":            stats.FailedCount,
			"dead":              stats.DeadCount,
			"last_processed_at": stats.LastProcessedAt,
			"last_error_at":     stats.LastErrorAt,
			"last_error":        stats.LastError,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	})

	health := observability.NewHealthRegistry()
	health.Register("database", observability.DatabaseHealthChecker(container.DBConn.Ping))
	if container.RedisClient != nil {
		health.Register("redis", observability.RedisHealthChecker(func(ctx context.Context) error {
			return container.RedisClient.Ping(ctx).Err()
		}))
	}

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		overall := health.GetOverallHealth(checkCtx)
		w.Header().Set("Content-Type", "application/json")
		if overall.Status == observability.HealthStatusUnhealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		body, err := overall.ToJSON()
		if err != nil {
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "error"})
			return
		}
		_, _ = w.Write(body)
	})

	healthSrv := &http.Server{
		Addr:              cfg.WorkerHealthAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("health server starting", "addr", cfg.WorkerHealthAddr)
		if err := healthSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("health server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := healthSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("health server shutdown error", "error", err)
		}
	}()
}
