package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/focusfive/adapter/cli"
	cliInsights "github.com/felixgeelhaar/focusfive/adapter/cli/insights"
	cliProgress "github.com/felixgeelhaar/focusfive/adapter/cli/progress"
	cliSettings "github.com/felixgeelhaar/focusfive/adapter/cli/settings"
	"github.com/felixgeelhaar/focusfive/adapter/cli/task"
	"github.com/felixgeelhaar/focusfive/internal/app"
	"github.com/felixgeelhaar/focusfive/pkg/config"
	"github.com/felixgeelhaar/focusfive/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.IsDevelopment() {
		devCfg := observability.DefaultLogConfig()
		devCfg.Level = observability.LogLevelDebug
		logger = observability.NewLogger(devCfg)
	}
	cli.SetLogger(logger)

	// Local-first: SQLite unless a shared backend is configured.
	var container *app.Container
	if cfg.Hosted() {
		container, err = app.NewContainer(ctx, cfg, logger)
	} else {
		container, err = app.NewLocalContainer(ctx, cfg, logger)
	}
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	if cfg.OutboxProcessorEnabled {
		if err := container.OutboxProcessor.Start(ctx); err != nil {
			logger.Warn("failed to start outbox processor", "error", err)
		}
	} else {
		logger.Info("outbox processor disabled in CLI")
	}

	cliApp := cli.NewApp(
		container.CreateTaskHandler,
		container.ToggleTaskHandler,
		container.ReorderTasksHandler,
		container.RemoveTaskHandler,
		container.UpdateTaskHandler,
		container.CreateAdditionalTaskHandler,
		container.ToggleAdditionalTaskHandler,
		container.ListDayTasksHandler,
		container.ListAdditionalTasksHandler,
		container.GetStreakHandler,
		container.ListBadgesHandler,
		container.GenerateInsightsHandler,
		container.SettingsService,
	)

	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		logger.Error("invalid FOCUSFIVE_USER_ID", "error", err)
		os.Exit(1)
	}
	cliApp.SetCurrentUserID(userID)
	cliApp.SetTodayResolver(container.EffectiveToday)

	cli.SetApp(cliApp)
	cli.SetMetrics(container.Metrics)

	cli.AddCommand(task.Cmd)
	cli.AddCommand(cliProgress.Cmd)
	cli.AddCommand(cliInsights.Cmd)
	cli.AddCommand(cliSettings.Cmd)

	cli.Execute()
}
