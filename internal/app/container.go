package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	identitySettings "github.com/felixgeelhaar/focusfive/internal/identity/application/settings"
	identityDomain "github.com/felixgeelhaar/focusfive/internal/identity/domain"
	insightsQueries "github.com/felixgeelhaar/focusfive/internal/insights/application/queries"
	insightsServices "github.com/felixgeelhaar/focusfive/internal/insights/application/services"
	insightsPersistence "github.com/felixgeelhaar/focusfive/internal/insights/infrastructure/persistence"
	progressCommands "github.com/felixgeelhaar/focusfive/internal/progress/application/commands"
	progressQueries "github.com/felixgeelhaar/focusfive/internal/progress/application/queries"
	progressServices "github.com/felixgeelhaar/focusfive/internal/progress/application/services"
	progressSubs "github.com/felixgeelhaar/focusfive/internal/progress/application/subscribers"
	progressDomain "github.com/felixgeelhaar/focusfive/internal/progress/domain"
	progressCache "github.com/felixgeelhaar/focusfive/internal/progress/infrastructure/cache"
	progressPersistence "github.com/felixgeelhaar/focusfive/internal/progress/infrastructure/persistence"
	sharedApplication "github.com/felixgeelhaar/focusfive/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/database/postgres" // Register Postgres driver
	_ "github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/security"
	taskCommands "github.com/felixgeelhaar/focusfive/internal/tasks/application/commands"
	taskQueries "github.com/felixgeelhaar/focusfive/internal/tasks/application/queries"
	taskServices "github.com/felixgeelhaar/focusfive/internal/tasks/application/services"
	tasksDomain "github.com/felixgeelhaar/focusfive/internal/tasks/domain"
	"github.com/felixgeelhaar/focusfive/pkg/config"
	"github.com/felixgeelhaar/focusfive/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics observability.Metrics

	// Database
	DBConn   database.Connection
	DBDriver database.Driver

	// Redis
	RedisClient *redis.Client

	// Repositories
	TaskRepo           tasksDomain.Repository
	AdditionalTaskRepo tasksDomain.AdditionalRepository
	BadgeRepo          progressDomain.Repository
	SettingsRepo       identityDomain.SettingsRepository
	OutboxRepo         outbox.Repository

	// Unit of Work
	UnitOfWork sharedApplication.UnitOfWork

	// Publishers
	EventPublisher    eventbus.Publisher
	InProcessEventBus *eventbus.InProcessEventBus

	// Task Command Handlers
	CreateTaskHandler           *taskCommands.CreateTaskHandler
	ToggleTaskHandler           *taskCommands.ToggleTaskHandler
	ReorderTasksHandler         *taskCommands.ReorderTasksHandler
	RemoveTaskHandler           *taskCommands.RemoveTaskHandler
	UpdateTaskHandler           *taskCommands.UpdateTaskHandler
	CreateAdditionalTaskHandler *taskCommands.CreateAdditionalTaskHandler
	ToggleAdditionalTaskHandler *taskCommands.ToggleAdditionalTaskHandler

	// Task Query Handlers
	ListDayTasksHandler        *taskQueries.ListDayTasksHandler
	GetTaskHandler             *taskQueries.GetTaskHandler
	CompletedHistoryHandler    *taskQueries.CompletedHistoryHandler
	ListAdditionalTasksHandler *taskQueries.ListAdditionalTasksHandler

	// Progress
	CompletionSource      *progressPersistence.SQLCompletionSource
	StreakCalculator      *progressServices.StreakCalculator
	BadgeEvaluator        *progressServices.BadgeEvaluator
	EvaluateBadgesHandler *progressCommands.EvaluateBadgesHandler
	GetStreakHandler      *progressQueries.GetStreakHandler
	ListBadgesHandler     *progressQueries.ListBadgesHandler
	StreakCache           *progressCache.RedisStreakCache
	BadgeSubscriber       *progressSubs.BadgeSubscriber

	// Insights
	InsightGenerator        *insightsServices.InsightGenerator
	GenerateInsightsHandler *insightsQueries.GenerateInsightsHandler

	// Settings
	SettingsService *identitySettings.Service

	// Outbox Processor
	OutboxProcessor *outbox.Processor
}

// NewContainer creates and wires all dependencies for hosted mode
// (PostgreSQL plus RabbitMQ).
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	conn, err := database.NewConnection(ctx, database.Config{
		Driver: database.DriverPostgres,
		URL:    cfg.DatabaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("connected to database", "driver", database.DriverPostgres)

	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Metrics:  observability.NewInMemoryMetrics(),
		DBConn:   database.NewGuardedConnection(conn, database.DefaultGuardConfig(), logger),
		DBDriver: database.DriverPostgres,
	}

	c.connectRedis(ctx)

	publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("RabbitMQ not available, using noop publisher", "error", err)
			c.EventPublisher = eventbus.NewNoopPublisher(logger)
		} else {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
	} else {
		c.EventPublisher = publisher
	}

	if err := c.wire(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	logger.Info("hosted mode container initialized")
	return c, nil
}

// NewLocalContainer creates and wires all dependencies for local mode
// (SQLite plus an in-process event bus).
func NewLocalContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	conn, err := initSQLiteConnection(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite: %w", err)
	}

	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Metrics:  observability.NewInMemoryMetrics(),
		DBConn:   database.NewGuardedConnection(conn, database.DefaultGuardConfig(), logger),
		DBDriver: database.DriverSQLite,
	}

	c.connectRedis(ctx)

	c.InProcessEventBus = eventbus.NewInProcessEventBus(logger).WithMetrics(c.Metrics)
	c.EventPublisher = c.InProcessEventBus

	if err := c.wire(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	// Local mode reacts to completions immediately: toggling a task
	// re-evaluates badges through the in-process bus.
	c.InProcessEventBus.RegisterConsumer(c.BadgeSubscriber)

	logger.Info("local mode container initialized",
		"database", cfg.SQLitePath,
		"driver", "sqlite",
	)
	return c, nil
}

// connectRedis connects the optional streak cache. Redis being down is
// never fatal; the streak is recomputed from the store instead.
func (c *Container) connectRedis(ctx context.Context) {
	if !c.Config.RedisEnabled || c.Config.RedisURL == "" {
		return
	}

	opt, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		c.Logger.Warn("invalid Redis URL, streak cache disabled", "error", err)
		return
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		c.Logger.Warn("Redis not available, streak cache disabled", "error", err)
		return
	}

	c.RedisClient = client
	c.Logger.Info("connected to Redis")
}

// wire builds repositories, services, and handlers over the prepared
// connection. Both modes share this step; only the driver and event
// transport differ.
func (c *Container) wire() error {
	factory := NewRepositoryFactory(c.DBConn)

	taskRepo, err := factory.TaskRepository()
	if err != nil {
		return fmt.Errorf("failed to create task repository: %w", err)
	}
	c.TaskRepo = taskRepo

	additionalRepo, err := factory.AdditionalTaskRepository()
	if err != nil {
		return fmt.Errorf("failed to create bonus task repository: %w", err)
	}
	c.AdditionalTaskRepo = additionalRepo

	badgeRepo, err := factory.BadgeRepository()
	if err != nil {
		return fmt.Errorf("failed to create badge repository: %w", err)
	}
	c.BadgeRepo = badgeRepo

	settingsRepo, err := factory.SettingsRepository()
	if err != nil {
		return fmt.Errorf("failed to create settings repository: %w", err)
	}
	c.SettingsRepo = settingsRepo

	outboxRepo, err := factory.OutboxRepository()
	if err != nil {
		return fmt.Errorf("failed to create outbox repository: %w", err)
	}
	c.OutboxRepo = outboxRepo

	c.UnitOfWork = database.NewUnitOfWork(c.DBConn)

	// Settings
	c.SettingsService = identitySettings.NewService(
		settingsRepo, outboxRepo, c.UnitOfWork,
		c.Config.DefaultDailyGoal, c.Config.DefaultWeeklyGoal,
	)

	// Tasks
	capacity := taskServices.NewCapacityPolicy()
	c.CreateTaskHandler = taskCommands.NewCreateTaskHandler(taskRepo, outboxRepo, capacity, c.SettingsService, c.UnitOfWork)
	c.ToggleTaskHandler = taskCommands.NewToggleTaskHandler(taskRepo, outboxRepo, c.UnitOfWork)
	c.ReorderTasksHandler = taskCommands.NewReorderTasksHandler(taskRepo, outboxRepo, capacity, c.UnitOfWork)
	c.RemoveTaskHandler = taskCommands.NewRemoveTaskHandler(taskRepo, outboxRepo, capacity, c.UnitOfWork)
	c.UpdateTaskHandler = taskCommands.NewUpdateTaskHandler(taskRepo, outboxRepo, c.UnitOfWork)
	c.CreateAdditionalTaskHandler = taskCommands.NewCreateAdditionalTaskHandler(additionalRepo, outboxRepo, c.UnitOfWork)
	c.ToggleAdditionalTaskHandler = taskCommands.NewToggleAdditionalTaskHandler(additionalRepo, outboxRepo, c.UnitOfWork)

	c.ListDayTasksHandler = taskQueries.NewListDayTasksHandler(taskRepo, c.SettingsService)
	c.GetTaskHandler = taskQueries.NewGetTaskHandler(taskRepo)
	c.CompletedHistoryHandler = taskQueries.NewCompletedHistoryHandler(taskRepo)
	c.ListAdditionalTasksHandler = taskQueries.NewListAdditionalTasksHandler(additionalRepo)

	// Progress
	completionSource := progressPersistence.NewSQLCompletionSource(c.DBConn)
	c.CompletionSource = completionSource
	c.StreakCalculator = progressServices.NewStreakCalculator()
	c.BadgeEvaluator = progressServices.NewBadgeEvaluator()
	c.EvaluateBadgesHandler = progressCommands.NewEvaluateBadgesHandler(
		badgeRepo, completionSource, c.SettingsService, outboxRepo,
		c.StreakCalculator, c.BadgeEvaluator, c.UnitOfWork,
	)

	var streakCache progressQueries.StreakCache
	if c.RedisClient != nil {
		c.StreakCache = progressCache.NewRedisStreakCache(c.RedisClient, c.Logger)
		streakCache = c.StreakCache
	}
	c.GetStreakHandler = progressQueries.NewGetStreakHandler(completionSource, c.StreakCalculator, streakCache)
	c.ListBadgesHandler = progressQueries.NewListBadgesHandler(badgeRepo)

	var invalidator progressSubs.StreakInvalidator
	if c.StreakCache != nil {
		invalidator = c.StreakCache
	}
	c.BadgeSubscriber = progressSubs.NewBadgeSubscriber(
		c.EvaluateBadgesHandler, c.EffectiveToday, invalidator, c.Logger,
	)

	// Insights
	historySource := insightsPersistence.NewSQLHistorySource(c.DBConn)
	c.InsightGenerator = insightsServices.NewInsightGenerator(c.Logger)
	c.GenerateInsightsHandler = insightsQueries.NewGenerateInsightsHandler(
		historySource,
		&streakSource{handler: c.GetStreakHandler, today: c.EffectiveToday},
		c.SettingsService,
		c.InsightGenerator,
	)

	// Outbox processor
	c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, outbox.ProcessorConfig{
		PollInterval: c.Config.OutboxPollInterval,
		BatchSize:    c.Config.OutboxBatchSize,
		MaxRetries:   c.Config.OutboxMaxRetries,
	}, c.Logger).WithMetrics(c.Metrics)

	return nil
}

// EffectiveToday resolves the user's current task day from their reset
// time and timezone. Before the reset time the previous calendar day is
// still "today".
func (c *Container) EffectiveToday(ctx context.Context, userID uuid.UUID) (sharedDomain.Date, error) {
	settings, err := c.SettingsService.GetOrCreate(ctx, userID)
	if err != nil {
		return sharedDomain.Date{}, err
	}
	return sharedDomain.EffectiveDate(time.Now(), settings.ResetTime, settings.Timezone), nil
}

// Close releases all resources.
func (c *Container) Close() {
	if c.OutboxProcessor != nil {
		c.OutboxProcessor.Stop()
	}
	if c.EventPublisher != nil {
		_ = c.EventPublisher.Close()
	}
	if c.RedisClient != nil {
		_ = c.RedisClient.Close()
	}
	if c.DBConn != nil {
		_ = c.DBConn.Close()
	}
}

// streakSource adapts the streak query to the insights port.
type streakSource struct {
	handler *progressQueries.GetStreakHandler
	today   func(ctx context.Context, userID uuid.UUID) (sharedDomain.Date, error)
}

func (s *streakSource) CurrentStreak(ctx context.Context, userID uuid.UUID) (int, error) {
	today, err := s.today(ctx, userID)
	if err != nil {
		return 0, err
	}
	result, err := s.handler.Handle(ctx, progressQueries.GetStreakQuery{UserID: userID, Today: today})
	if err != nil {
		return 0, err
	}
	return result.Streak, nil
}

// sqliteConnection is a Connection that also exposes the raw *sql.DB
// for migrations.
type sqliteConnection interface {
	database.Connection
	DB() *sql.DB
}

// initSQLiteConnection opens the SQLite database and applies migrations.
func initSQLiteConnection(ctx context.Context, cfg *config.Config, logger *slog.Logger) (sqliteConnection, error) {
	path := cfg.SQLitePath
	if path == "" {
		path = database.DefaultSQLitePath()
	}
	dbPath, err := security.ValidateFilePath(path)
	if err != nil {
		return nil, fmt.Errorf("invalid SQLite path: %w", err)
	}

	conn, err := database.NewConnection(ctx, database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: dbPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create SQLite connection: %w", err)
	}

	sqliteConn, ok := conn.(sqliteConnection)
	if !ok {
		_ = conn.Close()
		return nil, fmt.Errorf("expected SQLite connection with DB() method, got %T", conn)
	}

	err = observability.TimeOperation(ctx, logger, nil, "migrations.sqlite", func() error {
		return migrations.RunSQLiteMigrations(ctx, sqliteConn.DB())
	})
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return sqliteConn, nil
}
