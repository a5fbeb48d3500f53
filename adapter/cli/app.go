package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	identitySettings "github.com/felixgeelhaar/focusfive/internal/identity/application/settings"
	insightsQueries "github.com/felixgeelhaar/focusfive/internal/insights/application/queries"
	progressQueries "github.com/felixgeelhaar/focusfive/internal/progress/application/queries"
	sharedDomain "github.com/felixgeelhaar/focusfive/internal/shared/domain"
	taskCommands "github.com/felixgeelhaar/focusfive/internal/tasks/application/commands"
	taskQueries "github.com/felixgeelhaar/focusfive/internal/tasks/application/queries"
)

// TodayResolver returns the user's current task day, honoring their
// reset time and timezone.
type TodayResolver func(ctx context.Context, userID uuid.UUID) (sharedDomain.Date, error)

// App holds the CLI application dependencies.
type App struct {
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
	ListAdditionalTasksHandler *taskQueries.ListAdditionalTasksHandler

	// Progress Query Handlers
	GetStreakHandler  *progressQueries.GetStreakHandler
	ListBadgesHandler *progressQueries.ListBadgesHandler

	// Insights
	GenerateInsightsHandler *insightsQueries.GenerateInsightsHandler

	// Settings
	SettingsService *identitySettings.Service

	// Current user (configured per environment)
	CurrentUserID uuid.UUID

	today TodayResolver
}

// NewApp creates a new CLI application with the provided handlers.
func NewApp(
	createTaskHandler *taskCommands.CreateTaskHandler,
	toggleTaskHandler *taskCommands.ToggleTaskHandler,
	reorderTasksHandler *taskCommands.ReorderTasksHandler,
	removeTaskHandler *taskCommands.RemoveTaskHandler,
	updateTaskHandler *taskCommands.UpdateTaskHandler,
	createAdditionalTaskHandler *taskCommands.CreateAdditionalTaskHandler,
	toggleAdditionalTaskHandler *taskCommands.ToggleAdditionalTaskHandler,
	listDayTasksHandler *taskQueries.ListDayTasksHandler,
	listAdditionalTasksHandler *taskQueries.ListAdditionalTasksHandler,
	getStreakHandler *progressQueries.GetStreakHandler,
	listBadgesHandler *progressQueries.ListBadgesHandler,
	generateInsightsHandler *insightsQueries.GenerateInsightsHandler,
	settingsService *identitySettings.Service,
) *App {
	return &App{
		CreateTaskHandler:           createTaskHandler,
		ToggleTaskHandler:           toggleTaskHandler,
		ReorderTasksHandler:         reorderTasksHandler,
		RemoveTaskHandler:           removeTaskHandler,
		UpdateTaskHandler:           updateTaskHandler,
		CreateAdditionalTaskHandler: createAdditionalTaskHandler,
		ToggleAdditionalTaskHandler: toggleAdditionalTaskHandler,
		ListDayTasksHandler:         listDayTasksHandler,
		ListAdditionalTasksHandler:  listAdditionalTasksHandler,
		GetStreakHandler:            getStreakHandler,
		ListBadgesHandler:           listBadgesHandler,
		GenerateInsightsHandler:     generateInsightsHandler,
		SettingsService:             settingsService,
	}
}

// SetCurrentUserID sets the active user for all commands.
func (a *App) SetCurrentUserID(id uuid.UUID) {
	a.CurrentUserID = id
}

// SetTodayResolver sets the effective-day resolver.
func (a *App) SetTodayResolver(resolver TodayResolver) {
	a.today = resolver
}

// Today resolves the user's current task day. Commands that take an
// optional --date flag fall back to this when the flag is empty.
func (a *App) Today(ctx context.Context) (sharedDomain.Date, error) {
	if a.today == nil {
		return sharedDomain.DateOf(time.Now().UTC()), nil
	}
	return a.today(ctx, a.CurrentUserID)
}

// ResolveDate parses an explicit YYYY-MM-DD value or falls back to the
// user's effective today.
func (a *App) ResolveDate(ctx context.Context, value string) (sharedDomain.Date, error) {
	if value == "" {
		return a.Today(ctx)
	}
	date, err := sharedDomain.NewDate(value)
	if err != nil {
		return sharedDomain.Date{}, fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
	}
	return date, nil
}

var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
