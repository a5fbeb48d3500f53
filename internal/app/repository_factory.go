package app

import (
	"fmt"

	identityDomain "github.com/felixgeelhaar/focusfive/internal/identity/domain"
	identityPersistence "github.com/felixgeelhaar/focusfive/internal/identity/infrastructure/persistence"
	progressDomain "github.com/felixgeelhaar/focusfive/internal/progress/domain"
	progressPersistence "github.com/felixgeelhaar/focusfive/internal/progress/infrastructure/persistence"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/outbox"
	tasksDomain "github.com/felixgeelhaar/focusfive/internal/tasks/domain"
	tasksPersistence "github.com/felixgeelhaar/focusfive/internal/tasks/infrastructure/persistence"
)

// RepositoryFactory creates repositories for the connection's driver.
type RepositoryFactory struct {
	conn   database.Connection
	driver database.Driver
}

// NewRepositoryFactory creates a new repository factory.
func NewRepositoryFactory(conn database.Connection) *RepositoryFactory {
	return &RepositoryFactory{
		conn:   conn,
		driver: conn.Driver(),
	}
}

// TaskRepository creates a task repository for the configured driver.
func (f *RepositoryFactory) TaskRepository() (tasksDomain.Repository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return tasksPersistence.NewPostgresTaskRepository(f.conn), nil
	case database.DriverSQLite:
		return tasksPersistence.NewSQLiteTaskRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// AdditionalTaskRepository creates a bonus-task repository.
func (f *RepositoryFactory) AdditionalTaskRepository() (tasksDomain.AdditionalRepository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return tasksPersistence.NewPostgresAdditionalTaskRepository(f.conn), nil
	case database.DriverSQLite:
		return tasksPersistence.NewSQLiteAdditionalTaskRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// BadgeRepository creates a badge repository.
func (f *RepositoryFactory) BadgeRepository() (progressDomain.Repository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return progressPersistence.NewPostgresBadgeRepository(f.conn), nil
	case database.DriverSQLite:
		return progressPersistence.NewSQLiteBadgeRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// SettingsRepository creates a settings repository.
func (f *RepositoryFactory) SettingsRepository() (identityDomain.SettingsRepository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return identityPersistence.NewPostgresSettingsRepository(f.conn), nil
	case database.DriverSQLite:
		return identityPersistence.NewSQLiteSettingsRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// OutboxRepository creates an outbox repository.
func (f *RepositoryFactory) OutboxRepository() (outbox.Repository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return outbox.NewPostgresRepository(f.conn), nil
	case database.DriverSQLite:
		return outbox.NewSQLiteRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// Driver returns the underlying driver.
func (f *RepositoryFactory) Driver() database.Driver {
	return f.driver
}

// Connection returns the underlying connection.
func (f *RepositoryFactory) Connection() database.Connection {
	return f.conn
}
