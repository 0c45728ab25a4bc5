package tarefa

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/tarefa-api/domain/tarefa"
	"github.com/example/tarefa-api/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DBConfig selects and configures the relational store.
type DBConfig struct {
	Driver string
	DSN    string
	Debug  bool
}

// Module provides tarefa management services backed by GORM.
type Module struct {
	db       *gorm.DB
	repo     *domain.Repository
	eventBus mono.EventBus
	cfg      DBConfig
	logger   types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.EventBusAwareModule   = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new tarefa module.
func NewModule(cfg DBConfig, logger types.Logger) *Module {
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	if cfg.DSN == "" && cfg.Driver == DriverSQLite {
		cfg.DSN = "tarefas.db"
	}
	return &Module{
		cfg:    cfg,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "tarefa"
}

// SetEventBus receives the EventBus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TarefaCreatedV1.ToBase(),
		events.TarefaUpdatedV1.ToBase(),
		events.TarefaDeletedV1.ToBase(),
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceGet, json.Unmarshal, json.Marshal, m.getTarefa,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGet, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceList, json.Unmarshal, json.Marshal, m.listTarefas,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceList, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceFindByTitle, json.Unmarshal, json.Marshal, m.findByTitle,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceFindByTitle, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceFindByDate, json.Unmarshal, json.Marshal, m.findByDate,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceFindByDate, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceFindByStatus, json.Unmarshal, json.Marshal, m.findByStatus,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceFindByStatus, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceCreate, json.Unmarshal, json.Marshal, m.createTarefa,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceCreate, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceUpdate, json.Unmarshal, json.Marshal, m.updateTarefa,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceUpdate, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceDelete, json.Unmarshal, json.Marshal, m.deleteTarefa,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceDelete, err)
	}

	m.logger.Info("Registered tarefa services",
		"services", []string{
			ServiceGet, ServiceList, ServiceFindByTitle, ServiceFindByDate,
			ServiceFindByStatus, ServiceCreate, ServiceUpdate, ServiceDelete,
		})
	return nil
}

// Start opens the database and runs migrations.
func (m *Module) Start(_ context.Context) error {
	db, err := openDatabase(m.cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db
	m.repo = domain.NewRepository(db)

	if err := m.repo.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if m.eventBus == nil {
		m.logger.Warn("eventBus not set, tarefa events will not be published")
	}

	m.logger.Info("Tarefa module started", "driver", m.cfg.Driver)
	return nil
}

// Stop closes the database connection.
func (m *Module) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	m.logger.Info("Tarefa module stopped")
	return nil
}

// Health pings the database.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": m.cfg.Driver,
		},
	}
}

// openDatabase opens a GORM connection for the configured driver.
func openDatabase(cfg DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	case DriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("DSN is required for driver %q", cfg.Driver)
		}
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
}
