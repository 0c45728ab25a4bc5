package tarefa

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/example/tarefa-api/domain/tarefa"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any)         {}
func (m *mockLogger) Info(_ string, _ ...any)          {}
func (m *mockLogger) Warn(_ string, _ ...any)          {}
func (m *mockLogger) Error(_ string, _ ...any)         {}
func (m *mockLogger) With(_ ...any) types.Logger       { return m }
func (m *mockLogger) WithError(_ error) types.Logger   { return m }
func (m *mockLogger) WithModule(_ string) types.Logger { return m }

// createTestModule creates a module over an in-memory SQLite database.
// The event bus is left unset, so no events are published.
func createTestModule(t *testing.T) *Module {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	m := NewModule(DBConfig{Driver: DriverSQLite, DSN: ":memory:"}, &mockLogger{})
	m.db = db
	m.repo = domain.NewRepository(db)
	require.NoError(t, m.repo.Migrate())

	t.Cleanup(func() {
		_ = m.Stop(context.Background())
	})
	return m
}

func create(t *testing.T, m *Module, req domain.CreateTarefaRequest) domain.Tarefa {
	t.Helper()
	created, err := m.createTarefa(context.Background(), req, nil)
	require.NoError(t, err)
	return created
}

func TestCreateTarefa_ThenGet(t *testing.T) {
	m := createTestModule(t)
	ctx := context.Background()

	date := time.Date(2024, 2, 15, 9, 0, 0, 0, time.UTC)
	created := create(t, m, domain.CreateTarefaRequest{
		Title:       "Estudar",
		Description: "Ler documentacao",
		Date:        date,
		Status:      domain.StatusPendente,
	})
	assert.NotZero(t, created.ID)

	found, err := m.getTarefa(ctx, GetTarefaRequest{ID: created.ID}, nil)
	require.NoError(t, err)

	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Estudar", found.Title)
	assert.Equal(t, "Ler documentacao", found.Description)
	assert.True(t, found.Date.Equal(date))
	assert.Equal(t, domain.StatusPendente, found.Status)
}

func TestCreateTarefa_DefaultsStatus(t *testing.T) {
	m := createTestModule(t)

	created := create(t, m, domain.CreateTarefaRequest{
		Title: "Sem status",
		Date:  time.Now(),
	})
	assert.Equal(t, domain.StatusPendente, created.Status)
}

func TestCreateTarefa_ZeroDateRejected(t *testing.T) {
	m := createTestModule(t)
	ctx := context.Background()

	_, err := m.createTarefa(ctx, domain.CreateTarefaRequest{Title: "Sem data"}, nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := m.listTarefas(ctx, ListTarefasRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total, "rejected tarefa must not be persisted")
}

func TestCreateTarefa_UnknownStatusRejected(t *testing.T) {
	m := createTestModule(t)

	_, err := m.createTarefa(context.Background(), domain.CreateTarefaRequest{
		Title:  "Status invalido",
		Date:   time.Now(),
		Status: domain.Status("Arquivado"),
	}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetTarefa_NotFound(t *testing.T) {
	m := createTestModule(t)

	_, err := m.getTarefa(context.Background(), GetTarefaRequest{ID: 42}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListTarefas(t *testing.T) {
	m := createTestModule(t)
	ctx := context.Background()

	empty, err := m.listTarefas(ctx, ListTarefasRequest{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, empty.Tarefas)
	assert.Empty(t, empty.Tarefas)

	create(t, m, domain.CreateTarefaRequest{Title: "um", Date: time.Now()})
	create(t, m, domain.CreateTarefaRequest{Title: "dois", Date: time.Now()})

	list, err := m.listTarefas(ctx, ListTarefasRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	assert.Len(t, list.Tarefas, 2)
}

func TestFindByTitle(t *testing.T) {
	m := createTestModule(t)
	ctx := context.Background()

	create(t, m, domain.CreateTarefaRequest{Title: "Buy Milk", Date: time.Now()})
	create(t, m, domain.CreateTarefaRequest{Title: "Pay rent", Date: time.Now()})

	t.Run("case-insensitive substring", func(t *testing.T) {
		resp, err := m.findByTitle(ctx, FindByTitleRequest{Title: "milk"}, nil)
		require.NoError(t, err)
		require.Len(t, resp.Tarefas, 1)
		assert.Equal(t, "Buy Milk", resp.Tarefas[0].Title)
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := m.findByTitle(ctx, FindByTitleRequest{Title: ""}, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("whitespace title", func(t *testing.T) {
		_, err := m.findByTitle(ctx, FindByTitleRequest{Title: "   \t"}, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := m.findByTitle(ctx, FindByTitleRequest{Title: "cook"}, nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
	t.Run("accented uppercase title", func(t *testing.T) {
		create(t, m, domain.CreateTarefaRequest{Title: "Estudar ÁLGEBRA", Date: time.Now()})

		resp, err := m.findByTitle(ctx, FindByTitleRequest{Title: "álgebra"}, nil)
		require.NoError(t, err)
		require.Len(t, resp.Tarefas, 1)
		assert.Equal(t, "Estudar ÁLGEBRA", resp.Tarefas[0].Title)
	})

	t.Run("no match for a term that reads like a validation error", func(t *testing.T) {
		_, err := m.findByTitle(ctx, FindByTitleRequest{Title: "Invalid Input"}, nil)
		require.ErrorIs(t, err, domain.ErrNotFound)

		// The message crosses the bus as text; it must still map to not found.
		mapped := mapServiceError(ServiceFindByTitle, errors.New(err.Error()))
		assert.ErrorIs(t, mapped, domain.ErrNotFound)
		assert.NotErrorIs(t, mapped, domain.ErrInvalidInput)
	})
}

func TestFindByDate(t *testing.T) {
	m := createTestModule(t)
	ctx := context.Background()

	create(t, m, domain.CreateTarefaRequest{
		Title: "late",
		Date:  time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC),
	})
	create(t, m, domain.CreateTarefaRequest{
		Title: "other day",
		Date:  time.Date(2024, 1, 3, 8, 0, 0, 0, time.UTC),
	})

	t.Run("ignores time of day", func(t *testing.T) {
		resp, err := m.findByDate(ctx, FindByDateRequest{
			Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}, nil)
		require.NoError(t, err)
		require.Len(t, resp.Tarefas, 1)
		assert.Equal(t, "late", resp.Tarefas[0].Title)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := m.findByDate(ctx, FindByDateRequest{
			Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		}, nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("zero date", func(t *testing.T) {
		_, err := m.findByDate(ctx, FindByDateRequest{}, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestFindByStatus(t *testing.T) {
	m := createTestModule(t)
	ctx := context.Background()

	create(t, m, domain.CreateTarefaRequest{Title: "a", Date: time.Now(), Status: domain.StatusPendente})

	t.Run("matches", func(t *testing.T) {
		resp, err := m.findByStatus(ctx, FindByStatusRequest{Status: domain.StatusPendente}, nil)
		require.NoError(t, err)
		assert.Len(t, resp.Tarefas, 1)
	})

	t.Run("no match is an empty list", func(t *testing.T) {
		resp, err := m.findByStatus(ctx, FindByStatusRequest{Status: domain.StatusFinalizado}, nil)
		require.NoError(t, err)
		assert.NotNil(t, resp.Tarefas)
		assert.Empty(t, resp.Tarefas)
		assert.Equal(t, 0, resp.Total)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := m.findByStatus(ctx, FindByStatusRequest{Status: "x"}, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestUpdateTarefa(t *testing.T) {
	m := createTestModule(t)
	ctx := context.Background()

	date := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	created := create(t, m, domain.CreateTarefaRequest{
		Title:       "Original",
		Description: "Descricao original",
		Date:        date,
		Status:      domain.StatusPendente,
	})

	t.Run("title only", func(t *testing.T) {
		updated, err := m.updateTarefa(ctx, UpdateTarefaRequest{
			ID:                  created.ID,
			UpdateTarefaRequest: domain.UpdateTarefaRequest{Title: domain.Some("Novo titulo")},
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, "Novo titulo", updated.Title)
		assert.Equal(t, "Descricao original", updated.Description)
		assert.True(t, updated.Date.Equal(date))
		assert.Equal(t, domain.StatusPendente, updated.Status)

		stored, err := m.getTarefa(ctx, GetTarefaRequest{ID: created.ID}, nil)
		require.NoError(t, err)
		assert.Equal(t, "Novo titulo", stored.Title)
		assert.Equal(t, "Descricao original", stored.Description)
	})

	t.Run("status", func(t *testing.T) {
		updated, err := m.updateTarefa(ctx, UpdateTarefaRequest{
			ID:                  created.ID,
			UpdateTarefaRequest: domain.UpdateTarefaRequest{Status: domain.Some(domain.StatusFinalizado)},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusFinalizado, updated.Status)
	})

	t.Run("empty status keeps stored status", func(t *testing.T) {
		updated, err := m.updateTarefa(ctx, UpdateTarefaRequest{
			ID: created.ID,
			UpdateTarefaRequest: domain.UpdateTarefaRequest{
				Description: domain.Some("nova"),
				Status:      domain.Some(domain.Status("")),
			},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusFinalizado, updated.Status)
		assert.Equal(t, "nova", updated.Description)

		stored, err := m.getTarefa(ctx, GetTarefaRequest{ID: created.ID}, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusFinalizado, stored.Status)
	})

	t.Run("zero date rejected", func(t *testing.T) {
		_, err := m.updateTarefa(ctx, UpdateTarefaRequest{
			ID:                  created.ID,
			UpdateTarefaRequest: domain.UpdateTarefaRequest{Date: domain.Some(time.Time{})},
		}, nil)
		require.ErrorIs(t, err, domain.ErrInvalidInput)

		stored, err := m.getTarefa(ctx, GetTarefaRequest{ID: created.ID}, nil)
		require.NoError(t, err)
		assert.True(t, stored.Date.Equal(date))
	})

	t.Run("non-existent tarefa", func(t *testing.T) {
		_, err := m.updateTarefa(ctx, UpdateTarefaRequest{
			ID:                  created.ID + 100,
			UpdateTarefaRequest: domain.UpdateTarefaRequest{Title: domain.Some("x")},
		}, nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		list, err := m.listTarefas(ctx, ListTarefasRequest{}, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, list.Total)
	})
}

func TestDeleteTarefa(t *testing.T) {
	m := createTestModule(t)
	ctx := context.Background()

	created := create(t, m, domain.CreateTarefaRequest{Title: "Apagar", Date: time.Now()})

	resp, err := m.deleteTarefa(ctx, DeleteTarefaRequest{ID: created.ID}, nil)
	require.NoError(t, err)
	assert.True(t, resp.Deleted)

	_, err = m.getTarefa(ctx, GetTarefaRequest{ID: created.ID}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	resp, err = m.deleteTarefa(ctx, DeleteTarefaRequest{ID: created.ID}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, resp.Deleted)
}

func TestChangedFields(t *testing.T) {
	req := domain.UpdateTarefaRequest{
		Title:  domain.Some("t"),
		Status: domain.Some(domain.StatusFinalizado),
	}
	assert.Equal(t, []string{"titulo", "status"}, changedFields(&req))
	assert.Empty(t, changedFields(&domain.UpdateTarefaRequest{}))
}

func TestModule_HealthWithoutDatabase(t *testing.T) {
	m := NewModule(DBConfig{}, &mockLogger{})

	status := m.Health(context.Background())
	assert.False(t, status.Healthy)
	assert.Equal(t, "database not initialized", status.Message)
}

func TestModule_HealthWithDatabase(t *testing.T) {
	m := createTestModule(t)

	status := m.Health(context.Background())
	assert.True(t, status.Healthy)
	assert.Equal(t, DriverSQLite, status.Details["driver"])
}

func TestOpenDatabase_UnsupportedDriver(t *testing.T) {
	_, err := openDatabase(DBConfig{Driver: "oracle"})
	assert.Error(t, err)

	_, err = openDatabase(DBConfig{Driver: DriverPostgres})
	assert.Error(t, err)
}

func TestNewModule_Defaults(t *testing.T) {
	m := NewModule(DBConfig{}, &mockLogger{})

	assert.Equal(t, "tarefa", m.Name())
	assert.Equal(t, DriverSQLite, m.cfg.Driver)
	assert.Equal(t, "tarefas.db", m.cfg.DSN)
	assert.Len(t, m.EmitEvents(), 3)
}
