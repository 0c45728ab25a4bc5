package notification

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/example/tarefa-api/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/google/uuid"
)

// DefaultHistorySize is used when a non-positive history size is given.
const DefaultHistorySize = 100

// Notification types recorded in the activity log.
const (
	TypeTarefaCreated = "tarefa_created"
	TypeTarefaUpdated = "tarefa_updated"
	TypeTarefaDeleted = "tarefa_deleted"
)

// NotificationLog represents a logged notification.
type NotificationLog struct {
	ID        string    `json:"id"`
	TarefaID  uint      `json:"tarefa_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Channel   string    `json:"channel"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationModule is a driven adapter that records tarefa activity.
// Only the most recent historySize entries are kept.
type NotificationModule struct {
	notifications []NotificationLog
	historySize   int
	mu            sync.RWMutex
	logger        types.Logger
}

var _ mono.Module = (*NotificationModule)(nil)
var _ mono.EventConsumerModule = (*NotificationModule)(nil)
var _ mono.HealthCheckableModule = (*NotificationModule)(nil)

func NewModule(historySize int, logger types.Logger) *NotificationModule {
	if historySize <= 0 {
		historySize = DefaultHistorySize
	}
	return &NotificationModule{
		notifications: make([]NotificationLog, 0, historySize),
		historySize:   historySize,
		logger:        logger,
	}
}

func (m *NotificationModule) Name() string {
	return "notification"
}

func (m *NotificationModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TarefaCreatedV1, m.handleTarefaCreated, m); err != nil {
		return fmt.Errorf("failed to register TarefaCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TarefaUpdatedV1, m.handleTarefaUpdated, m); err != nil {
		return fmt.Errorf("failed to register TarefaUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TarefaDeletedV1, m.handleTarefaDeleted, m); err != nil {
		return fmt.Errorf("failed to register TarefaDeleted consumer: %w", err)
	}

	m.logger.Info("Registered event consumers", "events", "TarefaCreated, TarefaUpdated, TarefaDeleted")
	return nil
}

func (m *NotificationModule) handleTarefaCreated(_ context.Context, event events.TarefaCreatedEvent, _ *mono.Msg) error {
	m.logger.Info("Tarefa created", "tarefa_id", event.TarefaID, "titulo", event.Title, "status", event.Status)
	m.logNotification(event.TarefaID, TypeTarefaCreated,
		fmt.Sprintf("Nova tarefa '%s' agendada para %s", event.Title, event.Date.Format(time.DateOnly)))
	return nil
}

func (m *NotificationModule) handleTarefaUpdated(_ context.Context, event events.TarefaUpdatedEvent, _ *mono.Msg) error {
	m.logger.Info("Tarefa updated", "tarefa_id", event.TarefaID, "changed", event.ChangedFields, "status", event.Status)

	changed := "nenhum campo"
	if len(event.ChangedFields) > 0 {
		changed = strings.Join(event.ChangedFields, ", ")
	}
	m.logNotification(event.TarefaID, TypeTarefaUpdated,
		fmt.Sprintf("Tarefa %d atualizada (%s), status %s", event.TarefaID, changed, event.Status))
	return nil
}

func (m *NotificationModule) handleTarefaDeleted(_ context.Context, event events.TarefaDeletedEvent, _ *mono.Msg) error {
	m.logger.Info("Tarefa deleted", "tarefa_id", event.TarefaID, "titulo", event.Title)
	m.logNotification(event.TarefaID, TypeTarefaDeleted,
		fmt.Sprintf("Tarefa %d '%s' removida", event.TarefaID, event.Title))
	return nil
}

func (m *NotificationModule) logNotification(tarefaID uint, notificationType, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notifications = append(m.notifications, NotificationLog{
		ID:        uuid.NewString(),
		TarefaID:  tarefaID,
		Type:      notificationType,
		Message:   message,
		Channel:   "event",
		Timestamp: time.Now().UTC(),
	})

	// Drop the oldest entries once the history is full.
	if over := len(m.notifications) - m.historySize; over > 0 {
		m.notifications = append(m.notifications[:0], m.notifications[over:]...)
	}
}

// GetNotifications returns a copy of the recorded notifications, oldest first.
func (m *NotificationModule) GetNotifications() []NotificationLog {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]NotificationLog, len(m.notifications))
	copy(result, m.notifications)
	return result
}

func (m *NotificationModule) Start(_ context.Context) error {
	m.logger.Info("Module started, listening for tarefa events", "history_size", m.historySize)
	return nil
}

func (m *NotificationModule) Stop(_ context.Context) error {
	m.logger.Info("Module stopped", "recorded", len(m.GetNotifications()))
	return nil
}

// Health reports the size of the activity log.
func (m *NotificationModule) Health(_ context.Context) mono.HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"notifications": len(m.notifications),
			"history_size":  m.historySize,
		},
	}
}
