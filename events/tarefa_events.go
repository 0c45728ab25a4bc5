package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// TarefaCreatedEvent is emitted when a new tarefa is persisted.
type TarefaCreatedEvent struct {
	TarefaID  uint      `json:"tarefa_id"`
	Title     string    `json:"titulo"`
	Date      time.Time `json:"data"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// TarefaCreatedV1 is the typed event definition for tarefa creation.
// Subject: events.tarefa.v1.tarefa-created
var TarefaCreatedV1 = helper.EventDefinition[TarefaCreatedEvent](
	"tarefa", "TarefaCreated", "v1",
)

// TarefaUpdatedEvent is emitted after a partial update is saved.
type TarefaUpdatedEvent struct {
	TarefaID      uint      `json:"tarefa_id"`
	ChangedFields []string  `json:"changed_fields"`
	Status        string    `json:"status"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TarefaUpdatedV1 is the typed event definition for tarefa updates.
// Subject: events.tarefa.v1.tarefa-updated
var TarefaUpdatedV1 = helper.EventDefinition[TarefaUpdatedEvent](
	"tarefa", "TarefaUpdated", "v1",
)

// TarefaDeletedEvent is emitted when a tarefa is removed.
type TarefaDeletedEvent struct {
	TarefaID  uint      `json:"tarefa_id"`
	Title     string    `json:"titulo"`
	DeletedAt time.Time `json:"deleted_at"`
}

// TarefaDeletedV1 is the typed event definition for tarefa deletion.
// Subject: events.tarefa.v1.tarefa-deleted
var TarefaDeletedV1 = helper.EventDefinition[TarefaDeletedEvent](
	"tarefa", "TarefaDeleted", "v1",
)
