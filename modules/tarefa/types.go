package tarefa

import (
	"context"
	"time"

	domain "github.com/example/tarefa-api/domain/tarefa"
)

// Request-reply service names registered by the tarefa module.
const (
	ServiceGet          = "get-tarefa"
	ServiceList         = "list-tarefas"
	ServiceFindByTitle  = "find-by-title"
	ServiceFindByDate   = "find-by-date"
	ServiceFindByStatus = "find-by-status"
	ServiceCreate       = "create-tarefa"
	ServiceUpdate       = "update-tarefa"
	ServiceDelete       = "delete-tarefa"
)

// GetTarefaRequest is the request for getting a tarefa.
type GetTarefaRequest struct {
	ID uint `json:"id"`
}

// ListTarefasRequest is the request for listing every tarefa.
type ListTarefasRequest struct{}

// FindByTitleRequest is the request for a case-insensitive title search.
type FindByTitleRequest struct {
	Title string `json:"titulo"`
}

// FindByDateRequest is the request for tarefas on a calendar day.
type FindByDateRequest struct {
	Date time.Time `json:"data"`
}

// FindByStatusRequest is the request for tarefas with a status.
type FindByStatusRequest struct {
	Status domain.Status `json:"status"`
}

// UpdateTarefaRequest is the request for a partial update of a tarefa.
type UpdateTarefaRequest struct {
	ID uint `json:"id"`
	domain.UpdateTarefaRequest
}

// DeleteTarefaRequest is the request for deleting a tarefa.
type DeleteTarefaRequest struct {
	ID uint `json:"id"`
}

// DeleteTarefaResponse is the response after deleting a tarefa.
type DeleteTarefaResponse struct {
	Deleted bool `json:"deleted"`
	ID      uint `json:"id"`
}

// ListTarefasResponse carries the result of any list or search service.
type ListTarefasResponse struct {
	Tarefas []domain.Tarefa `json:"tarefas"`
	Total   int             `json:"total"`
}

// TarefaPort defines the interface for tarefa operations (hexagonal port).
// Driving adapters such as the HTTP API use it to reach the tarefa module.
type TarefaPort interface {
	GetTarefa(ctx context.Context, id uint) (*domain.Tarefa, error)
	ListTarefas(ctx context.Context) ([]domain.Tarefa, error)
	FindByTitle(ctx context.Context, title string) ([]domain.Tarefa, error)
	FindByDate(ctx context.Context, date time.Time) ([]domain.Tarefa, error)
	FindByStatus(ctx context.Context, status domain.Status) ([]domain.Tarefa, error)
	CreateTarefa(ctx context.Context, req *domain.CreateTarefaRequest) (*domain.Tarefa, error)
	UpdateTarefa(ctx context.Context, id uint, req *domain.UpdateTarefaRequest) (*domain.Tarefa, error)
	DeleteTarefa(ctx context.Context, id uint) error
}
