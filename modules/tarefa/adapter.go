package tarefa

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	domain "github.com/example/tarefa-api/domain/tarefa"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// tarefaAdapter wraps ServiceContainer for type-safe cross-module communication.
// This is the adapter that implements the TarefaPort interface.
type tarefaAdapter struct {
	container mono.ServiceContainer
}

// NewTarefaAdapter creates a new adapter for tarefa services.
// container is the ServiceContainer from the tarefa module received via SetDependencyServiceContainer.
func NewTarefaAdapter(container mono.ServiceContainer) TarefaPort {
	if container == nil {
		panic("tarefa adapter requires non-nil ServiceContainer")
	}
	return &tarefaAdapter{container: container}
}

// GetTarefa retrieves a tarefa by ID via the get-tarefa service.
func (a *tarefaAdapter) GetTarefa(ctx context.Context, id uint) (*domain.Tarefa, error) {
	req := GetTarefaRequest{ID: id}
	var resp domain.Tarefa
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceGet,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(ServiceGet, err)
	}
	return &resp, nil
}

// ListTarefas lists every tarefa via the list-tarefas service.
func (a *tarefaAdapter) ListTarefas(ctx context.Context) ([]domain.Tarefa, error) {
	req := ListTarefasRequest{}
	var resp ListTarefasResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceList,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(ServiceList, err)
	}
	return resp.Tarefas, nil
}

// FindByTitle searches tarefas by title via the find-by-title service.
func (a *tarefaAdapter) FindByTitle(ctx context.Context, title string) ([]domain.Tarefa, error) {
	req := FindByTitleRequest{Title: title}
	var resp ListTarefasResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceFindByTitle,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(ServiceFindByTitle, err)
	}
	return resp.Tarefas, nil
}

// FindByDate lists the tarefas of a calendar day via the find-by-date service.
func (a *tarefaAdapter) FindByDate(ctx context.Context, date time.Time) ([]domain.Tarefa, error) {
	req := FindByDateRequest{Date: date}
	var resp ListTarefasResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceFindByDate,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(ServiceFindByDate, err)
	}
	return resp.Tarefas, nil
}

// FindByStatus lists tarefas with a status via the find-by-status service.
func (a *tarefaAdapter) FindByStatus(ctx context.Context, status domain.Status) ([]domain.Tarefa, error) {
	req := FindByStatusRequest{Status: status}
	var resp ListTarefasResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceFindByStatus,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(ServiceFindByStatus, err)
	}
	return resp.Tarefas, nil
}

// CreateTarefa creates a tarefa via the create-tarefa service.
func (a *tarefaAdapter) CreateTarefa(ctx context.Context, req *domain.CreateTarefaRequest) (*domain.Tarefa, error) {
	var resp domain.Tarefa
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceCreate,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, mapServiceError(ServiceCreate, err)
	}
	return &resp, nil
}

// UpdateTarefa applies a partial update via the update-tarefa service.
func (a *tarefaAdapter) UpdateTarefa(ctx context.Context, id uint, req *domain.UpdateTarefaRequest) (*domain.Tarefa, error) {
	full := UpdateTarefaRequest{ID: id, UpdateTarefaRequest: *req}
	var resp domain.Tarefa
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceUpdate,
		json.Marshal,
		json.Unmarshal,
		&full,
		&resp,
	); err != nil {
		return nil, mapServiceError(ServiceUpdate, err)
	}
	return &resp, nil
}

// DeleteTarefa deletes a tarefa via the delete-tarefa service.
func (a *tarefaAdapter) DeleteTarefa(ctx context.Context, id uint) error {
	req := DeleteTarefaRequest{ID: id}
	var resp DeleteTarefaResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceDelete,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return mapServiceError(ServiceDelete, err)
	}
	if !resp.Deleted {
		return fmt.Errorf("tarefa %d not deleted", id)
	}
	return nil
}

// mapServiceError converts service errors back to sentinel errors
// by checking the error message content. Errors lose their type
// information when sent over NATS.
func mapServiceError(service string, err error) error {
	if err == nil {
		return nil
	}

	// Details that follow a sentinel may echo client input, so the sentinel
	// that appears first in the message wins.
	errMsg := strings.ToLower(err.Error())
	var sentinel error
	first := -1
	for _, candidate := range []error{domain.ErrNotFound, domain.ErrInvalidInput} {
		i := strings.Index(errMsg, candidate.Error())
		if i >= 0 && (first < 0 || i < first) {
			sentinel, first = candidate, i
		}
	}
	if sentinel != nil {
		return fmt.Errorf("%w (%s)", sentinel, err.Error())
	}

	return fmt.Errorf("%s service call failed: %w", service, err)
}
