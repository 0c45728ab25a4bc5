package tarefa

import (
	"context"
	"fmt"
	"strings"
	"time"

	domain "github.com/example/tarefa-api/domain/tarefa"
	"github.com/example/tarefa-api/events"
	"github.com/go-monolith/mono"
)

// getTarefa handles the get-tarefa service request.
func (m *Module) getTarefa(ctx context.Context, req GetTarefaRequest, _ *mono.Msg) (domain.Tarefa, error) {
	t, err := m.repo.GetByID(ctx, req.ID)
	if err != nil {
		return domain.Tarefa{}, err
	}
	return *t, nil
}

// listTarefas handles the list-tarefas service request.
func (m *Module) listTarefas(ctx context.Context, _ ListTarefasRequest, _ *mono.Msg) (ListTarefasResponse, error) {
	tarefas, err := m.repo.List(ctx)
	if err != nil {
		return ListTarefasResponse{}, err
	}
	return toListResponse(tarefas), nil
}

// findByTitle handles the find-by-title service request.
// A search that matches nothing is reported as not found.
func (m *Module) findByTitle(ctx context.Context, req FindByTitleRequest, _ *mono.Msg) (ListTarefasResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return ListTarefasResponse{}, fmt.Errorf("%w: titulo must not be blank", domain.ErrInvalidInput)
	}

	tarefas, err := m.repo.FindByTitle(ctx, req.Title)
	if err != nil {
		return ListTarefasResponse{}, err
	}
	if len(tarefas) == 0 {
		return ListTarefasResponse{}, fmt.Errorf("%w: no match for titulo", domain.ErrNotFound)
	}
	return toListResponse(tarefas), nil
}

// findByDate handles the find-by-date service request.
func (m *Module) findByDate(ctx context.Context, req FindByDateRequest, _ *mono.Msg) (ListTarefasResponse, error) {
	if req.Date.IsZero() {
		return ListTarefasResponse{}, fmt.Errorf("%w: data is required", domain.ErrInvalidInput)
	}

	from, to := domain.DayBounds(req.Date)
	tarefas, err := m.repo.FindByDateRange(ctx, from, to)
	if err != nil {
		return ListTarefasResponse{}, err
	}
	if len(tarefas) == 0 {
		return ListTarefasResponse{}, fmt.Errorf("%w: no match for data %s", domain.ErrNotFound, from.Format(time.DateOnly))
	}
	return toListResponse(tarefas), nil
}

// findByStatus handles the find-by-status service request. An empty result
// is not an error.
func (m *Module) findByStatus(ctx context.Context, req FindByStatusRequest, _ *mono.Msg) (ListTarefasResponse, error) {
	if !req.Status.Valid() {
		return ListTarefasResponse{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, req.Status)
	}

	tarefas, err := m.repo.FindByStatus(ctx, req.Status)
	if err != nil {
		return ListTarefasResponse{}, err
	}
	return toListResponse(tarefas), nil
}

// createTarefa handles the create-tarefa service request.
func (m *Module) createTarefa(ctx context.Context, req domain.CreateTarefaRequest, _ *mono.Msg) (domain.Tarefa, error) {
	if req.Date.IsZero() {
		return domain.Tarefa{}, fmt.Errorf("%w: data must not be empty", domain.ErrInvalidInput)
	}

	status := req.Status
	if status == "" {
		status = domain.StatusPendente
	}
	if !status.Valid() {
		return domain.Tarefa{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}

	t := &domain.Tarefa{
		Title:       req.Title,
		Description: req.Description,
		Date:        domain.NormalizeDate(req.Date),
		Status:      status,
	}
	if err := m.repo.Create(ctx, t); err != nil {
		return domain.Tarefa{}, fmt.Errorf("failed to save tarefa: %w", err)
	}

	m.publishCreated(t)
	return *t, nil
}

// updateTarefa handles the update-tarefa service request.
func (m *Module) updateTarefa(ctx context.Context, req UpdateTarefaRequest, _ *mono.Msg) (domain.Tarefa, error) {
	t, err := m.repo.GetByID(ctx, req.ID)
	if err != nil {
		return domain.Tarefa{}, err
	}

	if d, ok := req.Date.Get(); ok && d.IsZero() {
		return domain.Tarefa{}, fmt.Errorf("%w: data must not be empty", domain.ErrInvalidInput)
	}
	// An empty status keeps the stored one, like null does.
	if s, ok := req.Status.Get(); ok && s == "" {
		req.Status = domain.Optional[domain.Status]{}
	}
	if s, ok := req.Status.Get(); ok && !s.Valid() {
		return domain.Tarefa{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, s)
	}

	req.ApplyTo(t)

	if err := m.repo.Save(ctx, t); err != nil {
		return domain.Tarefa{}, fmt.Errorf("failed to update tarefa: %w", err)
	}

	m.publishUpdated(t, changedFields(&req.UpdateTarefaRequest))
	return *t, nil
}

// deleteTarefa handles the delete-tarefa service request.
func (m *Module) deleteTarefa(ctx context.Context, req DeleteTarefaRequest, _ *mono.Msg) (DeleteTarefaResponse, error) {
	t, err := m.repo.GetByID(ctx, req.ID)
	if err != nil {
		return DeleteTarefaResponse{Deleted: false, ID: req.ID}, err
	}

	if err := m.repo.Delete(ctx, req.ID); err != nil {
		return DeleteTarefaResponse{Deleted: false, ID: req.ID}, err
	}

	m.publishDeleted(t)
	return DeleteTarefaResponse{Deleted: true, ID: req.ID}, nil
}

// Event publishing is best-effort: failures are logged, never returned.

func (m *Module) publishCreated(t *domain.Tarefa) {
	if m.eventBus == nil {
		return
	}
	event := events.TarefaCreatedEvent{
		TarefaID:  t.ID,
		Title:     t.Title,
		Date:      t.Date,
		Status:    string(t.Status),
		CreatedAt: time.Now(),
	}
	if err := events.TarefaCreatedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish TarefaCreated event", "tarefa_id", t.ID, "error", err)
	}
}

func (m *Module) publishUpdated(t *domain.Tarefa, fields []string) {
	if m.eventBus == nil {
		return
	}
	event := events.TarefaUpdatedEvent{
		TarefaID:      t.ID,
		ChangedFields: fields,
		Status:        string(t.Status),
		UpdatedAt:     time.Now(),
	}
	if err := events.TarefaUpdatedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish TarefaUpdated event", "tarefa_id", t.ID, "error", err)
	}
}

func (m *Module) publishDeleted(t *domain.Tarefa) {
	if m.eventBus == nil {
		return
	}
	event := events.TarefaDeletedEvent{
		TarefaID:  t.ID,
		Title:     t.Title,
		DeletedAt: time.Now(),
	}
	if err := events.TarefaDeletedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish TarefaDeleted event", "tarefa_id", t.ID, "error", err)
	}
}

// changedFields lists the wire names of the fields present in req.
func changedFields(req *domain.UpdateTarefaRequest) []string {
	fields := make([]string, 0, 4)
	if req.Title.Set {
		fields = append(fields, "titulo")
	}
	if req.Description.Set {
		fields = append(fields, "descricao")
	}
	if req.Date.Set {
		fields = append(fields, "data")
	}
	if req.Status.Set {
		fields = append(fields, "status")
	}
	return fields
}

// toListResponse wraps tarefas, never returning a nil slice.
func toListResponse(tarefas []domain.Tarefa) ListTarefasResponse {
	if tarefas == nil {
		tarefas = []domain.Tarefa{}
	}
	return ListTarefasResponse{
		Tarefas: tarefas,
		Total:   len(tarefas),
	}
}
