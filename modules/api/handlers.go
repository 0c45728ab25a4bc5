package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	domain "github.com/example/tarefa-api/domain/tarefa"
	"github.com/gofiber/fiber/v2"
)

// dateLayouts are the accepted formats of the data query parameter.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateTime,
	"2006-01-02 15:04",
	time.DateOnly,
}

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes(app *fiber.App) {
	// Health check endpoint
	app.Get("/health", m.healthHandler)

	// Static search routes are registered before /:id so they win the match.
	tarefas := app.Group("/Tarefa")
	tarefas.Get("/ObterTodos", m.listTarefas)
	tarefas.Get("/ObterPorTitulo", m.findByTitle)
	tarefas.Get("/ObterPorData", m.findByDate)
	tarefas.Get("/ObterPorStatus", m.findByStatus)
	tarefas.Get("/:id", m.getTarefa)
	tarefas.Post("/", m.createTarefa)
	tarefas.Put("/:id", m.updateTarefa)
	tarefas.Delete("/:id", m.deleteTarefa)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"port":   m.port,
		},
	})
}

// getTarefa handles GET /Tarefa/:id.
func (m *APIModule) getTarefa(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, msgInvalidID)
	}

	t, err := m.tarefaPort.GetTarefa(c.UserContext(), id)
	if err != nil {
		return m.handleTarefaError(c, err, msgTarefaNotFound)
	}
	return c.JSON(t)
}

// listTarefas handles GET /Tarefa/ObterTodos.
func (m *APIModule) listTarefas(c *fiber.Ctx) error {
	tarefas, err := m.tarefaPort.ListTarefas(c.UserContext())
	if err != nil {
		return m.handleTarefaError(c, err, msgTarefaNotFound)
	}
	return c.JSON(nonNil(tarefas))
}

// findByTitle handles GET /Tarefa/ObterPorTitulo?titulo=.
func (m *APIModule) findByTitle(c *fiber.Ctx) error {
	title := c.Query("titulo")
	if strings.TrimSpace(title) == "" {
		return badRequest(c, msgTitleRequired)
	}

	tarefas, err := m.tarefaPort.FindByTitle(c.UserContext(), title)
	if err != nil {
		return m.handleTarefaError(c, err, msgTitleNoMatch)
	}
	return c.JSON(nonNil(tarefas))
}

// findByDate handles GET /Tarefa/ObterPorData?data=.
func (m *APIModule) findByDate(c *fiber.Ctx) error {
	date, err := parseDate(c.Query("data"))
	if err != nil {
		return badRequest(c, msgDateInvalid)
	}

	tarefas, err := m.tarefaPort.FindByDate(c.UserContext(), date)
	if err != nil {
		return m.handleTarefaError(c, err, msgDateNoMatch)
	}
	return c.JSON(nonNil(tarefas))
}

// findByStatus handles GET /Tarefa/ObterPorStatus?status=. No match is an
// empty list, not a 404.
func (m *APIModule) findByStatus(c *fiber.Ctx) error {
	status, err := domain.ParseStatus(c.Query("status"))
	if err != nil {
		return badRequest(c, msgStatusInvalid)
	}

	tarefas, err := m.tarefaPort.FindByStatus(c.UserContext(), status)
	if err != nil {
		return m.handleTarefaError(c, err, msgTarefaNotFound)
	}
	return c.JSON(nonNil(tarefas))
}

// createTarefa handles POST /Tarefa.
func (m *APIModule) createTarefa(c *fiber.Ctx) error {
	var req domain.CreateTarefaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, bodyErrorMessage(err))
	}

	if req.Date.IsZero() {
		return badRequest(c, msgDateRequired)
	}

	t, err := m.tarefaPort.CreateTarefa(c.UserContext(), &req)
	if err != nil {
		return m.handleTarefaError(c, err, msgTarefaNotFound)
	}

	c.Location(fmt.Sprintf("/Tarefa/%d", t.ID))
	return c.Status(fiber.StatusCreated).JSON(t)
}

// updateTarefa handles PUT /Tarefa/:id.
func (m *APIModule) updateTarefa(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, msgInvalidID)
	}

	var req domain.UpdateTarefaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, bodyErrorMessage(err))
	}

	t, err := m.tarefaPort.UpdateTarefa(c.UserContext(), id, &req)
	if err != nil {
		return m.handleTarefaError(c, err, msgTarefaNotFound)
	}
	return c.JSON(t)
}

// deleteTarefa handles DELETE /Tarefa/:id.
func (m *APIModule) deleteTarefa(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, msgInvalidID)
	}

	if err := m.tarefaPort.DeleteTarefa(c.UserContext(), id); err != nil {
		return m.handleTarefaError(c, err, msgTarefaNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// handleTarefaError converts tarefa errors into HTTP responses without
// exposing internals.
func (m *APIModule) handleTarefaError(c *fiber.Ctx, err error, notFoundMessage string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: notFoundMessage,
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return badRequest(c, msgInvalidInputData)
	default:
		m.logger.Error("Tarefa request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: msgInternalError,
		})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "validation_error",
		Message: message,
	})
}

// bodyErrorMessage picks the client message for a body that failed to decode.
// An unknown status is rejected while decoding.
func bodyErrorMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidInput) {
		return msgStatusInvalid
	}
	return msgInvalidBody
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseDate parses the data query parameter in any of dateLayouts.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("data is required")
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, value); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

func nonNil(tarefas []domain.Tarefa) []domain.Tarefa {
	if tarefas == nil {
		return []domain.Tarefa{}
	}
	return tarefas
}
