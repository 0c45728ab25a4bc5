package tarefa

import "errors"

// Sentinel errors for tarefa operations.
var (
	// ErrNotFound is returned when the requested tarefa does not exist, or
	// when a search matched nothing.
	ErrNotFound = errors.New("tarefa not found")

	// ErrInvalidInput is returned for blank title filters, zero dates and
	// unknown statuses.
	ErrInvalidInput = errors.New("invalid input")
)
