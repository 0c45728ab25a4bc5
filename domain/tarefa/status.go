package tarefa

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status represents the progress of a tarefa.
type Status string

const (
	StatusPendente   Status = "Pendente"
	StatusFinalizado Status = "Finalizado"
)

// statusCodes maps the numeric codes older clients send to their names.
var statusCodes = map[string]Status{
	"0": StatusPendente,
	"1": StatusFinalizado,
}

// ParseStatus accepts a status name (case-insensitive) or its numeric code.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	if st, ok := statusCodes[s]; ok {
		return st, nil
	}
	for _, st := range []Status{StatusPendente, StatusFinalizado} {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusPendente || s == StatusFinalizado
}

// UnmarshalJSON accepts either a status name or a numeric code. An empty
// string decodes to the empty Status.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var text string
	switch v := raw.(type) {
	case nil:
		*s = ""
		return nil
	case string:
		text = v
	case float64:
		text = fmt.Sprintf("%g", v)
	default:
		return fmt.Errorf("%w: status must be a string or number", ErrInvalidInput)
	}

	if strings.TrimSpace(text) == "" {
		*s = ""
		return nil
	}
	st, err := ParseStatus(text)
	if err != nil {
		return err
	}
	*s = st
	return nil
}
