package api

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Messages returned to clients.
const (
	msgTarefaNotFound   = "Tarefa não encontrada"
	msgTitleRequired    = "Titulo não pode ser vazio."
	msgTitleNoMatch     = "Nenhuma tarefa encontrada com o título especificado."
	msgDateNoMatch      = "Nenhuma tarefa encontrada na data especificada."
	msgDateRequired     = "A data da tarefa não pode ser vazia"
	msgDateInvalid      = "Data inválida. Use o formato AAAA-MM-DD ou RFC 3339."
	msgStatusInvalid    = "Status inválido. Use Pendente ou Finalizado."
	msgInvalidID        = "ID da tarefa inválido"
	msgInvalidBody      = "Corpo da requisição inválido"
	msgInternalError    = "Ocorreu um erro interno"
	msgInvalidInputData = "Dados da tarefa inválidos"
)
