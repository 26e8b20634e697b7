// Package apierror define o envelope padrão de erro das respostas HTTP.
// Toda resposta 4xx/5xx passa por aqui para manter o formato consistente e
// nunca vazar detalhes internos (stack traces, erros do banco, etc.).
package apierror

// APIError é o envelope canônico de erro.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError agrega erros de campo da validação de entrada.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Erro de validação", Fields: fields}
}
