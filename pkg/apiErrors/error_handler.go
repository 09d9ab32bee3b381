package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro padronizados
const (
	// Erros de recurso (1000-1999)
	ErrProductNotFound  = "RES_001" // Produto não encontrado
	ErrResourceNotFound = "RES_002" // Rota inexistente
	ErrMethodNotAllowed = "RES_003" // Método não suportado pela rota

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros de requisição (3000-3999)
	ErrSubmissionInProgress = "REQ_001" // Outra gravação ainda em andamento
	ErrTooManyRequests      = "REQ_002" // Limite de requisições excedido

	// Erros do servidor (5000-5999)
	ErrInternalServer  = "SRV_001" // Erro interno do servidor
	ErrStorage         = "SRV_002" // Erro ao gravar o armazenamento local
	ErrExternalService = "SRV_003" // Erro em serviço externo
	ErrCommunication   = "SRV_004" // Erro de comunicação
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrProductNotFound:      http.StatusNotFound,
	ErrResourceNotFound:     http.StatusNotFound,
	ErrMethodNotAllowed:     http.StatusMethodNotAllowed,
	ErrInvalidRequest:       http.StatusBadRequest,
	ErrMissingRequiredData:  http.StatusBadRequest,
	ErrInvalidFormat:        http.StatusBadRequest,
	ErrSubmissionInProgress: http.StatusConflict,
	ErrTooManyRequests:      http.StatusTooManyRequests,
	ErrInternalServer:       http.StatusInternalServerError,
	ErrStorage:              http.StatusInternalServerError,
	ErrExternalService:      http.StatusBadGateway,
	ErrCommunication:        http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP de um código de erro
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	_ = json.NewEncoder(w).Encode(apiErr)
}
