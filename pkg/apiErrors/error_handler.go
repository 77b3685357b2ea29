package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de autenticação (1000-1999)
	ErrInvalidToken          = "AUTH_001" // Sessão ausente ou inválida
	ErrCredentialNotFound    = "AUTH_002" // Conexão com o Meta não encontrada
	ErrCredentialExpired     = "AUTH_003" // Token do Meta expirado
	ErrAccountForbidden      = "AUTH_004" // Conta de anúncios não autorizada
	ErrInsufficientPrivilege = "AUTH_005" // Perfil sem permissão

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros de integração com o Meta (3000-3999)
	ErrMetaAuthFailure     = "META_001" // Falha ao trocar o código de autorização
	ErrMetaMalformedToken  = "META_002" // Resposta de token sem access_token
	ErrMetaIdentityFailure = "META_003" // Falha ao obter a identidade no Meta
	ErrMetaAccountsFailure = "META_004" // Falha ao listar contas de anúncios
	ErrMetaInsightsFailure = "META_005" // Falha ao buscar insights

	// Erros de roteamento
	ErrRouteNotFound    = "API_001" // Rota inexistente
	ErrMethodNotAllowed = "API_002" // Método não suportado na rota

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrCredentialNotFound:    http.StatusNotFound,
	ErrCredentialExpired:     http.StatusUnauthorized,
	ErrAccountForbidden:      http.StatusForbidden,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrMetaAuthFailure:       http.StatusBadRequest,
	ErrMetaMalformedToken:    http.StatusBadRequest,
	ErrMetaIdentityFailure:   http.StatusBadRequest,
	ErrMetaAccountsFailure:   http.StatusBadRequest,
	ErrMetaInsightsFailure:   http.StatusBadRequest,
	ErrRouteNotFound:         http.StatusNotFound,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Error   string `json:"error"`             // Mensagem para o cliente
	Code    string `json:"code"`              // Código de erro para o cliente
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
		Error:   message,
		Code:    code,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	_ = json.NewEncoder(w).Encode(apiErr)
}
