package domain

import (
	"errors"
	"fmt"
)

// Erros da integração com o Meta
var (
	// Sessão do dono
	ErrUnauthorized = errors.New("unauthorized")

	// Credencial armazenada
	ErrCredentialNotFound = errors.New("meta connection not found")
	ErrCredentialExpired  = errors.New("meta access token expired")

	// Serviços externos
	ErrExternalAuthFailure           = errors.New("error exchanging authorization code")
	ErrMalformedTokenResponse        = errors.New("token response without access_token")
	ErrExternalIdentityLookupFailure = errors.New("error fetching meta user identity")
	ErrAccountListFailure            = errors.New("error fetching ad accounts from Meta")
	ErrInsightsFetchFailure          = errors.New("error fetching insights from Meta")

	// Validação
	ErrInvalidDateFormat        = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrMissingRequiredParameter = errors.New("missing required parameter")
	ErrInvalidLevel             = errors.New("invalid level, expected account or campaign")
	ErrInvalidDateRange         = errors.New("start_date must not be after end_date")

	// Autorização sobre a conta de anúncios
	ErrAdAccountNotAuthorized = errors.New("ad account not found or not authorized")

	// Banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
)

// IntegrationError é um erro com contexto adicional para a API
type IntegrationError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

func (e *IntegrationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *IntegrationError) Unwrap() error {
	return e.Err
}

func NewIntegrationError(err error, code string, details string) *IntegrationError {
	return &IntegrationError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
