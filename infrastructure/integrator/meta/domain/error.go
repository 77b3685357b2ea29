package metadomain

import (
	"encoding/json"
	"strings"
)

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string      `json:"message"`
	Type         string      `json:"type"`
	Code         int         `json:"code"`
	ErrorSubcode int         `json:"error_subcode,omitempty"`
	FBTraceID    string      `json:"fbtrace_id"`
	ErrorData    interface{} `json:"error_data,omitempty"`
}

// IsTokenExpired verifica se o erro é de token expirado
func (e *ErrorResponse) IsTokenExpired() bool {
	if e == nil {
		return false
	}

	// O código 190 representa "token expirado" nas respostas da API do Meta
	// Possíveis subcódigos relacionados a problemas de token: 460, 463, 467
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

// ParseErrorResponse interpreta o corpo de erro do Graph API; nil quando não é JSON de erro
func ParseErrorResponse(body []byte) *ErrorResponse {
	var resp ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil
	}

	if resp.Error.Code == 0 && strings.TrimSpace(resp.Error.Message) == "" {
		return nil
	}

	return &resp
}
