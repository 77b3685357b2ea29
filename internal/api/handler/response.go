package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/ads-insights-api/internal/domain"
	"github.com/vfg2006/ads-insights-api/pkg/apiErrors"
	"github.com/vfg2006/ads-insights-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("insights: failed to encode response")
	}
}

// writeServiceError converte o erro do caso de uso na resposta padronizada.
// Erros sem código conhecido viram erro interno com a mensagem informada.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	var integrationErr *domain.IntegrationError
	if errors.As(err, &integrationErr) {
		message := integrationErr.Details
		if message == "" {
			message = integrationErr.Err.Error()
		}
		apiErrors.WriteError(w, integrationErr.Code, message, nil)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("insights: unexpected service error")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallbackMessage, nil)
}
