package handler

import (
	"net/http"

	"github.com/vfg2006/ads-insights-api/internal/domain"
	"github.com/vfg2006/ads-insights-api/internal/usecases/connecting"
	"github.com/vfg2006/ads-insights-api/pkg/apiErrors"
	"github.com/vfg2006/ads-insights-api/pkg/log"
	"github.com/vfg2006/ads-insights-api/pkg/middleware"
)

// MetaOAuthCallback recebe o código de autorização do frontend e conecta a conta do Meta ao dono da sessão
func MetaOAuthCallback(service connecting.Connector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var request domain.OAuthCallbackRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.WithError(err).Warn("insights: invalid oauth callback body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		metaUser, err := service.ConnectMeta(r.Context(), middleware.OwnerID(r.Context()), request.Code, request.State)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao conectar conta do Meta")
			return
		}

		writeJSON(w, r, http.StatusOK, domain.OAuthCallbackResponse{
			Success:  true,
			Message:  "Conta do Meta conectada com sucesso",
			MetaUser: *metaUser,
		})
	})
}

func MetaOAuthURL(service connecting.Connector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := r.URL.Query().Get("state")

		writeJSON(w, r, http.StatusOK, domain.OAuthURLResponse{
			URL: service.AuthorizationURL(state),
		})
	})
}
