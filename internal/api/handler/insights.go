package handler

import (
	"net/http"

	"github.com/vfg2006/ads-insights-api/internal/domain"
	"github.com/vfg2006/ads-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-insights-api/pkg/apiErrors"
	"github.com/vfg2006/ads-insights-api/pkg/log"
	"github.com/vfg2006/ads-insights-api/pkg/middleware"
)

func GetDashboardInsights(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var request domain.InsightsRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.WithError(err).Warn("insights: invalid insights request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		insights, err := service.GetDashboardInsights(r.Context(), middleware.OwnerID(r.Context()), &request)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar insights")
			return
		}

		logger.WithFields(log.Fields{
			"ad_account_id": request.AdAccountID,
			"records":       insights.TotalRecords,
		}).Debug("insights: dashboard insights served")

		writeJSON(w, r, http.StatusOK, domain.DashboardInsightsResponse{
			Success: true,
			Data:    insights,
		})
	})
}
