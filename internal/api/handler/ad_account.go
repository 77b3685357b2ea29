package handler

import (
	"net/http"

	"github.com/vfg2006/ads-insights-api/internal/domain"
	"github.com/vfg2006/ads-insights-api/internal/usecases/account"
	"github.com/vfg2006/ads-insights-api/pkg/log"
	"github.com/vfg2006/ads-insights-api/pkg/middleware"
)

// SyncAdAccounts busca as contas ativas no Meta e substitui o cache do dono
func SyncAdAccounts(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID := middleware.OwnerID(r.Context())

		accounts, err := service.SyncAdAccounts(r.Context(), ownerID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao sincronizar contas de anúncios")
			return
		}

		log.ForContext(r.Context()).WithField("total", len(accounts)).Debug("insights: ad accounts synced")

		writeJSON(w, r, http.StatusOK, domain.AdAccountListResponse{
			Success: true,
			Data:    accounts,
			Total:   len(accounts),
		})
	})
}

// ListCachedAdAccounts lista as contas do cache sem consultar o Meta
func ListCachedAdAccounts(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accounts, err := service.ListCachedAdAccounts(r.Context(), middleware.OwnerID(r.Context()))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar contas de anúncios")
			return
		}

		writeJSON(w, r, http.StatusOK, domain.AdAccountListResponse{
			Success: true,
			Data:    accounts,
			Total:   len(accounts),
		})
	})
}
