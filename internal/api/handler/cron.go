package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/ads-insights-api/pkg/apiErrors"
)

const CronJobTypeAccountCache = "account-cache"

// CacheSyncer é o agendador do cache de contas
type CacheSyncer interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices contém os agendadores que podem ser disparados manualmente
type CronJobServices struct {
	AccountCacheSync CacheSyncer
}

// RunCronJob dispara manualmente um agendador
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		switch cronType {
		case CronJobTypeAccountCache:
			if services.AccountCacheSync == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização do cache de contas não disponível", nil)
				return
			}

			if !services.AccountCacheSync.TriggerManualSync() {
				writeJSON(w, r, http.StatusConflict, map[string]any{
					"message": "Sincronização já em andamento",
					"type":    cronType,
				})
				return
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: account-cache", nil)
			return
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	})
}

func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.AccountCacheSync != nil {
			status[CronJobTypeAccountCache] = services.AccountCacheSync.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	})
}
