package handler

import (
	"net/http"

	"github.com/vfg2006/ads-insights-api/internal/api/handler/router"
	"github.com/vfg2006/ads-insights-api/internal/usecases/account"
	"github.com/vfg2006/ads-insights-api/internal/usecases/connecting"
	"github.com/vfg2006/ads-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-insights-api/pkg/metrics"
	"github.com/vfg2006/ads-insights-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func MetaOAuth(service connecting.Connector) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/meta/oauth/callback",
			Method:  http.MethodPost,
			Handler: MetaOAuthCallback(service),
		},
		{
			Path:    "/v1/meta/oauth/url",
			Method:  http.MethodGet,
			Handler: MetaOAuthURL(service),
		},
	}
}

func AdAccounts(service account.AccountService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/meta/ad-accounts",
			Method:  http.MethodGet,
			Handler: SyncAdAccounts(service),
		},
		{
			Path:    "/v1/meta/ad-accounts/cached",
			Method:  http.MethodGet,
			Handler: ListCachedAdAccounts(service),
		},
	}
}

func Insights(service insighting.Insighter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/meta/insights",
			Method:  http.MethodPost,
			Handler: GetDashboardInsights(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
