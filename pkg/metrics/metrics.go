package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ads_insights"

var (
	// Requisições recebidas
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled",
		},
		[]string{"method", "status"},
	)
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// Chamadas ao Graph API
	GraphRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graph_requests_total",
			Help:      "Total number of requests sent to the Meta Graph API",
		},
		[]string{"endpoint", "status"},
	)
	GraphLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "graph_request_duration_seconds",
			Help:      "Meta Graph API request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Paginação de insights
	InsightPages = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "insights_pages_per_fetch",
			Help:      "Number of insights pages followed per fetch",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500},
		},
	)
	InsightRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "insights_records_total",
			Help:      "Total number of raw insight records fetched",
		},
		[]string{"level"},
	)

	// Cache de contas
	AccountCacheSyncs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "account_cache_syncs_total",
			Help:      "Total number of ad account cache replacements",
		},
		[]string{"result"},
	)
)

// RecordGraphRequest registra status e latência de uma chamada ao Graph API.
// status 0 indica erro de transporte.
func RecordGraphRequest(endpoint string, status int, start time.Time) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}

	GraphRequests.WithLabelValues(endpoint, label).Inc()
	GraphLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// Handler expõe as métricas no formato Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}
