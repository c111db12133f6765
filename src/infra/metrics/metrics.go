package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "spatialapi_requests_total",
		Help: "Total number of HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "spatialapi_request_duration_ms",
		Help:    "Request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"method", "route"})

	RateLimitedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "spatialapi_rate_limited_total",
		Help: "Total number of requests rejected by the rate limiter",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal, RequestDurationMs, RateLimitedTotal)
}

// Handler exposes the default registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
