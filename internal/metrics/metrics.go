package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics exposes application-level instruments on a dedicated registry.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
	ReconcileRuns  *prometheus.CounterVec
	ReconcileSkips prometheus.Counter
	ReconcileFails prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: registry,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "energoledger_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "energoledger_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		ReconcileRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "energoledger_reconcile_runs_total",
			Help: "Payment status recomputations by target kind.",
		}, []string{"kind"}),
		ReconcileSkips: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "energoledger_reconcile_skipped_total",
			Help: "Recomputations that found the target missing.",
		}),
		ReconcileFails: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "energoledger_reconcile_failures_total",
			Help: "Recomputations that failed against the store.",
		}),
	}

	registry.MustRegister(m.HTTPRequests, m.HTTPDuration, m.ReconcileRuns, m.ReconcileSkips, m.ReconcileFails)
	return m
}

// GinMiddleware records request counts and latency per templated route.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		m.HTTPRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
