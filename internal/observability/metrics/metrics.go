// Package metrics exposes prometheus instruments and the /metrics handler.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPMetrics tracks request counts and latencies per route.
type HTTPMetrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	fallback prometheus.Counter
}

func NewHTTPMetrics() *HTTPMetrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "decisio_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "decisio_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	fallback := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "decisio_local_fallback_total",
		Help: "Operations served by the local store instead of the cloud.",
	})

	registry.MustRegister(requests, duration, fallback)

	return &HTTPMetrics{
		registry: registry,
		requests: requests,
		duration: duration,
		fallback: fallback,
	}
}

// Handler serves the prometheus exposition endpoint.
func (m *HTTPMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordLocalFallback counts a repository operation that settled locally.
func (m *HTTPMetrics) RecordLocalFallback() {
	if m == nil {
		return
	}
	m.fallback.Inc()
}

// GinMiddleware observes every request. Unmatched routes collapse into one
// label to keep cardinality bounded.
func (m *HTTPMetrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
