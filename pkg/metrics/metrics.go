// Package metrics exposes Prometheus instruments for guard decisions,
// notification traffic, toast streams and HTTP requests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "testimony"

// Collector holds every application metric. A nil *Collector is valid and
// records nothing, which keeps tests free of registry setup.
type Collector struct {
	guardDecisions *prometheus.CounterVec
	notifications  *prometheus.CounterVec
	rateLimited    prometheus.Counter
	activeStreams  prometheus.Gauge
	httpDuration   *prometheus.HistogramVec
}

// NewCollector creates the instruments and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		guardDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guard_decisions_total",
			Help:      "Route guard outcomes by state and reason.",
		}, []string{"state", "reason"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification store mutations by event type.",
		}, []string{"event"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_rate_limited_total",
			Help:      "Notifications rejected by the per-session limiter.",
		}),
		activeStreams: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "toast_streams_active",
			Help:      "Open toast SSE streams.",
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(c.guardDecisions, c.notifications, c.rateLimited, c.activeStreams, c.httpDuration)
	return c
}

// RecordGuardDecision counts a guard outcome.
func (c *Collector) RecordGuardDecision(state, reason string) {
	if c == nil {
		return
	}
	c.guardDecisions.WithLabelValues(state, reason).Inc()
}

// RecordNotification counts a store mutation.
func (c *Collector) RecordNotification(event string) {
	if c == nil {
		return
	}
	c.notifications.WithLabelValues(event).Inc()
}

// RecordRateLimited counts a rejected notification.
func (c *Collector) RecordRateLimited() {
	if c == nil {
		return
	}
	c.rateLimited.Inc()
}

// StreamOpened increments the open stream gauge and returns the matching
// decrement.
func (c *Collector) StreamOpened() (closed func()) {
	if c == nil {
		return func() {}
	}
	c.activeStreams.Inc()
	return c.activeStreams.Dec
}

// Middleware observes request latency labelled by the chi route pattern, so
// /notifications/{id} is one series rather than one per id.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	if c == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		c.httpDuration.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
