// Package metrics expone contadores Prometheus del API, del notificador y del caché de proyección.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
)

var _ inventory.NotifierObserver = (*Metrics)(nil)

// Metrics registro propio (no el global) con las métricas del servicio.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Notificador
	NotifierSubscriptions *prometheus.CounterVec
	NotifierDropped       *prometheus.CounterVec
	AlertsEmitted         *prometheus.CounterVec

	// Caché de proyección
	ProjectionCache *prometheus.CounterVec

	// Hub SSE
	SSEClients prometheus.Gauge
}

// New crea el registro con colectores de Go y de proceso.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total de peticiones HTTP",
	}, []string{"method", "path", "status"})

	m.HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duración de las peticiones HTTP",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	m.NotifierSubscriptions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifier_subscriptions_total",
		Help:      "Suscripciones del notificador por resultado",
	}, []string{"result"})

	m.NotifierDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifier_events_dropped_total",
		Help:      "Eventos de inserción descartados por motivo",
	}, []string{"reason"})

	m.AlertsEmitted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_alerts_emitted_total",
		Help:      "Alertas de stock emitidas por estado",
	}, []string{"status"})

	m.ProjectionCache = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projection_cache_requests_total",
		Help:      "Consultas al caché de proyección por resultado",
	}, []string{"result"})

	m.SSEClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sse_clients",
		Help:      "Clientes SSE conectados",
	})

	registry.MustRegister(
		m.HTTPRequestsTotal, m.HTTPRequestDuration,
		m.NotifierSubscriptions, m.NotifierDropped, m.AlertsEmitted,
		m.ProjectionCache, m.SSEClients,
	)
	return m
}

// Handler devuelve el handler HTTP de /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry expone el registro (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ── NotifierObserver ──────────────────────────────────────────────────────────

func (m *Metrics) SubscriptionOpened() { m.NotifierSubscriptions.WithLabelValues("opened").Inc() }

func (m *Metrics) SubscriptionFailed() { m.NotifierSubscriptions.WithLabelValues("failed").Inc() }

func (m *Metrics) EventDropped(reason string) { m.NotifierDropped.WithLabelValues(reason).Inc() }

func (m *Metrics) AlertEmitted(status string) { m.AlertsEmitted.WithLabelValues(status).Inc() }

// ── Caché ─────────────────────────────────────────────────────────────────────

// CacheHit, CacheMiss y CacheError implementan cache.Observer.
func (m *Metrics) CacheHit() { m.ProjectionCache.WithLabelValues("hit").Inc() }

func (m *Metrics) CacheMiss() { m.ProjectionCache.WithLabelValues("miss").Inc() }

func (m *Metrics) CacheError() { m.ProjectionCache.WithLabelValues("error").Inc() }

// ── SSE ───────────────────────────────────────────────────────────────────────

// ClientsChanged implementa realtime.Observer.
func (m *Metrics) ClientsChanged(n int) { m.SSEClients.Set(float64(n)) }

// ── HTTP ──────────────────────────────────────────────────────────────────────

// Middleware registra conteo y duración por ruta (patrón, no path real).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		path := c.Route().Path
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}
