// Package metrics expone métricas Prometheus de negocio y de HTTP.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Operaciones-api/internal/application/ports"
)

const namespace = "operaciones"

var _ ports.MetricsRecorder = (*Recorder)(nil)

// Recorder implementa ports.MetricsRecorder sobre un registro propio.
type Recorder struct {
	registry *prometheus.Registry

	ordersCreated   *prometheus.CounterVec
	unitsShipped    *prometheus.CounterVec
	supplyCompleted *prometheus.CounterVec
	supplyUnits     *prometheus.CounterVec
	scans           *prometheus.CounterVec
	quality         *prometheus.CounterVec
	notifications   *prometheus.CounterVec
	reminders       *prometheus.CounterVec
	aiCalls         *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New registra los colectores en un registro nuevo (con métricas de proceso y runtime).
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return NewWithRegistry(reg)
}

// NewWithRegistry registra los colectores en reg. Útil en tests para aislar contadores.
func NewWithRegistry(reg *prometheus.Registry) *Recorder {
	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		c := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
		reg.MustRegister(c)
		return c
	}
	r := &Recorder{
		registry:        reg,
		ordersCreated:   counter("orders_created_total", "Pedidos de venta creados.", "company_id"),
		unitsShipped:    counter("order_units_shipped_total", "Unidades descontadas al enviar pedidos.", "company_id"),
		supplyCompleted: counter("supply_orders_completed_total", "Órdenes de abastecimiento completadas.", "company_id", "type"),
		supplyUnits:     counter("supply_units_received_total", "Unidades acreditadas por abastecimiento.", "company_id", "type"),
		scans:           counter("verification_scans_total", "Escaneos de verificación por resultado.", "result"),
		quality:         counter("quality_analyses_total", "Análisis de calidad por estado.", "status"),
		notifications:   counter("notifications_emitted_total", "Notificaciones emitidas por tipo.", "type"),
		reminders:       counter("payment_reminders_total", "Recordatorios de cobro generados.", "company_id"),
		aiCalls:         counter("ai_calls_total", "Llamadas al modelo generativo por función y resultado.", "function", "ok"),
		httpRequests:    counter("http_requests_total", "Solicitudes HTTP por método, ruta y código.", "method", "route", "status"),
	}
	r.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Latencia de las solicitudes HTTP.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(r.httpDuration)
	return r
}

// Registry registro subyacente.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

func (r *Recorder) OrderCreated(companyID string) {
	r.ordersCreated.WithLabelValues(companyID).Inc()
}

func (r *Recorder) OrderShipped(companyID string, units int) {
	r.unitsShipped.WithLabelValues(companyID).Add(float64(units))
}

func (r *Recorder) SupplyCompleted(companyID, orderType string, units int) {
	r.supplyCompleted.WithLabelValues(companyID, orderType).Inc()
	r.supplyUnits.WithLabelValues(companyID, orderType).Add(float64(units))
}

func (r *Recorder) ScanRecorded(result string) { r.scans.WithLabelValues(result).Inc() }

func (r *Recorder) QualityAnalyzed(status string) { r.quality.WithLabelValues(status).Inc() }

func (r *Recorder) NotificationEmitted(notificationType string) {
	r.notifications.WithLabelValues(notificationType).Inc()
}

func (r *Recorder) ReminderGenerated(companyID string) {
	r.reminders.WithLabelValues(companyID).Inc()
}

func (r *Recorder) AICall(function string, ok bool) {
	r.aiCalls.WithLabelValues(function, strconv.FormatBool(ok)).Inc()
}

// ── HTTP ──────────────────────────────────────────────────────────────────────

// Middleware cuenta solicitudes y mide latencia por ruta registrada (no por path crudo).
func (r *Recorder) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
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
		route := c.Route().Path
		r.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		r.httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone el registro en formato Prometheus.
func (r *Recorder) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
}
