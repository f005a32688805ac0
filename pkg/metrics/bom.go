package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BOMMetrics métricas de las operaciones del núcleo de inventario y plantillas.
// Un *BOMMetrics nil es válido y no registra nada.
type BOMMetrics struct {
	operations    *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	stockUpdates  *prometheus.CounterVec
	auditFailures prometheus.Counter
	auditDropped  prometheus.Counter
}

// NewBOMMetrics registra las métricas en el registerer dado.
func NewBOMMetrics(reg prometheus.Registerer) *BOMMetrics {
	if reg == nil {
		return &BOMMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bom_operations_total",
		Help: "Operaciones del núcleo por resultado.",
	}, []string{"operation", "result"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bom_operation_duration_seconds",
		Help:    "Duración de las operaciones del núcleo en segundos.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	stockUpdates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bom_stock_updates_total",
		Help: "Actualizaciones de stock aplicadas por estrategia.",
	}, []string{"path"})
	auditFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bom_audit_failures_total",
		Help: "Registros de auditoría que fallaron al escribirse.",
	})
	auditDropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bom_audit_dropped_total",
		Help: "Registros de auditoría descartados por exceso de escrituras en curso.",
	})
	reg.MustRegister(operations, duration, stockUpdates, auditFailures, auditDropped)
	return &BOMMetrics{
		operations:    operations,
		duration:      duration,
		stockUpdates:  stockUpdates,
		auditFailures: auditFailures,
		auditDropped:  auditDropped,
	}
}

// ObserveOperation cuenta la operación con su resultado y registra su duración.
func (m *BOMMetrics) ObserveOperation(operation, result string, d time.Duration) {
	if m == nil || m.operations == nil {
		return
	}
	op := normalizeLabel(operation)
	m.operations.WithLabelValues(op, normalizeLabel(result)).Inc()
	m.duration.WithLabelValues(op).Observe(d.Seconds())
}

// IncStockUpdate cuenta una actualización de stock aplicada por la estrategia path.
func (m *BOMMetrics) IncStockUpdate(path string) {
	if m == nil || m.stockUpdates == nil {
		return
	}
	m.stockUpdates.WithLabelValues(normalizeLabel(path)).Inc()
}

// IncAuditFailure cuenta una escritura de auditoría fallida.
func (m *BOMMetrics) IncAuditFailure() {
	if m == nil || m.auditFailures == nil {
		return
	}
	m.auditFailures.Inc()
}

// IncAuditDropped cuenta un registro de auditoría descartado.
func (m *BOMMetrics) IncAuditDropped() {
	if m == nil || m.auditDropped == nil {
		return
	}
	m.auditDropped.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
