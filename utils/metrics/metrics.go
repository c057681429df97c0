package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess      = "success"
	OutcomeInsufficient = "insufficient_stock"
	OutcomeInvalid      = "invalid"
	OutcomeConflict     = "conflict"
	OutcomeError        = "error"
)

// AllocationMetrics records engine and order lifecycle activity. A nil receiver is a no-op.
type AllocationMetrics struct {
	operations     *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	reservedUnits  prometheus.Counter
	orderTransfers *prometheus.CounterVec
}

// NewAllocationMetrics registers the allocation metrics on reg.
func NewAllocationMetrics(reg prometheus.Registerer) *AllocationMetrics {
	if reg == nil {
		return &AllocationMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "allocation_operations_total",
		Help: "Allocation engine operations by outcome.",
	}, []string{"operation", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "allocation_operation_duration_seconds",
		Help:    "Duration of allocation engine operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	reservedUnits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "allocation_reserved_units_total",
		Help: "Units reserved against stock lots.",
	})
	orderTransfers := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transitions_total",
		Help: "Order status transitions applied by the lifecycle adapter.",
	}, []string{"from", "to"})
	reg.MustRegister(operations, duration, reservedUnits, orderTransfers)
	return &AllocationMetrics{
		operations:     operations,
		duration:       duration,
		reservedUnits:  reservedUnits,
		orderTransfers: orderTransfers,
	}
}

func (m *AllocationMetrics) Observe(operation, outcome string, took time.Duration) {
	if m == nil || m.operations == nil {
		return
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
	m.duration.WithLabelValues(operation).Observe(took.Seconds())
}

func (m *AllocationMetrics) AddReserved(units int64) {
	if m == nil || m.reservedUnits == nil || units <= 0 {
		return
	}
	m.reservedUnits.Add(float64(units))
}

func (m *AllocationMetrics) OrderTransition(from, to string) {
	if m == nil || m.orderTransfers == nil {
		return
	}
	m.orderTransfers.WithLabelValues(from, to).Inc()
}
