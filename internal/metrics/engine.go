package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	engineOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "saleledger",
		Subsystem: "engine",
		Name:      "operations_total",
		Help:      "Count of settlement engine operations.",
	}, []string{"sale", "operation", "status"})

	engineOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "saleledger",
		Subsystem: "engine",
		Name:      "operation_duration_seconds",
		Help:      "Duration of settlement engine operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"sale", "operation", "status"})
)

// Engine tracks settlement engine operations of one sale.
type Engine struct {
	sale string
}

// NewEngine constructs an Engine collector.
func NewEngine(sale string) *Engine {
	if sale == "" {
		sale = "unknown"
	}
	return &Engine{sale: sale}
}

// ObserveOperation records one operation outcome and duration. Rejected
// operations count as errors.
func (m Engine) ObserveOperation(operation string, err error, started time.Time) {
	status := statusOf(err)
	engineOperationsTotal.WithLabelValues(m.sale, operation, status).Inc()
	engineOperationDuration.WithLabelValues(m.sale, operation, status).Observe(time.Since(started).Seconds())
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
