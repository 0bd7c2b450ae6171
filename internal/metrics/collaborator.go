package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	collaboratorRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "saleledger",
		Subsystem: "collaborator",
		Name:      "operations_total",
		Help:      "Count of ledger and payment channel calls.",
	}, []string{"collaborator", "operation", "status"})
	collaboratorRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "saleledger",
		Subsystem: "collaborator",
		Name:      "operation_duration_seconds",
		Help:      "Duration of ledger and payment channel calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"collaborator", "operation", "status"})
)

// Collaborator tracks calls made to an external collaborator such as the
// token ledger or the payment channel.
type Collaborator struct {
	name string
}

// NewCollaborator constructs a metrics collector for calls to name.
func NewCollaborator(name string) *Collaborator {
	if name == "" {
		name = "unknown"
	}
	return &Collaborator{name: name}
}

// Observe records a single call outcome and duration.
func (m Collaborator) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	collaboratorRequestsTotal.WithLabelValues(m.name, operation, status).Inc()
	collaboratorRequestDuration.WithLabelValues(m.name, operation, status).Observe(time.Since(started).Seconds())
}
