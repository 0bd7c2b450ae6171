package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/saleledger/internal/sale/engine"
	"github.com/goodnatureofminers/saleledger/internal/sale/model"
	"github.com/goodnatureofminers/saleledger/pkg/safe"
)

var (
	monitorPollTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "saleledger",
		Subsystem: "sale_monitor",
		Name:      "poll_total",
		Help:      "Count of sale snapshot polls.",
	}, []string{"sale", "status"})

	monitorPollDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "saleledger",
		Subsystem: "sale_monitor",
		Name:      "poll_duration_seconds",
		Help:      "Duration of sale snapshot polls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"sale", "status"})

	saleHeldBalance = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "saleledger",
		Subsystem: "sale",
		Name:      "held_balance",
		Help:      "Tokens still held by the sale.",
	}, []string{"sale"})

	saleTotalContributed = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "saleledger",
		Subsystem: "sale",
		Name:      "total_contributed",
		Help:      "Sum of all accepted contributions.",
	}, []string{"sale"})

	saleEscrowBalance = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "saleledger",
		Subsystem: "sale",
		Name:      "escrow_balance",
		Help:      "Refund escrow balance not yet paid out.",
	}, []string{"sale"})

	saleParticipants = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "saleledger",
		Subsystem: "sale",
		Name:      "participants",
		Help:      "Participants by withdrawal status.",
	}, []string{"sale", "status"})

	saleState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "saleledger",
		Subsystem: "sale",
		Name:      "state",
		Help:      "1 for the current finalization state of the sale.",
	}, []string{"sale", "state"})

	saleClosed = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "saleledger",
		Subsystem: "sale",
		Name:      "closed",
		Help:      "1 once the sale closed by time or sell-out.",
	}, []string{"sale"})
)

var states = []model.State{model.StateActive, model.StateSucceeded, model.StateFailed}

// SaleMonitor tracks the sale monitor loop and publishes sale gauges.
type SaleMonitor struct {
	sale string
}

// NewSaleMonitor constructs a SaleMonitor collector.
func NewSaleMonitor(sale string) *SaleMonitor {
	if sale == "" {
		sale = "unknown"
	}
	return &SaleMonitor{sale: sale}
}

// ObservePoll records one snapshot poll.
func (m SaleMonitor) ObservePoll(err error, started time.Time) {
	status := statusOf(err)
	monitorPollTotal.WithLabelValues(m.sale, status).Inc()
	monitorPollDuration.WithLabelValues(m.sale, status).Observe(time.Since(started).Seconds())
}

// ObserveSnapshot sets the sale gauges. Amounts lose precision above 2^53.
func (m SaleMonitor) ObserveSnapshot(s engine.Snapshot) {
	saleHeldBalance.WithLabelValues(m.sale).Set(safe.Float64(s.HeldBalance))
	saleTotalContributed.WithLabelValues(m.sale).Set(safe.Float64(s.TotalContributed))
	saleEscrowBalance.WithLabelValues(m.sale).Set(safe.Float64(s.EscrowBalance))
	saleParticipants.WithLabelValues(m.sale, "pending").Set(float64(s.Pending))
	saleParticipants.WithLabelValues(m.sale, "withdrawn").Set(float64(s.Participants - s.Pending))
	for _, st := range states {
		v := 0.0
		if st == s.State {
			v = 1
		}
		saleState.WithLabelValues(m.sale, st.String()).Set(v)
	}
	closed := 0.0
	if s.HasClosed {
		closed = 1
	}
	saleClosed.WithLabelValues(m.sale).Set(closed)
}
