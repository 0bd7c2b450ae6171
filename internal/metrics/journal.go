package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	journalPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "saleledger",
		Subsystem: "journal",
		Name:      "published_total",
		Help:      "Count of settlement events handed to the journal.",
	}, []string{"kind", "status"})

	journalFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "saleledger",
		Subsystem: "journal",
		Name:      "flush_total",
		Help:      "Count of journal batch flushes.",
	}, []string{"status"})

	journalFlushDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "saleledger",
		Subsystem: "journal",
		Name:      "flush_duration_seconds",
		Help:      "Duration of journal batch flushes.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	journalFlushSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "saleledger",
		Subsystem: "journal",
		Name:      "flush_size",
		Help:      "Number of events per journal flush.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})
)

// Journal tracks the settlement event journal.
type Journal struct{}

// NewJournal constructs a Journal collector.
func NewJournal() *Journal {
	return &Journal{}
}

// ObservePublish records an event handed to the journal.
func (m Journal) ObservePublish(kind string, err error) {
	if kind == "" {
		kind = "unknown"
	}
	journalPublishedTotal.WithLabelValues(kind, statusOf(err)).Inc()
}

// ObserveFlush records one batch flush.
func (m Journal) ObserveFlush(err error, size int, started time.Time) {
	status := statusOf(err)
	journalFlushTotal.WithLabelValues(status).Inc()
	journalFlushDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	journalFlushSize.Observe(float64(size))
}
