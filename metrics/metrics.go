package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ===============================
// TX PIPELINE
// ===============================
var (
	FnDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ledger",
			Subsystem: "fn",
			Name:      "duration_ms",
			Help:      "Function execution duration",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 15),
		},
		[]string{"name"},
	)

	TxAccepted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ledger",
		Subsystem: "epoch",
		Name:      "tx_accepted_total",
		Help:      "Transactions accepted into the pool across all epochs",
	})

	TxRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ledger",
		Subsystem: "epoch",
		Name:      "tx_rejected_total",
		Help:      "Candidate transactions rejected during selection",
	})
)

// ===============================
// EPOCH PROCESSING
// ===============================
var (
	EpochSelectDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ledger",
		Subsystem: "epoch",
		Name:      "select_duration_ms",
		Help:      "Time spent ranking and applying one epoch's candidates",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 15),
	})

	EpochCommitDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ledger",
		Subsystem: "epoch",
		Name:      "commit_duration_ms",
		Help:      "Time spent persisting an epoch's pool mutations",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 15),
	})

	PoolSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ledger",
		Subsystem: "pool",
		Name:      "size",
		Help:      "Current number of spendable outputs in the pool",
	})
)

// ===============================
// MEMPOOL
// ===============================
var (
	MempoolSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ledger",
		Subsystem: "mempool",
		Name:      "size",
		Help:      "Current number of candidate transactions",
	})

	MempoolAddDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ledger",
		Subsystem: "mempool",
		Name:      "add_duration_ms",
		Help:      "Time spent adding a candidate to the mempool",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 15),
	})
)

// ===============================
// REGISTER ALL
// ===============================
func Register() {
	prometheus.MustRegister(
		FnDuration,
		TxAccepted,
		TxRejected,

		EpochSelectDuration,
		EpochCommitDuration,
		PoolSize,

		MempoolSize,
		MempoolAddDuration,
	)
}

// ===============================
// HELPER
// ===============================
func ObserveDuration(h prometheus.Observer, start time.Time) {
	h.Observe(float64(time.Since(start).Milliseconds()))
}
