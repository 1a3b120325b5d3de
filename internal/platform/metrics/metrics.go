// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostingsTotal counts committed posting events by transaction type.
	PostingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "backoffice",
		Name:      "postings_total",
		Help:      "Number of committed posting events.",
	}, []string{"trx_type"})

	// PostingFailures counts posting attempts rejected before or during commit.
	PostingFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "backoffice",
		Name:      "posting_failures_total",
		Help:      "Number of posting attempts that did not commit.",
	}, []string{"trx_type"})

	// RecalculationsTotal counts balance snapshot recomputation passes.
	RecalculationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "backoffice",
		Name:      "recalculations_total",
		Help:      "Number of balance snapshot recomputation passes.",
	})

	// RecalculationFailures counts recomputation passes that errored. These
	// never fail the posting that triggered them.
	RecalculationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "backoffice",
		Name:      "recalculation_failures_total",
		Help:      "Number of failed balance snapshot recomputation passes.",
	})

	// RecalculationDuration observes how long a full recomputation pass takes.
	RecalculationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "backoffice",
		Name:      "recalculation_duration_seconds",
		Help:      "Duration of balance snapshot recomputation passes.",
		Buckets:   prometheus.DefBuckets,
	})

	// OverpaymentRejections counts payments rejected for exceeding the
	// outstanding invoice balance.
	OverpaymentRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "backoffice",
		Name:      "overpayment_rejections_total",
		Help:      "Number of payments rejected for exceeding the outstanding balance.",
	})
)
