package assistant

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Mode label values for query metrics.
const (
	modeFull    = "full"
	modeKeyword = "keyword"
)

var (
	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trialqa",
		Name:      "queries_total",
		Help:      "Number of assistant queries by mode.",
	}, []string{"mode"})

	generationFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trialqa",
		Name:      "generation_fallbacks_total",
		Help:      "Number of answers degraded to the apology message.",
	})

	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "trialqa",
		Name:      "query_duration_seconds",
		Help:      "End-to-end query latency by mode.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"mode"})
)
