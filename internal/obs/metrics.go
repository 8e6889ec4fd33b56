package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adboard_refresh_total",
		Help: "Refresh cycles by outcome (ok, degraded).",
	}, []string{"outcome"})

	RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "adboard_refresh_duration_seconds",
		Help:    "Wall time of a full fetch+join+derive cycle.",
		Buckets: prometheus.DefBuckets,
	})

	RecordsJoined = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "adboard_records_joined",
		Help: "Joined ad records in the current snapshot.",
	})

	UnmatchedJoins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adboard_unmatched_joins_total",
		Help: "Spend rows with no match in an auxiliary source.",
	}, []string{"source"})

	SourceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adboard_source_failures_total",
		Help: "Source fetches that failed and degraded to an empty table.",
	}, []string{"source"})
)
