// Package metrics exposes Prometheus collectors for the coding pipeline.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchAttemptsTotal *prometheus.CounterVec
	cacheHitsTotal     prometheus.Counter
	recordsTotal       prometheus.Counter
	snapshotTotal      prometheus.Counter

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		fetchAttemptsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "poemcoder_fetch_attempts_total",
				Help: "Total number of network fetch attempts, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		cacheHitsTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "poemcoder_cache_hits_total",
				Help: "Total number of fetches served from the page cache.",
			},
		)

		recordsTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "poemcoder_records_appended_total",
				Help: "Total number of coding records appended to the log.",
			},
		)

		snapshotTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "poemcoder_snapshot_rebuilds_total",
				Help: "Total number of snapshot regenerations.",
			},
		)
	})
}

// ObserveFetchAttempt increments the attempt counter for the given outcome
// ("success", "transient", "fatal", or "error").
func ObserveFetchAttempt(outcome string) {
	Init()
	fetchAttemptsTotal.WithLabelValues(outcome).Inc()
}

// ObserveCacheHit increments the cache hit counter.
func ObserveCacheHit() {
	Init()
	cacheHitsTotal.Inc()
}

// ObserveRecordAppended increments the appended record counter.
func ObserveRecordAppended() {
	Init()
	recordsTotal.Inc()
}

// ObserveSnapshotRebuild increments the snapshot regeneration counter.
func ObserveSnapshotRebuild() {
	Init()
	snapshotTotal.Inc()
}
