package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "smuseum"

// Museum backend and lookup pipeline metrics.
var (
	MuseumRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "museum_requests_total",
			Help:      "Total number of museum API requests",
		},
		[]string{"museum", "op", "status"},
	)

	MuseumRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "museum_request_duration_seconds",
			Help:      "Museum API request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"museum", "op"},
	)

	MuseumErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "museum_errors_total",
			Help:      "Total museum API errors",
		},
		[]string{"museum", "op", "error_type"},
	)

	SnapshotTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_total",
			Help:      "Record batch snapshots by result",
		},
		[]string{"result"}, // "ok" / "error"
	)

	LookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Lookups by outcome",
		},
		[]string{"museum", "outcome"}, // "ok" / "no_artist" / "no_title" / "upstream_error" / "snapshot_error"
	)

	LookupFetchedObjects = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_fetched_objects",
			Help:      "Objects fetched per lookup",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
)

var registerOnce sync.Once

// Register registers every collector on the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			httpRequestsInFlight,
			MuseumRequestsTotal,
			MuseumRequestDuration,
			MuseumErrorsTotal,
			SnapshotTotal,
			LookupsTotal,
			LookupFetchedObjects,
		)
	})
}
