// Package metrics holds the Prometheus collectors for storage traffic.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	storageReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barmate",
			Subsystem: "storage",
			Name:      "reads_total",
			Help:      "Collection reads by key and outcome.",
		},
		[]string{"driver", "key", "result"},
	)

	storageWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barmate",
			Subsystem: "storage",
			Name:      "writes_total",
			Help:      "Collection writes by key and outcome.",
		},
		[]string{"driver", "key", "result"},
	)

	storageWriteDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "barmate",
			Subsystem: "storage",
			Name:      "write_duration_seconds",
			Help:      "Duration of collection writes.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		},
		[]string{"driver"},
	)

	collectionSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "barmate",
			Subsystem: "store",
			Name:      "records",
			Help:      "Number of records currently held per collection.",
		},
		[]string{"collection"},
	)
)

// Read outcomes.
const (
	ResultOK      = "ok"
	ResultMissing = "missing"
	ResultCorrupt = "corrupt"
	ResultError   = "error"
)

func init() {
	Registry.MustRegister(
		storageReads,
		storageWrites,
		storageWriteDuration,
		collectionSize,
	)
}

// Handler returns an http.Handler exposing the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordRead counts one collection read.
func RecordRead(driver, key, result string) {
	storageReads.WithLabelValues(driver, key, result).Inc()
}

// RecordWrite counts one collection write and observes its latency.
func RecordWrite(driver, key string, err error, d time.Duration) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	storageWrites.WithLabelValues(driver, key, result).Inc()
	storageWriteDuration.WithLabelValues(driver).Observe(d.Seconds())
}

// SetCollectionSize records how many items a collection holds.
func SetCollectionSize(collection string, n int) {
	collectionSize.WithLabelValues(collection).Set(float64(n))
}

// Writes returns the write counter for the label set so callers can read
// it with testutil.
func Writes(driver, key, result string) prometheus.Counter {
	return storageWrites.WithLabelValues(driver, key, result)
}

// Reads returns the current read counter for the label set.
func Reads(driver, key, result string) prometheus.Counter {
	return storageReads.WithLabelValues(driver, key, result)
}
