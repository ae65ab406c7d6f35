// Package metrics provides Prometheus metrics for read-count validation runs.
//
// minreads is a one-shot command, so metrics are not served over HTTP. They
// are written in the text exposition format to a file that a node_exporter
// textfile collector can pick up.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "minreads"
)

// Registry holds the validation metrics of a single process.
type Registry struct {
	reg *prometheus.Registry

	// validationsTotal counts runs by result.
	validationsTotal *prometheus.CounterVec

	// readsObserved is the clamped read count of the last run.
	readsObserved prometheus.Gauge

	// readsRequired is the read bound of the last run.
	readsRequired prometheus.Gauge

	// validationDuration is a histogram of probe plus promotion time.
	validationDuration prometheus.Histogram

	// lastRunTimestamp is the unix time the last run completed.
	lastRunTimestamp prometheus.Gauge
}

// NewRegistry creates a Registry with all validation metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Registry{
		reg: reg,
		validationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Total number of validation runs by result",
		}, []string{"result"}),
		readsObserved: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reads_observed",
			Help:      "Read count reported by the last probe, clamped at the requirement",
		}),
		readsRequired: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reads_required",
			Help:      "Minimum read count required by the last run",
		}),
		validationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "validation_duration_seconds",
			Help:      "Duration of validation runs in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~20s
		}),
		lastRunTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed validation run",
		}),
	}
}

// Observe records one completed run.
func (r *Registry) Observe(result string, reads, minReads int, elapsed time.Duration) {
	r.validationsTotal.WithLabelValues(result).Inc()
	r.readsObserved.Set(float64(reads))
	r.readsRequired.Set(float64(minReads))
	r.validationDuration.Observe(elapsed.Seconds())
	r.lastRunTimestamp.SetToCurrentTime()
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// WriteTextfile atomically writes all metrics to path.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("failed to write metrics textfile %q; %w", path, err)
	}
	return nil
}
