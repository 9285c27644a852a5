// Package metrics collects conversion metrics for batch runs.
package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "crossrate"

// Conversion outcomes used as the "outcome" label.
const (
	OutcomeOK           = "ok"
	OutcomeUnreachable  = "unreachable"
	OutcomeInvalidInput = "invalid_input"
	OutcomeError        = "error"
)

// Metrics owns a private registry, so several instances never collide.
type Metrics struct {
	registry    *prometheus.Registry
	conversions *prometheus.CounterVec
	hops        prometheus.Histogram
	duration    prometheus.Histogram
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Conversions by outcome",
		}, []string{"outcome"}),
		hops: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_hops",
			Help:      "Edges on the path of successful conversions",
			Buckets:   prometheus.LinearBuckets(0, 1, 10),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Time spent in the conversion pipeline",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}

	m.registry.MustRegister(m.conversions, m.hops, m.duration)
	for _, outcome := range []string{OutcomeOK, OutcomeUnreachable, OutcomeInvalidInput, OutcomeError} {
		m.conversions.WithLabelValues(outcome)
	}

	return m
}

// ObserveConversion records one pipeline run. hops is ignored unless outcome is OutcomeOK.
func (m *Metrics) ObserveConversion(outcome string, hops int, took time.Duration) {
	m.conversions.WithLabelValues(outcome).Inc()
	m.duration.Observe(took.Seconds())
	if outcome == OutcomeOK {
		m.hops.Observe(float64(hops))
	}
}

// WriteTextfile writes all metrics in text exposition format, for the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrap(err, "write metrics textfile")
	}
	return nil
}
