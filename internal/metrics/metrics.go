// Package metrics holds in-process Prometheus collectors for the batching
// pipeline. The registry here is never attached to an HTTP handler; callers
// that want export can do so themselves by reading the registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles the collectors the batching sink updates.
type Metrics struct {
	Registry *prometheus.Registry

	Submissions       prometheus.Counter
	SubmissionErrors  *prometheus.CounterVec
	MessagesPerSubmit prometheus.Histogram
	SubmissionLatency prometheus.Histogram
	QueueDepth        prometheus.Gauge
}

// New builds a fresh, unregistered-elsewhere Metrics bundle against a
// private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		Submissions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "relayer",
			Subsystem: "batch",
			Name:      "submissions_total",
			Help:      "Number of transactions submitted by the batching sink.",
		}),
		SubmissionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relayer",
			Subsystem: "batch",
			Name:      "submission_errors_total",
			Help:      "Number of submission errors by kind.",
		}, []string{"kind"}),
		MessagesPerSubmit: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "relayer",
			Subsystem: "batch",
			Name:      "messages_per_submission",
			Help:      "Number of messages contained in each submitted transaction.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		SubmissionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "relayer",
			Subsystem: "batch",
			Name:      "submission_latency_seconds",
			Help:      "Time spent inside the underlying chain submit call.",
			Buckets:   prometheus.DefBuckets,
		}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "relayer",
			Subsystem: "batch",
			Name:      "queue_depth",
			Help:      "Number of batches currently pending in the sink's worker.",
		}),
	}

	reg.MustRegister(m.Submissions, m.SubmissionErrors, m.MessagesPerSubmit, m.SubmissionLatency, m.QueueDepth)
	return m
}
