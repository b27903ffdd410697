package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"filerelay/internal/model"
)

// Metrics holds the pipeline's prometheus collectors. A nil *Metrics is valid and
// records nothing, so tests can run without a registry.
type Metrics struct {
	runs           *prometheus.CounterVec
	runDuration    *prometheus.HistogramVec
	transferErrors *prometheus.CounterVec
}

// NewMetrics creates and registers the relay collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_runs_total",
				Help: "Total pipeline runs by terminal outcome.",
			},
			[]string{"outcome", "reason"},
		),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "relay_run_duration_seconds",
				Help:    "Pipeline run duration by terminal outcome.",
				Buckets: prometheus.ExponentialBuckets(0.1, 3, 10),
			},
			[]string{"outcome"},
		),
		transferErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_transfer_errors_total",
				Help: "Outbound transfer failures by error kind.",
			},
			[]string{"kind"},
		),
	}

	for _, c := range []prometheus.Collector{m.runs, m.runDuration, m.transferErrors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveRun records one finished pipeline run.
func (m *Metrics) ObserveRun(out model.Outcome, elapsed time.Duration) {
	if m == nil {
		return
	}
	reason := ""
	if out.Kind == model.OutcomeFailed {
		reason = string(out.Reason)
	}
	m.runs.WithLabelValues(string(out.Kind), reason).Inc()
	m.runDuration.WithLabelValues(string(out.Kind)).Observe(elapsed.Seconds())
}

// ObserveTransferError records one outbound transfer failure by its typed kind.
func (m *Metrics) ObserveTransferError(err error) {
	if m == nil {
		return
	}
	m.transferErrors.WithLabelValues(errorKind(err)).Inc()
}
