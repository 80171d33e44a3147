package waiter

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSatisfied = "satisfied"
	OutcomeTimedOut  = "timed_out"
	OutcomeNotFound  = "not_found"
	OutcomeError     = "error"
)

// Metrics records waiter activity. A nil *Metrics records nothing.
type Metrics struct {
	polls       prometheus.Counter
	outcomes    *prometheus.CounterVec
	waitSeconds prometheus.Histogram
}

// NewMetrics creates the waiter collectors and registers them with reg when it
// is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		polls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ociapi_waiter_polls_total",
			Help: "Total number of resource fetches issued while waiting for a lifecycle state.",
		}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ociapi_waiter_outcomes_total",
			Help: "Total number of finished waits by outcome.",
		}, []string{"outcome"}),
		waitSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ociapi_waiter_wait_seconds",
			Help:    "Duration of finished waits in seconds.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.polls, m.outcomes, m.waitSeconds)
	}
	return m
}

func (m *Metrics) observePoll() {
	if m == nil {
		return
	}
	m.polls.Inc()
}

func (m *Metrics) observeOutcome(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(outcome).Inc()
	m.waitSeconds.Observe(seconds)
}
