package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Suggestion outcomes recorded by the reparse adapter.
const (
	OutcomeOK         = "ok"
	OutcomeIncomplete = "incomplete"
	OutcomeFailed     = "failed"
)

// Metrics groups the collectors graft reports.
type Metrics struct {
	passes      *prometheus.CounterVec
	nodes       prometheus.Counter
	duration    prometheus.Histogram
	strategies  *prometheus.CounterVec
	suggestions *prometheus.CounterVec
	registered  prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// A nil registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		passes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graft_mapping_passes_total",
				Help: "Total number of mapping passes by result",
			},
			[]string{"result"},
		),
		nodes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "graft_mapped_nodes_total",
			Help: "Total number of nodes produced by successful mapping passes",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "graft_mapping_duration_seconds",
			Help:    "Duration of mapping passes",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		strategies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graft_suggestion_strategies_total",
				Help: "Suggestion strategies chosen for mapped argument nodes",
			},
			[]string{"strategy"},
		),
		suggestions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graft_reparse_suggestions_total",
				Help: "Suggestion requests served by reparsing the origin tree, by outcome",
			},
			[]string{"outcome"},
		),
		registered: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "graft_registered_commands",
			Help: "Number of commands currently registered on the foreign root",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.passes, m.nodes, m.duration, m.strategies, m.suggestions, m.registered)
	}
	return m
}

// ObservePass records the outcome of one mapping pass.
func (m *Metrics) ObservePass(nodes int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.duration.Observe(elapsed.Seconds())
	if err != nil {
		m.passes.WithLabelValues("error").Inc()
		return
	}
	m.passes.WithLabelValues("ok").Inc()
	m.nodes.Add(float64(nodes))
}

// ObserveStrategy records the suggestion strategy chosen for one argument node.
func (m *Metrics) ObserveStrategy(strategy string) {
	if m == nil {
		return
	}
	m.strategies.WithLabelValues(strategy).Inc()
}

// ObserveSuggestion records one reparse suggestion request.
func (m *Metrics) ObserveSuggestion(outcome string) {
	if m == nil {
		return
	}
	m.suggestions.WithLabelValues(outcome).Inc()
}

// SetRegistered records the number of registered commands.
func (m *Metrics) SetRegistered(n int) {
	if m == nil {
		return
	}
	m.registered.Set(float64(n))
}
