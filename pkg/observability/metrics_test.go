package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObservePass(4, time.Millisecond, nil)
	m.ObservePass(0, time.Millisecond, errors.New("boom"))
	m.ObserveStrategy("reparse")
	m.ObserveSuggestion(OutcomeIncomplete)
	m.SetRegistered(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.passes.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.passes.WithLabelValues("error")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.nodes))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.strategies.WithLabelValues("reparse")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.suggestions.WithLabelValues(OutcomeIncomplete)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.registered))

	count, err := testutil.GatherAndCount(reg, "graft_mapping_duration_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObservePass(1, time.Second, nil)
		m.ObserveStrategy("none")
		m.ObserveSuggestion(OutcomeOK)
		m.SetRegistered(1)
	})
}
