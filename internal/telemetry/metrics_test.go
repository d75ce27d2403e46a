package telemetry

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_CountsByLabel(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveAnswer("math", true)
	m.ObserveAnswer("math", true)
	m.ObserveAnswer("math", false)
	m.ObserveFlush(time.Millisecond, nil)
	m.ObserveFlush(time.Millisecond, errors.New("disk full"))
	m.ObserveBadges(2)
	m.ObserveBadges(0)
	m.ObserveLevelChange("math", "up")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.answers.WithLabelValues("math", "correct")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.answers.WithLabelValues("math", "wrong")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.flushes.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.flushes.WithLabelValues("error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.badges))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.levelChanges.WithLabelValues("math", "up")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAnswer("math", true)
		m.ObserveFlush(time.Second, nil)
		m.ObserveBadges(1)
		m.ObserveLevelChange("math", "down")
	})
}
