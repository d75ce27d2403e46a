// Package telemetry exposes Prometheus metrics for the progress engine.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the engine's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	answers       *prometheus.CounterVec
	flushes       *prometheus.CounterVec
	flushDuration prometheus.Histogram
	badges        prometheus.Counter
	levelChanges  *prometheus.CounterVec
}

// NewMetrics registers the engine collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		answers: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sprout_answers_total",
			Help: "Answers recorded by module and result",
		}, []string{"module", "result"}),
		flushes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sprout_flush_total",
			Help: "Snapshot flushes by result",
		}, []string{"result"}),
		flushDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "sprout_flush_duration_seconds",
			Help:    "Snapshot flush duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		}),
		badges: f.NewCounter(prometheus.CounterOpts{
			Name: "sprout_badges_unlocked_total",
			Help: "Badges unlocked",
		}),
		levelChanges: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sprout_level_changes_total",
			Help: "Adaptive level changes by module and direction",
		}, []string{"module", "direction"}),
	}
}

func (m *Metrics) ObserveAnswer(module string, correct bool) {
	if m == nil {
		return
	}
	result := "wrong"
	if correct {
		result = "correct"
	}
	m.answers.WithLabelValues(module, result).Inc()
}

func (m *Metrics) ObserveFlush(d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.flushes.WithLabelValues(result).Inc()
	m.flushDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveBadges(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.badges.Add(float64(n))
}

func (m *Metrics) ObserveLevelChange(module, direction string) {
	if m == nil {
		return
	}
	m.levelChanges.WithLabelValues(module, direction).Inc()
}
