// Package leveling decides per-module difficulty transitions from rolling
// accuracy.
package leveling

import "github.com/alexanderramin/sprout/internal/domain"

const (
	// EvaluateEvery is the answer cadence at which levels are re-evaluated.
	EvaluateEvery = 5

	promoteAccuracy = 0.8
	promoteMinimum  = 10
	demoteAccuracy  = 0.5
	demoteMinimum   = 8
)

// Change describes a level transition for a module.
type Change struct {
	Module domain.Module `json:"module"`
	From   int           `json:"from"`
	To     int           `json:"to"`
}

// Direction is "up" or "down".
func (c Change) Direction() string {
	if c.To > c.From {
		return "up"
	}
	return "down"
}

// Due reports whether the module has reached an evaluation point.
func Due(stats domain.ModuleStats) bool {
	n := stats.Attempts()
	return n >= EvaluateEvery && n%EvaluateEvery == 0
}

// NextLevel returns the level the module should move to and the signed
// delta from its current (clamped) level.
//
// Accuracy >= 80% over at least 10 attempts promotes; accuracy below 50%
// over at least 8 attempts demotes. The result is always within [1,3].
func NextLevel(stats domain.ModuleStats) (int, int) {
	current := domain.ClampLevel(stats.Level)
	attempts := stats.Attempts()
	if attempts < EvaluateEvery {
		return current, 0
	}

	acc := stats.Accuracy()
	next := current
	switch {
	case acc >= promoteAccuracy && attempts >= promoteMinimum && current < domain.MaxLevel:
		next = current + 1
	case acc < demoteAccuracy && attempts >= demoteMinimum && current > domain.MinLevel:
		next = current - 1
	}
	return next, next - current
}
