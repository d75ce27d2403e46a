package leveling

import (
	"testing"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNextLevel(t *testing.T) {
	tests := []struct {
		name      string
		stats     domain.ModuleStats
		wantLevel int
		wantDelta int
	}{
		{"too few attempts", domain.ModuleStats{Correct: 4, Level: 1}, 1, 0},
		{"high accuracy but under ten attempts", domain.ModuleStats{Correct: 5, Level: 1}, 1, 0},
		{"promote at 80 percent over ten", domain.ModuleStats{Correct: 8, Wrong: 2, Level: 1}, 2, 1},
		{"no promotion past max", domain.ModuleStats{Correct: 10, Level: 3}, 3, 0},
		{"demote below 50 percent over ten", domain.ModuleStats{Correct: 4, Wrong: 6, Level: 2}, 1, -1},
		{"no demotion below min", domain.ModuleStats{Correct: 1, Wrong: 9, Level: 1}, 1, 0},
		{"exactly 50 percent holds", domain.ModuleStats{Correct: 5, Wrong: 5, Level: 2}, 2, 0},
		{"low accuracy under eight attempts holds", domain.ModuleStats{Correct: 1, Wrong: 4, Level: 2}, 2, 0},
		{"out of range level is clamped first", domain.ModuleStats{Correct: 10, Level: 7}, 3, 0},
		{"zero level is clamped to one", domain.ModuleStats{Correct: 6, Wrong: 4, Level: 0}, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, delta := NextLevel(tt.stats)
			assert.Equal(t, tt.wantLevel, level)
			assert.Equal(t, tt.wantDelta, delta)
		})
	}
}

func TestDue_EveryFifthAnswer(t *testing.T) {
	assert.False(t, Due(domain.ModuleStats{Correct: 4}))
	assert.True(t, Due(domain.ModuleStats{Correct: 3, Wrong: 2}))
	assert.False(t, Due(domain.ModuleStats{Correct: 6}))
	assert.True(t, Due(domain.ModuleStats{Correct: 10}))
}

func TestChange_Direction(t *testing.T) {
	assert.Equal(t, "up", Change{From: 1, To: 2}.Direction())
	assert.Equal(t, "down", Change{From: 3, To: 2}.Direction())
}
