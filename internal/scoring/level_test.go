package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelBoundaries(t *testing.T) {
	tests := []struct {
		total float64
		want  int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{399, 2},
		{400, 3},
		{900, 4},
		{-50, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.total), "Level(%v)", tt.total)
	}
}

func TestLevelFloor(t *testing.T) {
	assert.Equal(t, 0.0, LevelFloor(1))
	assert.Equal(t, 100.0, LevelFloor(2))
	assert.Equal(t, 400.0, LevelFloor(3))
	assert.Equal(t, 0.0, LevelFloor(0))
}

func TestLevelProgress(t *testing.T) {
	assert.Equal(t, 0.0, LevelProgress(0))
	assert.Equal(t, 50.0, LevelProgress(50))
	assert.Equal(t, 0.0, LevelProgress(100))
	// level 2 spans [100, 400): 250 is halfway
	assert.Equal(t, 50.0, LevelProgress(250))
}

func TestLevelProgressNeverDegenerate(t *testing.T) {
	// sweep a wide score range: progress must stay in [0, 100) and the
	// boundary division can never hit zero
	for total := 0.0; total < 5e6; total += 997.3 {
		p := LevelProgress(total)
		assert.GreaterOrEqual(t, p, 0.0, "total=%v", total)
		assert.Less(t, p, 100.0, "total=%v", total)
	}
}

func TestLevelMonotonic(t *testing.T) {
	prev := Level(0)
	for total := 0.0; total < 1e5; total += 37 {
		l := Level(total)
		assert.GreaterOrEqual(t, l, prev)
		prev = l
	}
}
