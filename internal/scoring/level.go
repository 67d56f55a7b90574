package scoring

import "math"

// Level maps a cumulative score to a discrete level:
// floor(sqrt(total/100)) + 1. Level boundaries sit at
// (level-1)^2 * 100, so level 1 covers [0, 100), level 2 [100, 400),
// and so on. Negative totals are treated as zero.
func Level(totalScore float64) int {
	if totalScore < 0 {
		totalScore = 0
	}
	return int(math.Floor(math.Sqrt(totalScore/100))) + 1
}

// LevelFloor returns the score at which the given level begins.
func LevelFloor(level int) float64 {
	if level < 1 {
		level = 1
	}
	return float64((level-1)*(level-1)) * 100
}

// LevelProgress returns the percentage travelled between the current
// level's floor and the next level's floor, in [0, 100). The two floors
// can never coincide for totalScore >= 0, so the division is safe.
func LevelProgress(totalScore float64) float64 {
	if totalScore < 0 {
		totalScore = 0
	}
	level := Level(totalScore)
	floor := LevelFloor(level)
	next := LevelFloor(level + 1)
	return (totalScore - floor) / (next - floor) * 100
}
