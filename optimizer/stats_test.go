package optimizer_test

import (
	"testing"

	"github.com/shopfloor/tabu/optimizer"
	"github.com/stretchr/testify/assert"
)

func TestScoreStatsMerge(t *testing.T) {
	var a, b optimizer.ScoreStats
	for i := float64(0); i < 5; i++ {
		a = a.Insert(i)
	}
	for i := float64(5); i < 10; i++ {
		b = b.Insert(i)
	}
	stats := a.Merge(b)
	assert.Equal(t, 4.5, stats.Mean())
	assert.Equal(t, 8.25, stats.Variance())
	assert.Equal(t, 10, stats.Len())
}

func TestScoreStatsMergeWithEmpty(t *testing.T) {
	var a, empty optimizer.ScoreStats
	a = a.Insert(1).Insert(2).Insert(3)

	assert.Equal(t, a.Mean(), a.Merge(empty).Mean())
	assert.Equal(t, a.Mean(), empty.Merge(a).Mean())
}

func candidateScores() (s optimizer.ScoreStats) {
	for _, v := range []float64{0.10, 0.25, 0.40, -0.05, 0.15, 0.30, -0.10, 0.05} {
		s = s.Insert(v)
	}
	return s
}

func TestScoreStatsRange(t *testing.T) {
	s := candidateScores()
	assert.InDelta(t, 0.50, s.Range(), 1e-9)
	assert.Equal(t, 8, s.Len())
}

func TestScoreStatsZeroValueIsSafe(t *testing.T) {
	var s optimizer.ScoreStats
	assert.Equal(t, 0.0, s.Mean())
	assert.Equal(t, 0.0, s.Variance())
	assert.Equal(t, 0, s.Len())
}
