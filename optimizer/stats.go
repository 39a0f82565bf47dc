package optimizer

import (
	"fmt"
	"math"
)

// ScoreStats is an incremental, mergeable statistics collector over the
// total_score of every candidate a trajectory has scored, adapted from the
// teacher framework's population fitness Stats type. Insert/Merge use
// Welford's online algorithm so per-worker partial stats (one per batch
// scored in parallel) can be combined after the fact without revisiting
// every sample, the same shape the teacher used to summarize a
// generation's fitness distribution.
type ScoreStats struct {
	max, min float64
	mean     float64
	sumsq    float64 // sum of squares of deviation from the mean
	len      float64
}

// Insert folds one candidate's total_score into the running statistics.
func (s ScoreStats) Insert(x float64) ScoreStats {
	if s.len == 0 {
		s.max = math.Inf(-1)
		s.min = math.Inf(+1)
	}

	delta := x - s.mean
	newlen := s.len + 1

	s.max = math.Max(s.max, x)
	s.min = math.Min(s.min, x)
	s.mean += delta / newlen
	s.sumsq += delta * delta * (s.len / newlen)
	s.len = newlen

	return s
}

// Merge combines s with another ScoreStats covering a disjoint set of
// candidates, e.g. the per-goroutine partials from one scoreBatch call.
func (s ScoreStats) Merge(t ScoreStats) ScoreStats {
	if t.len == 0 {
		return s
	}
	if s.len == 0 {
		return t
	}

	delta := t.mean - s.mean
	newlen := t.len + s.len

	s.max = math.Max(s.max, t.max)
	s.min = math.Min(s.min, t.min)
	s.mean += delta * (t.len / newlen)
	s.sumsq += t.sumsq
	s.sumsq += delta * delta * (t.len * s.len / newlen)
	s.len = newlen

	return s
}

// Max returns the highest total_score seen.
func (s ScoreStats) Max() float64 {
	return s.max
}

// Min returns the lowest total_score seen.
func (s ScoreStats) Min() float64 {
	return s.min
}

// Range returns Max - Min.
func (s ScoreStats) Range() float64 {
	return s.max - s.min
}

// Mean returns the average total_score seen.
func (s ScoreStats) Mean() float64 {
	return s.mean
}

// Variance returns the population variance of total_score.
func (s ScoreStats) Variance() float64 {
	if s.len == 0 {
		return 0
	}
	return s.sumsq / s.len
}

// StdDeviation returns the population standard deviation of total_score.
func (s ScoreStats) StdDeviation() float64 {
	return math.Sqrt(s.Variance())
}

// Len returns the number of candidates folded into s.
func (s ScoreStats) Len() int {
	return int(s.len)
}

// String summarizes s for a log line.
func (s ScoreStats) String() string {
	return fmt.Sprintf("max=%f min=%f mean=%f sd=%f n=%d",
		s.Max(), s.Min(), s.Mean(), s.StdDeviation(), s.Len())
}
