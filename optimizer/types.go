package optimizer

import "github.com/shopfloor/tabu/plan"

// Score is the tuple spec §4.4 requires be carried together rather than as
// separate parallel arrays: TotalScore drives optimization, the other two
// components are retained for reporting and archival.
type Score struct {
	TotalScore        float64
	AdjustedPurchases float64
	AdjustedSteps     float64
}

// Better reports whether s beats other for optimization purposes.
func (s Score) Better(other Score) bool {
	return s.TotalScore > other.TotalScore
}

// Heatmap is a rows x cols grid of accumulated, then min-max normalized,
// counts (spec §3, §4.4).
type Heatmap struct {
	Rows, Cols int
	Values     []float64 // row-major, length Rows*Cols
}

func newHeatmap(rows, cols int) Heatmap {
	return Heatmap{Rows: rows, Cols: cols, Values: make([]float64, rows*cols)}
}

func (h Heatmap) at(pos plan.Position) float64 {
	return h.Values[pos.Row*h.Cols+pos.Col]
}

func (h Heatmap) add(pos plan.Position, delta float64) {
	h.Values[pos.Row*h.Cols+pos.Col] += delta
}

// normalize returns a new Heatmap with values rescaled to [0,1]. If max
// equals min (including the all-zero case), the result is all zeros.
func (h Heatmap) normalize() Heatmap {
	out := newHeatmap(h.Rows, h.Cols)
	if len(h.Values) == 0 {
		return out
	}
	min, max := h.Values[0], h.Values[0]
	for _, v := range h.Values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		return out
	}
	span := max - min
	for i, v := range h.Values {
		out.Values[i] = (v - min) / span
	}
	return out
}

// merge adds other's values into h in place (per-worker-buffer reduction).
func (h Heatmap) merge(other Heatmap) {
	for i, v := range other.Values {
		h.Values[i] += v
	}
}

// Fingerprint is a content-hash identity of a plan's aisle-id matrix, used
// by the tabu queue (spec §4.4, §8, glossary).
type Fingerprint uint64

// IterationRecord is one entry of the optimizer's history, per spec §3.
type IterationRecord struct {
	IterationNum int

	// PlanMatrix is plan.Plan.ArchiveMatrix()'s output: the aisle-id
	// matrix with entrance/exit encoded as the §6 sentinels -1/-2, ready
	// for direct archival.
	PlanMatrix     []int
	Score          Score
	WalkHeatmap    Heatmap
	ImpulseHeatmap Heatmap
}

// BestIterationNum is the iteration_num used for the synthetic trailing
// "best" record appended at the end of a trajectory (spec §4.4).
const BestIterationNum = -1
