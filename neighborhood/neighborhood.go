// Package neighborhood generates candidate Plans by constrained swap
// operations, for the optimizer to score each outer iteration (spec §4.3).
package neighborhood

import (
	"errors"
	"math/rand/v2"
	"sort"

	"github.com/shopfloor/tabu/plan"
)

// ErrNoValidNeighbor is returned when the per-swap attempt budget is
// exhausted without producing a single valid candidate plan.
var ErrNoValidNeighbor = errors.New("no valid neighbor")

// attemptBudgetFactor bounds the number of swap attempts per candidate, per
// spec §4.3 ("a per-swap attempt budget (~10x swap_count) bounds
// rejections").
const attemptBudgetFactor = 10

// Options tunes how candidates are generated.
type Options struct {
	// AllowWalkableSwap permits a swap where one of the two positions is
	// walkable (corridor). If false, both positions must be shelf cells.
	AllowWalkableSwap bool

	// SwapWholeAisles switches to whole-aisle reassignment mode: each
	// successful "swap" exchanges the identity of two same-sized aisles
	// in bulk rather than permuting two cells.
	SwapWholeAisles bool
}

// Generate clones base batchSize times, applying swapCount successful swap
// operations to each clone, and returns the resulting candidates. Every
// returned candidate is valid (Plan.Validate() == true); none need be
// distinct from one another.
func Generate(base *plan.Plan, batchSize, swapCount int, opts Options, rng *rand.Rand) ([]*plan.Plan, error) {
	candidates := make([]*plan.Plan, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		candidate, ok := generateOne(base, swapCount, opts, rng)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate)
	}
	if len(candidates) == 0 {
		return nil, ErrNoValidNeighbor
	}
	return candidates, nil
}

func generateOne(base *plan.Plan, swapCount int, opts Options, rng *rand.Rand) (*plan.Plan, bool) {
	candidate := base.Clone()
	applied := 0
	budget := swapCount * attemptBudgetFactor
	if budget == 0 {
		budget = attemptBudgetFactor
	}

	for attempt := 0; attempt < budget && applied < swapCount; attempt++ {
		if opts.SwapWholeAisles {
			if applyWholeAisleSwap(candidate, rng) {
				applied++
			}
			continue
		}
		if applySingleSwap(candidate, opts, rng) {
			applied++
		}
	}

	if applied < swapCount {
		return nil, false
	}
	return candidate, true
}

// applySingleSwap picks two distinct non-entrance/non-exit positions,
// rejects the pair per the AllowWalkableSwap rule, performs the swap
// tentatively, and reverts it if the result fails validation.
func applySingleSwap(candidate *plan.Plan, opts Options, rng *rand.Rand) bool {
	a, ok := randomMutablePosition(candidate, rng)
	if !ok {
		return false
	}
	b, ok := randomMutablePosition(candidate, rng)
	if !ok || a == b {
		return false
	}

	cellA, _ := candidate.CellAt(a.Row, a.Col)
	cellB, _ := candidate.CellAt(b.Row, b.Col)
	if cellA.IsWalkable() && cellB.IsWalkable() {
		return false // pointless: swapping two corridor cells changes nothing
	}
	if !opts.AllowWalkableSwap && (cellA.IsWalkable() || cellB.IsWalkable()) {
		return false
	}

	if err := candidate.SwapCells(a, b); err != nil {
		return false
	}
	if candidate.Validate() {
		return true
	}
	// revert: swapping the same pair again undoes it exactly
	_ = candidate.SwapCells(a, b)
	return false
}

// applyWholeAisleSwap groups shelf cells by aisle id, picks two aisles of
// identical cell count, and reassigns their identities. The mutation is
// validated as a single atomic operation and reverted wholesale on
// failure, per spec §4.3.
func applyWholeAisleSwap(candidate *plan.Plan, rng *rand.Rand) bool {
	// sorted so the rng draws below pick the same aisles for a fixed seed
	ids := candidate.AisleIDs()
	sort.Ints(ids)
	byCount := make(map[int][]int)
	for _, id := range ids {
		info, ok := candidate.AisleInfo(id)
		if !ok {
			continue
		}
		n := len(info.Cells)
		byCount[n] = append(byCount[n], id)
	}

	counts := make([]int, 0, len(byCount))
	for n, group := range byCount {
		if len(group) >= 2 {
			counts = append(counts, n)
		}
	}
	sort.Ints(counts)
	var eligible [][]int
	for _, n := range counts {
		eligible = append(eligible, byCount[n])
	}
	if len(eligible) == 0 {
		return false
	}
	group := eligible[rng.IntN(len(eligible))]
	i := rng.IntN(len(group))
	j := i
	for j == i {
		j = rng.IntN(len(group))
	}
	idA, idB := group[i], group[j]

	if err := candidate.ReassignWholeAisles(idA, idB); err != nil {
		return false
	}
	if candidate.Validate() {
		return true
	}
	_ = candidate.ReassignWholeAisles(idA, idB)
	return false
}

func randomMutablePosition(p *plan.Plan, rng *rand.Rand) (plan.Position, bool) {
	rows, cols := p.Bounds()
	if rows == 0 || cols == 0 {
		return plan.Position{}, false
	}
	entrance, exit := p.Entrance(), p.Exit()
	for attempt := 0; attempt < 4*rows*cols; attempt++ {
		pos := plan.Position{Row: rng.IntN(rows), Col: rng.IntN(cols)}
		if pos != entrance && pos != exit {
			return pos, true
		}
	}
	return plan.Position{}, false
}
