package neighborhood_test

import (
	"math/rand/v2"
	"testing"

	"github.com/shopfloor/tabu/neighborhood"
	"github.com/shopfloor/tabu/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rng(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func catalogWithAisles(ids ...int) map[int]plan.AisleCatalogEntry {
	out := make(map[int]plan.AisleCatalogEntry)
	for _, id := range ids {
		out[id] = plan.AisleCatalogEntry{Name: "x", ImpulseIndex: 0.1, ProductCount: 4}
	}
	return out
}

func gridPlan(t *testing.T) *plan.Plan {
	t.Helper()
	grid := [][]int{
		{0, 0, 0, 0, 0},
		{0, 1, 0, 2, 0},
		{0, 1, 0, 2, 0},
		{0, 0, 0, 0, 0},
	}
	p, err := plan.New(grid, catalogWithAisles(1, 2), plan.Position{Row: 0, Col: 0}, plan.Position{Row: 3, Col: 4})
	require.NoError(t, err)
	return p
}

func TestGenerateProducesValidCandidates(t *testing.T) {
	p := gridPlan(t)
	candidates, err := neighborhood.Generate(p, 10, 1, neighborhood.Options{}, rng(1))
	require.NoError(t, err)
	require.NotEmpty(t, candidates)
	for _, c := range candidates {
		assert.True(t, c.Validate())
		assert.True(t, c.IsConnected())
	}
}

func TestGenerateNeverTouchesEntranceOrExit(t *testing.T) {
	p := gridPlan(t)
	candidates, err := neighborhood.Generate(p, 20, 2, neighborhood.Options{AllowWalkableSwap: true}, rng(2))
	require.NoError(t, err)
	for _, c := range candidates {
		assert.True(t, c.Validate())
	}
}

// A single-cell-wide corridor: any swap that would sever it is rejected
// and reverted. Generation never modifies the base plan, and any candidate
// it does return is valid.
func TestSwapValidationRejectsCorridorBlockingSwap(t *testing.T) {
	grid := [][]int{
		{0, 1, 1},
		{0, 1, 1},
		{0, 1, 1},
	}
	p, err := plan.New(grid, catalogWithAisles(1), plan.Position{Row: 0, Col: 0}, plan.Position{Row: 2, Col: 0})
	require.NoError(t, err)
	before := p.Matrix()

	candidates, err := neighborhood.Generate(p, 5, 1, neighborhood.Options{AllowWalkableSwap: true}, rng(3))
	if err == nil {
		for _, c := range candidates {
			assert.True(t, c.Validate())
		}
	}
	assert.Equal(t, before, p.Matrix(), "base plan must be unmodified by generation")
}

func TestWholeAisleSwapPreservesProductCoverage(t *testing.T) {
	p := gridPlan(t)
	candidates, err := neighborhood.Generate(p, 10, 1, neighborhood.Options{SwapWholeAisles: true}, rng(4))
	require.NoError(t, err)
	for _, c := range candidates {
		for _, id := range c.AisleIDs() {
			info, ok := c.AisleInfo(id)
			require.True(t, ok)
			seen := make(map[int]bool)
			for _, pos := range info.Cells {
				cell, _ := c.CellAt(pos.Row, pos.Col)
				for pid := cell.ProductLo; pid < cell.ProductHi; pid++ {
					assert.False(t, seen[pid])
					seen[pid] = true
				}
			}
			assert.Len(t, seen, info.ProductCount+1, "aisle %d must cover [0, ProductCount+1)", id)
		}
	}
}
