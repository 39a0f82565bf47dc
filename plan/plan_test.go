package plan_test

import (
	"testing"

	"github.com/shopfloor/tabu/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trivialCatalog() map[int]plan.AisleCatalogEntry {
	return map[int]plan.AisleCatalogEntry{
		7: {Name: "snacks", ImpulseIndex: 0, ProductCount: 1},
	}
}

// a 3x3 plan: entrance (0,0), exit (2,2), single shelf at (1,1) aisle 7.
func trivialPlan(t *testing.T) *plan.Plan {
	t.Helper()
	grid := [][]int{
		{0, 0, 0},
		{0, 7, 0},
		{0, 0, 0},
	}
	p, err := plan.New(grid, trivialCatalog(), plan.Position{Row: 0, Col: 0}, plan.Position{Row: 2, Col: 2})
	require.NoError(t, err)
	return p
}

func TestNewRejectsRaggedGrid(t *testing.T) {
	grid := [][]int{
		{0, 0},
		{0},
	}
	_, err := plan.New(grid, trivialCatalog(), plan.Position{}, plan.Position{Row: 1, Col: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, plan.ErrMalformedLayout)
}

func TestNewRejectsOutOfRangeEntrance(t *testing.T) {
	grid := [][]int{{0, 0}, {0, 0}}
	_, err := plan.New(grid, trivialCatalog(), plan.Position{Row: 5, Col: 5}, plan.Position{Row: 1, Col: 1})
	require.Error(t, err)
}

func TestNewPartitionsProductRanges(t *testing.T) {
	grid := [][]int{
		{0, 0, 0},
		{0, 7, 7},
		{0, 0, 0},
	}
	catalog := map[int]plan.AisleCatalogEntry{
		7: {Name: "snacks", ImpulseIndex: 0.2, ProductCount: 5},
	}
	p, err := plan.New(grid, catalog, plan.Position{Row: 0, Col: 0}, plan.Position{Row: 2, Col: 2})
	require.NoError(t, err)

	info, ok := p.AisleInfo(7)
	require.True(t, ok)
	require.Len(t, info.Cells, 2)

	lo, hi := coverage(t, p, info)
	assert.Equal(t, 0, lo)
	assert.Equal(t, info.ProductCount+1, hi)
}

// coverage walks every cell of an aisle and confirms the union of product
// ranges covers [0, ProductCount+1) with no overlap, per the invariant in
// spec §8.
func coverage(t *testing.T, p *plan.Plan, info *plan.AisleInfo) (lo, hi int) {
	t.Helper()
	seen := make(map[int]bool)
	lo = info.ProductCount + 1
	hi = 0
	for _, pos := range info.Cells {
		cell, ok := p.CellAt(pos.Row, pos.Col)
		require.True(t, ok)
		for id := cell.ProductLo; id < cell.ProductHi; id++ {
			require.False(t, seen[id], "product id %d covered by two cells", id)
			seen[id] = true
		}
		if cell.ProductLo < lo {
			lo = cell.ProductLo
		}
		if cell.ProductHi > hi {
			hi = cell.ProductHi
		}
	}
	return lo, hi
}

func TestValidateTrivialPlan(t *testing.T) {
	p := trivialPlan(t)
	assert.True(t, p.Validate())
	assert.True(t, p.IsConnected())
}

func TestShortestPathLengthMatchesBFSDistance(t *testing.T) {
	p := trivialPlan(t)
	path, ok := p.ShortestPath(plan.Position{Row: 0, Col: 0}, plan.Position{Row: 2, Col: 2})
	require.True(t, ok)
	// BFS distance from (0,0) to (2,2) around the center shelf is 4.
	assert.Len(t, path, 5)
	assert.Equal(t, plan.Position{Row: 0, Col: 0}, path[0])
	assert.Equal(t, plan.Position{Row: 2, Col: 2}, path[len(path)-1])
	for i := 1; i < len(path); i++ {
		dr := path[i].Row - path[i-1].Row
		dc := path[i].Col - path[i-1].Col
		assert.Equal(t, 1, abs(dr)+abs(dc), "path step %d is not 4-connected", i)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func TestShortestPathUnwalkableEndpointFails(t *testing.T) {
	p := trivialPlan(t)
	_, ok := p.ShortestPath(plan.Position{Row: 0, Col: 0}, plan.Position{Row: 1, Col: 1})
	assert.False(t, ok)
}

func TestSwapCellsRefusesEntranceExit(t *testing.T) {
	p := trivialPlan(t)
	err := p.SwapCells(plan.Position{Row: 0, Col: 0}, plan.Position{Row: 1, Col: 1})
	assert.ErrorIs(t, err, plan.ErrEntranceExitImmutable)
}

func TestSwapCellsInverseRestoresMatrix(t *testing.T) {
	p := trivialPlan(t)
	before := p.Matrix()

	a := plan.Position{Row: 1, Col: 1}
	b := plan.Position{Row: 0, Col: 1}
	require.NoError(t, p.SwapCells(a, b))
	require.NoError(t, p.SwapCells(a, b))

	after := p.Matrix()
	assert.Equal(t, before, after)
}

func TestCloneIsIndependent(t *testing.T) {
	p := trivialPlan(t)
	q := p.Clone()
	require.NoError(t, q.SwapCells(plan.Position{Row: 1, Col: 1}, plan.Position{Row: 0, Col: 1}))
	assert.NotEqual(t, p.Matrix(), q.Matrix())
}

func TestCloneDeepCopiesAisleInfo(t *testing.T) {
	p := trivialPlan(t)
	q := p.Clone()

	pInfo, ok := p.AisleInfo(7)
	require.True(t, ok)
	qInfo, ok := q.AisleInfo(7)
	require.True(t, ok)
	assert.NotSame(t, pInfo, qInfo, "Clone must give each Plan its own AisleInfo")

	qInfo.Cells[0] = plan.Position{Row: 9, Col: 9}
	pInfoAfter, _ := p.AisleInfo(7)
	assert.NotEqual(t, qInfo.Cells, pInfoAfter.Cells, "mutating the clone's AisleInfo must not affect the original")
}

func TestMatrixEncodesRawAisleIDAtEntranceExit(t *testing.T) {
	p := trivialPlan(t)
	m := p.Matrix()
	assert.Equal(t, 0, m[0])
	assert.Equal(t, 0, m[len(m)-1])
}

func TestStringRendersASCIIGrid(t *testing.T) {
	p := trivialPlan(t)
	want := "E..\n.#.\n..X\n"
	assert.Equal(t, want, p.String())
}

func TestArchiveMatrixEncodesSentinels(t *testing.T) {
	p := trivialPlan(t)
	m := p.ArchiveMatrix()
	assert.Equal(t, -1, m[0], "entrance must be encoded as -1")
	assert.Equal(t, -2, m[len(m)-1], "exit must be encoded as -2")

	// every other cell is unchanged from Matrix.
	raw := p.Matrix()
	for i := 1; i < len(m)-1; i++ {
		assert.Equal(t, raw[i], m[i])
	}
}
