package catalog_test

import (
	"strings"
	"testing"

	"github.com/shopfloor/tabu/catalog"
	"github.com/shopfloor/tabu/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAisleCatalog(t *testing.T) {
	r := strings.NewReader(`{
		"7": {"aisle_name": "snacks", "impulse_index": 0.3, "product_count": 12, "unknown_field": "ignored"}
	}`)
	entries, err := catalog.DecodeAisleCatalog(r)
	require.NoError(t, err)
	require.Contains(t, entries, 7)
	assert.Equal(t, "snacks", entries[7].Name)
	assert.Equal(t, 0.3, entries[7].ImpulseIndex)
	assert.Equal(t, 12, entries[7].ProductCount)
}

func TestDecodeLayoutLegacyMarkers(t *testing.T) {
	r := strings.NewReader(`{
		"rows": 3, "cols": 3,
		"grid": [[-1,0,0],[0,7,0],[0,0,-2]]
	}`)
	layout, err := catalog.DecodeLayout(r)
	require.NoError(t, err)
	assert.Equal(t, plan.Position{Row: 0, Col: 0}, layout.Entrance)
	assert.Equal(t, plan.Position{Row: 2, Col: 2}, layout.Exit)
	assert.Equal(t, 0, layout.Grid[0][0])
	assert.Equal(t, 0, layout.Grid[2][2])
	assert.Equal(t, 7, layout.Grid[1][1])
}

func TestDecodeLayoutExplicitFieldsOverrideLegacyMarkers(t *testing.T) {
	r := strings.NewReader(`{
		"rows": 2, "cols": 2,
		"grid": [[-1,0],[0,-2]],
		"entrance": [1,0],
		"exit": [0,1]
	}`)
	layout, err := catalog.DecodeLayout(r)
	require.NoError(t, err)
	assert.Equal(t, plan.Position{Row: 1, Col: 0}, layout.Entrance)
	assert.Equal(t, plan.Position{Row: 0, Col: 1}, layout.Exit)
}

func TestDecodeLayoutMissingEntranceFails(t *testing.T) {
	r := strings.NewReader(`{"rows": 2, "cols": 2, "grid": [[0,0],[0,0]]}`)
	_, err := catalog.DecodeLayout(r)
	require.Error(t, err)
	assert.ErrorIs(t, err, plan.ErrMalformedLayout)
}

func TestDecodeShoppingLists(t *testing.T) {
	r := strings.NewReader(`[[1,2,3],[4]]`)
	lists, err := catalog.DecodeShoppingLists(r)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2, 3}, {4}}, lists)
}

func TestDecodeShoppingListsRejectsNonPositive(t *testing.T) {
	r := strings.NewReader(`[[1,0]]`)
	_, err := catalog.DecodeShoppingLists(r)
	require.Error(t, err)
}

func TestBuildPlanEndToEnd(t *testing.T) {
	layoutR := strings.NewReader(`{
		"rows": 3, "cols": 3,
		"grid": [[0,0,0],[0,7,0],[0,0,0]],
		"entrance": [0,0],
		"exit": [2,2]
	}`)
	catalogR := strings.NewReader(`{"7": {"aisle_name": "snacks", "impulse_index": 0, "product_count": 1}}`)
	p, err := catalog.BuildPlan(layoutR, catalogR)
	require.NoError(t, err)
	assert.True(t, p.Validate())
}
