// Package catalog decodes the JSON input contract described in spec §6:
// the aisle catalog, the layout grid, and customer shopping lists. It is
// the only place that decodes the legacy negative-sentinel encoding for
// entrance/exit; package plan builds and mutates plans from the explicit
// entrance/exit flags described by spec §9's resolved open question, and
// only writes the sentinels back out in Plan.ArchiveMatrix.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/shopfloor/tabu/plan"
)

const (
	legacyEntranceMarker = -1
	legacyExitMarker     = -2
)

// aisleCatalogEntryJSON mirrors one value of the aisle catalog object.
// Unknown fields are ignored, per spec §6.
type aisleCatalogEntryJSON struct {
	Name         string  `json:"aisle_name"`
	ImpulseIndex float64 `json:"impulse_index"`
	ProductCount int     `json:"product_count"`
}

// DecodeAisleCatalog parses the aisle catalog JSON object keyed by aisle id
// string.
func DecodeAisleCatalog(r io.Reader) (map[int]plan.AisleCatalogEntry, error) {
	var raw map[string]aisleCatalogEntryJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode aisle catalog: %w", err)
	}
	out := make(map[int]plan.AisleCatalogEntry, len(raw))
	for key, entry := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("decode aisle catalog: aisle id %q is not an integer: %w", key, err)
		}
		out[id] = plan.AisleCatalogEntry{
			Name:         entry.Name,
			ImpulseIndex: entry.ImpulseIndex,
			ProductCount: entry.ProductCount,
		}
	}
	return out, nil
}

// layoutJSON mirrors the layout input object from spec §6.
type layoutJSON struct {
	Rows     int     `json:"rows"`
	Cols     int     `json:"cols"`
	Grid     [][]int `json:"grid"`
	Entrance *[2]int `json:"entrance"`
	Exit     *[2]int `json:"exit"`
}

// Layout is the decoded form of the layout input: a cleaned grid (legacy
// sentinels replaced by corridor) plus the resolved entrance and exit
// coordinates.
type Layout struct {
	Grid     [][]int
	Entrance plan.Position
	Exit     plan.Position
}

// DecodeLayout parses the layout JSON object. Explicit entrance/exit
// fields override legacy -1/-2 sentinel markers found in the grid; if
// neither an explicit field nor a legacy marker identifies a coordinate,
// DecodeLayout returns an error satisfying errors.Is(err,
// plan.ErrMalformedLayout).
func DecodeLayout(r io.Reader) (Layout, error) {
	var raw layoutJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	if len(raw.Grid) != raw.Rows {
		return Layout{}, plan.ErrMalformedLayout
	}
	for _, row := range raw.Grid {
		if len(row) != raw.Cols {
			return Layout{}, plan.ErrMalformedLayout
		}
	}

	entrance, exit, foundEntrance, foundExit := locateLegacyMarkers(raw.Grid)

	if raw.Entrance != nil {
		entrance = plan.Position{Row: raw.Entrance[0], Col: raw.Entrance[1]}
		foundEntrance = true
	}
	if raw.Exit != nil {
		exit = plan.Position{Row: raw.Exit[0], Col: raw.Exit[1]}
		foundExit = true
	}
	if !foundEntrance || !foundExit {
		return Layout{}, plan.ErrMalformedLayout
	}

	grid := make([][]int, raw.Rows)
	for r, row := range raw.Grid {
		cleaned := make([]int, raw.Cols)
		for c, v := range row {
			if v == legacyEntranceMarker || v == legacyExitMarker {
				v = 0
			}
			cleaned[c] = v
		}
		grid[r] = cleaned
	}

	return Layout{Grid: grid, Entrance: entrance, Exit: exit}, nil
}

func locateLegacyMarkers(grid [][]int) (entrance, exit plan.Position, foundEntrance, foundExit bool) {
	for r, row := range grid {
		for c, v := range row {
			switch v {
			case legacyEntranceMarker:
				entrance, foundEntrance = plan.Position{Row: r, Col: c}, true
			case legacyExitMarker:
				exit, foundExit = plan.Position{Row: r, Col: c}, true
			}
		}
	}
	return entrance, exit, foundEntrance, foundExit
}

// DecodeShoppingLists parses an array of arrays of positive aisle ids, one
// shopping list per customer.
func DecodeShoppingLists(r io.Reader) ([][]int, error) {
	var out [][]int
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode shopping lists: %w", err)
	}
	for i, list := range out {
		for _, id := range list {
			if id <= 0 {
				return nil, fmt.Errorf("decode shopping lists: list %d has non-positive aisle id %d", i, id)
			}
		}
	}
	return out, nil
}

// BuildPlan decodes a layout and catalog together and constructs a Plan in
// one step, the common case for a driver bootstrapping a trajectory.
func BuildPlan(layoutR, catalogR io.Reader) (*plan.Plan, error) {
	layout, err := DecodeLayout(layoutR)
	if err != nil {
		return nil, err
	}
	entries, err := DecodeAisleCatalog(catalogR)
	if err != nil {
		return nil, err
	}
	return plan.New(layout.Grid, entries, layout.Entrance, layout.Exit)
}
