// Package plan implements the floor-plan data model and connectivity
// engine: the grid of cells, the aisle catalog, shortest-path queries, and
// the mutation primitives (swap_cells, whole-aisle reassignment) that the
// neighborhood and optimizer packages build on.
package plan

import (
	"gonum.org/v1/gonum/graph/simple"
)

// AisleCatalogEntry is the construction-time input for one aisle: its
// display name, impulse propensity, and total product count. New copies
// each entry it uses into a fresh AisleInfo, so the caller's catalog map
// is never retained or mutated by the resulting Plan.
type AisleCatalogEntry struct {
	Name         string
	ImpulseIndex float64
	ProductCount int
}

// Plan is a fixed-size 2D grid of Cells plus the derived connectivity graph
// and aisle catalog. A zero Plan is not usable; construct one with New or
// derive one with Clone.
type Plan struct {
	rows, cols       int
	cells            []Cell // flat, row-major
	entrance, exit   Position
	aisleInfo        map[int]*AisleInfo
	graph            *simple.UndirectedGraph
}

// New builds a Plan from a rectangular integer matrix, an aisle catalog,
// and explicit entrance/exit coordinates, per spec §4.1. The matrix value
// at a cell is its aisle id; 0 means corridor; the entrance and exit
// coordinates are always forced walkable regardless of the matrix value
// there, since explicit fields override any sentinel encoding.
//
// New fails with a *MalformedLayoutError if the matrix is not rectangular,
// or if either coordinate is out of range.
func New(grid [][]int, catalog map[int]AisleCatalogEntry, entrance, exit Position) (*Plan, error) {
	rows := len(grid)
	if rows == 0 {
		return nil, malformed("grid has no rows")
	}
	cols := len(grid[0])
	if cols == 0 {
		return nil, malformed("grid has no columns")
	}
	for r, row := range grid {
		if len(row) != cols {
			return nil, malformed("row %d has %d columns, want %d", r, len(row), cols)
		}
	}
	if !inBounds(entrance, rows, cols) {
		return nil, malformed("entrance %v out of range for %dx%d grid", entrance, rows, cols)
	}
	if !inBounds(exit, rows, cols) {
		return nil, malformed("exit %v out of range for %dx%d grid", exit, rows, cols)
	}

	cells := make([]Cell, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cells[r*cols+c] = Cell{AisleID: grid[r][c]}
		}
	}
	cells[entrance.Row*cols+entrance.Col] = Cell{AisleID: 0, IsEntrance: true}
	cells[exit.Row*cols+exit.Col] = Cell{AisleID: 0, IsExit: true}

	aisleInfo := make(map[int]*AisleInfo)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			id := cells[r*cols+c].AisleID
			if id <= 0 {
				continue
			}
			info, ok := aisleInfo[id]
			if !ok {
				entry, known := catalog[id]
				if !known {
					return nil, malformed("aisle %d has no catalog entry", id)
				}
				info = &AisleInfo{
					Name:         entry.Name,
					ImpulseIndex: entry.ImpulseIndex,
					ProductCount: entry.ProductCount,
				}
				aisleInfo[id] = info
			}
			info.Cells = append(info.Cells, Position{Row: r, Col: c})
		}
	}
	for id, info := range aisleInfo {
		cellPtrs := make([]*Cell, len(info.Cells))
		for i, pos := range info.Cells {
			cellPtrs[i] = &cells[pos.Row*cols+pos.Col]
		}
		partitionProductRanges(info, cellPtrs)
		_ = id
	}

	p := &Plan{
		rows:      rows,
		cols:      cols,
		cells:     cells,
		entrance:  entrance,
		exit:      exit,
		aisleInfo: aisleInfo,
	}
	p.graph = buildGraph(rows, cols, cells)
	return p, nil
}

func inBounds(pos Position, rows, cols int) bool {
	return pos.Row >= 0 && pos.Row < rows && pos.Col >= 0 && pos.Col < cols
}

// Bounds returns the grid dimensions.
func (p *Plan) Bounds() (rows, cols int) {
	return p.rows, p.cols
}

// Entrance returns the entrance coordinate.
func (p *Plan) Entrance() Position {
	return p.entrance
}

// Exit returns the exit coordinate.
func (p *Plan) Exit() Position {
	return p.exit
}

// AisleInfo returns the catalog record for id, and whether it exists on
// this Plan. The returned pointer is this Plan's own record (Clone gives
// each copy its own AisleInfo); callers must not mutate it directly.
func (p *Plan) AisleInfo(id int) (*AisleInfo, bool) {
	info, ok := p.aisleInfo[id]
	return info, ok
}

// AisleIDs returns every aisle id present on the grid, in unspecified order.
func (p *Plan) AisleIDs() []int {
	ids := make([]int, 0, len(p.aisleInfo))
	for id := range p.aisleInfo {
		ids = append(ids, id)
	}
	return ids
}

// CellAt returns the cell at (row, col) and whether the coordinate is in
// range. Unlike the internal flat accessor, this never panics on bad input,
// since it is also reachable from outside the package.
func (p *Plan) CellAt(row, col int) (Cell, bool) {
	if !inBounds(Position{Row: row, Col: col}, p.rows, p.cols) {
		return Cell{}, false
	}
	return p.cells[row*p.cols+col], true
}

func (p *Plan) cellAt(pos Position) *Cell {
	return &p.cells[pos.Row*p.cols+pos.Col]
}

// NeighborsOf returns the 4-neighbors of pos whose aisle id is positive
// (shelf cells), optionally including the exit cell when includeExit is
// true (used while searching for the exit during shopping completion).
func (p *Plan) NeighborsOf(pos Position, includeExit bool) []Position {
	var out []Position
	for _, off := range neighborOffsets {
		n := pos.add(off)
		if !inBounds(n, p.rows, p.cols) {
			continue
		}
		cell := p.cells[n.Row*p.cols+n.Col]
		if cell.IsShelf() || (includeExit && cell.IsExit) {
			out = append(out, n)
		}
	}
	return out
}

// IsConnected reports whether the entrance can reach the exit.
func (p *Plan) IsConnected() bool {
	return isConnected(p.graph, nodeID(p.entrance.Row, p.entrance.Col, p.cols), nodeID(p.exit.Row, p.exit.Col, p.cols))
}

// Validate checks invariants 1-3 from spec §3: exactly one entrance and
// exit (guaranteed by the type, since New accepts exactly one pair, and
// swap_cells refuses to touch either), full connectivity (entrance, exit
// and every walkable cell in one component), and every shelf cell having
// at least one walkable neighbor. It returns false rather than an error;
// callers decide whether to revert a rejected mutation.
func (p *Plan) Validate() bool {
	if !p.IsConnected() {
		return false
	}
	reached := map[Position]bool{p.entrance: true}
	for queue := []Position{p.entrance}; len(queue) > 0; queue = queue[1:] {
		for _, off := range neighborOffsets {
			n := queue[0].add(off)
			if inBounds(n, p.rows, p.cols) && !reached[n] && p.cellAt(n).IsWalkable() {
				reached[n] = true
				queue = append(queue, n)
			}
		}
	}
	for r := 0; r < p.rows; r++ {
		for c := 0; c < p.cols; c++ {
			cell := p.cells[r*p.cols+c]
			if !cell.IsShelf() {
				if !reached[Position{Row: r, Col: c}] {
					return false
				}
				continue
			}
			reachable := false
			for _, off := range neighborOffsets {
				n := Position{Row: r + off.Row, Col: c + off.Col}
				if !inBounds(n, p.rows, p.cols) {
					continue
				}
				if p.cells[n.Row*p.cols+n.Col].IsWalkable() {
					reachable = true
					break
				}
			}
			if !reachable {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy suitable for independent mutation: the cell
// array, the aisle catalog (every AisleInfo and its Cells slice), and the
// connectivity graph are all copied, so mutating the clone never affects
// the original.
func (p *Plan) Clone() *Plan {
	cells := make([]Cell, len(p.cells))
	copy(cells, p.cells)

	aisleInfo := make(map[int]*AisleInfo, len(p.aisleInfo))
	for id, info := range p.aisleInfo {
		cellsCopy := make([]Position, len(info.Cells))
		copy(cellsCopy, info.Cells)
		aisleInfo[id] = &AisleInfo{
			Name:         info.Name,
			ImpulseIndex: info.ImpulseIndex,
			ProductCount: info.ProductCount,
			Cells:        cellsCopy,
		}
	}

	q := &Plan{
		rows:      p.rows,
		cols:      p.cols,
		cells:     cells,
		entrance:  p.entrance,
		exit:      p.exit,
		aisleInfo: aisleInfo,
	}
	q.graph = buildGraph(q.rows, q.cols, q.cells)
	return q
}

// Matrix returns the raw aisle-id matrix in row-major order, as used by
// the optimizer's fingerprint: entrance and exit cells carry AisleID 0,
// the same as any other corridor cell.
func (p *Plan) Matrix() []int {
	out := make([]int, len(p.cells))
	for i, cell := range p.cells {
		out[i] = cell.AisleID
	}
	return out
}

// ArchiveMatrix returns the matrix in the §6 serialized form: entrance and
// exit cells are encoded as the legacy sentinels -1 and -2 respectively,
// matching the input contract catalog.DecodeLayout accepts, so a grid that
// round-trips through an Archive reads back the way it was written.
func (p *Plan) ArchiveMatrix() []int {
	out := p.Matrix()
	out[p.entrance.Row*p.cols+p.entrance.Col] = -1
	out[p.exit.Row*p.cols+p.exit.Col] = -2
	return out
}
