package plan

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// buildGraph derives the walkability graph from the current cell grid. Per
// the redesign in spec §9, the graph is rebuilt at mutation/validation time
// rather than incrementally patched, which is cheap relative to a BFS and
// keeps the cached graph trivially consistent with the cell array.
//
// gonum's node ids are not ordered the way the spec's fixed up/down/left/
// right neighbor enumeration requires, so the graph here backs only
// order-insensitive queries (connectivity); ShortestPath, FindShelfApproach
// and FindExitApproach walk the grid directly to guarantee a deterministic
// tie-break.
func buildGraph(rows, cols int, cells []Cell) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			idx := r*cols + c
			if !cells[idx].IsWalkable() {
				continue
			}
			g.AddNode(simple.Node(nodeID(r, c, cols)))
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			idx := r*cols + c
			if !cells[idx].IsWalkable() {
				continue
			}
			from := nodeID(r, c, cols)
			for _, off := range neighborOffsets {
				nr, nc := r+off.Row, c+off.Col
				if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
					continue
				}
				if !cells[nr*cols+nc].IsWalkable() {
					continue
				}
				to := nodeID(nr, nc, cols)
				if !g.HasEdgeBetween(from, to) {
					g.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
				}
			}
		}
	}
	return g
}

func nodeID(row, col, cols int) int64 {
	return int64(row*cols + col)
}

// isConnected reports whether start can reach end via the graph g.
func isConnected(g graph.Graph, start, end int64) bool {
	if g.Node(start) == nil || g.Node(end) == nil {
		return false
	}
	var bf traverse.BreadthFirst
	found := bf.Walk(g, g.Node(start), func(n graph.Node, _ int) bool {
		return n.ID() == end
	})
	return found != nil
}
