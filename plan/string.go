package plan

import "strings"

// String renders the plan as an ASCII grid for debug logging (not a
// visualizer, which remains out of scope per spec §1): '#' for a shelf
// cell, '.' for corridor, 'E' for the entrance, 'X' for the exit —
// matching original_source/core/grid.py's own ASCII dump.
func (p *Plan) String() string {
	var b strings.Builder
	b.Grow(p.rows * (p.cols + 1))
	for r := 0; r < p.rows; r++ {
		for c := 0; c < p.cols; c++ {
			cell := p.cells[r*p.cols+c]
			switch {
			case cell.IsEntrance:
				b.WriteByte('E')
			case cell.IsExit:
				b.WriteByte('X')
			case cell.IsShelf():
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
