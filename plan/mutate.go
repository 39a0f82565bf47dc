package plan

import "errors"

// ErrEntranceExitImmutable is returned by SwapCells when either position is
// the entrance or exit cell, per invariant 5.
var ErrEntranceExitImmutable = errors.New("entrance and exit cells cannot be swapped")

// SwapCells exchanges the shelf-relevant contents (aisle id and product id
// range) of two cells. Neither position may be the entrance or exit cell.
// The connectivity graph is rebuilt afterward, since walkability may have
// changed at either position; callers validate before trusting the result.
func (p *Plan) SwapCells(a, b Position) error {
	if !inBounds(a, p.rows, p.cols) || !inBounds(b, p.rows, p.cols) {
		return malformed("swap position out of range")
	}
	ca, cb := p.cellAt(a), p.cellAt(b)
	if ca.IsEntrance || ca.IsExit || cb.IsEntrance || cb.IsExit {
		return ErrEntranceExitImmutable
	}

	aID, bID := ca.AisleID, cb.AisleID
	ca.AisleID, cb.AisleID = bID, aID
	ca.ProductLo, cb.ProductLo = cb.ProductLo, ca.ProductLo
	ca.ProductHi, cb.ProductHi = cb.ProductHi, ca.ProductHi

	p.relocateAisleCell(aID, a, b)
	p.relocateAisleCell(bID, b, a)

	p.graph = buildGraph(p.rows, p.cols, p.cells)
	return nil
}

// relocateAisleCell patches an AisleInfo's Cells slice to reflect that the
// cell formerly at from now lives at to, for the aisle id that occupied
// that position before the swap. id <= 0 (plain corridor) has no catalog
// entry and is a no-op.
func (p *Plan) relocateAisleCell(id int, from, to Position) {
	if id <= 0 {
		return
	}
	info, ok := p.aisleInfo[id]
	if !ok {
		return
	}
	for i, pos := range info.Cells {
		if pos == from {
			info.Cells[i] = to
			return
		}
	}
}

// ReassignWholeAisles exchanges the aisle id of every cell belonging to
// aisle idA with every cell belonging to aisle idB. Cell positions stay
// fixed; only the identity painted on them changes. Both aisles must have
// the same cell count (the neighborhood package enforces this before
// calling). Product id ranges are recomputed for both aisles afterward, to
// preserve invariant 4 under the new cell assignment, resolving the open
// question in spec §9.
func (p *Plan) ReassignWholeAisles(idA, idB int) error {
	infoA, okA := p.aisleInfo[idA]
	infoB, okB := p.aisleInfo[idB]
	if !okA || !okB {
		return malformed("unknown aisle id in whole-aisle swap")
	}
	if len(infoA.Cells) != len(infoB.Cells) {
		return malformed("whole-aisle swap requires equal cell counts")
	}

	for _, pos := range infoA.Cells {
		p.cellAt(pos).AisleID = idB
	}
	for _, pos := range infoB.Cells {
		p.cellAt(pos).AisleID = idA
	}
	infoA.Cells, infoB.Cells = infoB.Cells, infoA.Cells

	cellPtrsA := make([]*Cell, len(infoA.Cells))
	for i, pos := range infoA.Cells {
		cellPtrsA[i] = p.cellAt(pos)
	}
	partitionProductRanges(infoA, cellPtrsA)

	cellPtrsB := make([]*Cell, len(infoB.Cells))
	for i, pos := range infoB.Cells {
		cellPtrsB[i] = p.cellAt(pos)
	}
	partitionProductRanges(infoB, cellPtrsB)

	p.graph = buildGraph(p.rows, p.cols, p.cells)
	return nil
}
