// Package simulate implements the stochastic customer simulator: given a
// Plan and a shopping list, it walks a customer from entrance to exit,
// fulfilling as much of the list as the plan permits while recording
// impulse purchases triggered by shelf adjacency along the route. It never
// mutates the Plan it is given.
package simulate

import (
	"math/rand/v2"

	"github.com/shopfloor/tabu/plan"
)

// Request is one customer's shopping list, plus the supplemental spend cap
// described in SPEC_FULL.md (drawn from the original source's budgeted
// customer variant). A zero SpendLimit means unlimited.
type Request struct {
	AisleIDs   []int
	SpendLimit int
}

// Result is the outcome of one simulated customer visit.
type Result struct {
	// Path is the full route walked, from entrance to exit, with
	// intermediate segments de-duplicated at their shared endpoints.
	Path []plan.Position

	ImpulseCount   int
	ImpulseShelves map[plan.Position]bool
}

// Simulate runs one customer through plan. rng is consumed for both
// product-id resolution and impulse-purchase draws; callers seed one rng
// per customer per iteration to keep cohort simulation reproducible and
// parallelizable (spec §5, §9).
func Simulate(p *plan.Plan, req Request, rng *rand.Rand) (Result, error) {
	if !p.IsConnected() {
		return Result{}, plan.ErrUnreachableEntrance
	}
	start := p.Entrance()

	pending := resolvePendingProducts(p, req.AisleIDs, rng)

	s := &session{
		plan:           p,
		pending:        pending,
		visitedShelves: make(map[plan.Position]bool),
		impulseShelves: make(map[plan.Position]bool),
		spendLimit:     req.SpendLimit,
	}
	s.path = []plan.Position{start}
	current := start

	for len(s.pending) > 0 {
		approach, target, found := p.FindShelfApproach(current, s.visitedShelves, s.acceptPending)
		if !found {
			break
		}

		segment, ok := p.ShortestPath(current, approach)
		if !ok {
			break
		}
		s.appendSegmentAndCheckImpulses(segment, rng)

		targetAisleID := mustCellAt(p, target).AisleID
		if s.tryFulfill(target, targetAisleID) {
			s.visitedShelves = make(map[plan.Position]bool)
			current = approach
		} else {
			s.visitedShelves[target] = true
		}
	}

	exitApproach, found := p.FindExitApproach(current)
	if found {
		segment, ok := p.ShortestPath(current, exitApproach)
		if ok {
			s.appendSegmentAndCheckImpulses(segment, rng)
		}
		if exitApproach != p.Exit() {
			s.path = append(s.path, p.Exit())
		}
	}

	return Result{
		Path:           s.path,
		ImpulseCount:   s.impulseCount,
		ImpulseShelves: s.impulseShelves,
	}, nil
}

// session carries the mutable per-simulation state described in spec §9:
// the pending product ids grouped by aisle, the shelves tried-and-emptied
// since the last success, and the shelves that have already fired an
// impulse purchase (permanent for the simulation).
type session struct {
	plan *plan.Plan

	pending        map[int][]int
	visitedShelves map[plan.Position]bool
	impulseShelves map[plan.Position]bool

	path         []plan.Position
	impulseCount int
	spend        int
	spendLimit   int
}

func (s *session) acceptPending(aisleID int) bool {
	return len(s.pending[aisleID]) > 0
}

// tryFulfill removes the first pending product id for aisleID that falls
// within the target cell's product range. On success it clears the
// visited-shelves set (new targets become reachable) and returns true.
func (s *session) tryFulfill(target plan.Position, aisleID int) bool {
	cell := mustCellAt(s.plan, target)
	ids := s.pending[aisleID]
	for i, id := range ids {
		if cell.HasProduct(id) {
			s.pending[aisleID] = append(ids[:i], ids[i+1:]...)
			if len(s.pending[aisleID]) == 0 {
				delete(s.pending, aisleID)
			}
			return true
		}
	}
	return false
}

// appendSegmentAndCheckImpulses appends segment (excluding its first cell,
// the customer's current position, which s.path already holds from when
// the customer arrived there; after a failed fulfillment attempt s.path
// ends at that attempt's approach cell instead) and, for every cell of the
// segment, checks each shelf neighbor for an impulse purchase.
func (s *session) appendSegmentAndCheckImpulses(segment []plan.Position, rng *rand.Rand) {
	for i, pos := range segment {
		if i > 0 {
			s.path = append(s.path, pos)
		}
		s.checkImpulses(pos, rng)
	}
}

func (s *session) checkImpulses(pos plan.Position, rng *rand.Rand) {
	if s.spendLimit > 0 && s.spend >= s.spendLimit {
		return
	}
	for _, shelf := range s.plan.NeighborsOf(pos, false) {
		if s.impulseShelves[shelf] {
			continue
		}
		cell := mustCellAt(s.plan, shelf)
		info, ok := s.plan.AisleInfo(cell.AisleID)
		if !ok {
			continue
		}
		if rng.Float64() < info.ImpulseIndex {
			s.impulseCount++
			s.impulseShelves[shelf] = true
			s.spend++
			if s.spendLimit > 0 && s.spend >= s.spendLimit {
				return
			}
		}
	}
}

// resolvePendingProducts draws one product id per occurrence of an aisle
// id present on the plan, uniformly from [1, aisle.ProductCount]. Aisle
// ids absent from the plan are silently skipped (spec §4.2, §7).
func resolvePendingProducts(p *plan.Plan, aisleIDs []int, rng *rand.Rand) map[int][]int {
	pending := make(map[int][]int)
	for _, id := range aisleIDs {
		info, ok := p.AisleInfo(id)
		if !ok || info.ProductCount <= 0 {
			continue
		}
		productID := 1 + rng.IntN(info.ProductCount)
		pending[id] = append(pending[id], productID)
	}
	return pending
}

func mustCellAt(p *plan.Plan, pos plan.Position) plan.Cell {
	cell, _ := p.CellAt(pos.Row, pos.Col)
	return cell
}
