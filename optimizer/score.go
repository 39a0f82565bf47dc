package optimizer

import (
	"math/rand/v2"

	"github.com/shopfloor/tabu/plan"
	"github.com/shopfloor/tabu/simulate"
	"golang.org/x/sync/errgroup"
)

// customerSeed derives a deterministic, counter-based per-customer seed
// from the trajectory seed, the evaluation counter (one per plan scored
// across the whole trajectory), and the customer's index in the cohort.
// Per spec §9, this lets cohort simulation parallelize across goroutines
// without shared RNG state, while staying reproducible for a fixed seed.
func customerSeed(trajectorySeed, evalID, customerIndex uint64) uint64 {
	const mix = 0x9E3779B97F4A7C15 // golden-ratio constant, standard splitmix seed spread
	return trajectorySeed ^ (evalID * mix) ^ (customerIndex*mix + 1)
}

// scorePlan evaluates p against every customer in cohort, in parallel
// bounded by workers, and returns the aggregate score plus the
// min-max-normalized walk and impulse heatmaps (spec §4.4). Each
// customer's walk/impulse counts accumulate into a per-goroutine-local
// Heatmap, merged after the cohort completes (spec §5).
func scorePlan(p *plan.Plan, cohort []simulate.Request, trajectorySeed uint64, evalID uint64, workers int) (Score, Heatmap, Heatmap, error) {
	rows, cols := p.Bounds()
	n := len(cohort)
	if n == 0 {
		return Score{}, newHeatmap(rows, cols), newHeatmap(rows, cols), nil
	}

	aVals := make([]float64, n)
	sVals := make([]float64, n)
	walkBuffers := make([]Heatmap, n)
	impulseBuffers := make([]Heatmap, n)

	g := new(errgroup.Group)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := range cohort {
		i := i
		g.Go(func() error {
			req := cohort[i]
			rng := rand.New(rand.NewPCG(trajectorySeed, customerSeed(trajectorySeed, evalID, uint64(i))))
			result, err := simulate.Simulate(p, req, rng)
			if err != nil {
				return err
			}

			listLen := len(req.AisleIDs)
			wh := newHeatmap(rows, cols)
			for _, pos := range result.Path {
				wh.add(pos, 1)
			}
			walkBuffers[i] = wh

			ih := newHeatmap(rows, cols)
			for shelf := range result.ImpulseShelves {
				ih.add(shelf, 1)
			}
			impulseBuffers[i] = ih

			if listLen > 0 {
				aVals[i] = float64(result.ImpulseCount) / float64(listLen)
				sVals[i] = float64(len(result.Path)) / float64(listLen)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Score{}, Heatmap{}, Heatmap{}, err
	}

	walk := newHeatmap(rows, cols)
	impulse := newHeatmap(rows, cols)
	var totalA, totalS, totalScore float64
	for i := range cohort {
		walk.merge(walkBuffers[i])
		impulse.merge(impulseBuffers[i])
		totalA += aVals[i]
		totalS += sVals[i]
		totalScore += aVals[i] - sVals[i]
	}
	count := float64(n)
	score := Score{
		TotalScore:        totalScore / count,
		AdjustedPurchases: totalA / count,
		AdjustedSteps:     totalS / count,
	}
	return score, walk.normalize(), impulse.normalize(), nil
}

// scoredCandidate pairs a candidate plan with its batch index (for the
// deterministic tie-break rule in spec §5), its score, and the heatmaps
// produced while scoring it.
type scoredCandidate struct {
	index    int
	plan     *plan.Plan
	score    Score
	walk     Heatmap
	impulse  Heatmap
}

// scoreBatch scores every candidate in parallel, bounded by workers, and
// returns results indexed identically to candidates so the caller can
// break score ties by lowest index deterministically. It also returns the
// batch's ScoreStats, one partial per goroutine merged after g.Wait, so a
// caller can track a trajectory's candidate-score distribution without an
// extra pass over the results.
func scoreBatch(candidates []*plan.Plan, cohort []simulate.Request, trajectorySeed uint64, evalIDBase uint64, workers int) ([]scoredCandidate, ScoreStats, error) {
	out := make([]scoredCandidate, len(candidates))
	partials := make([]ScoreStats, len(candidates))
	g := new(errgroup.Group)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, candidate := range candidates {
		i, candidate := i, candidate
		g.Go(func() error {
			score, walk, impulse, err := scorePlan(candidate, cohort, trajectorySeed, evalIDBase+uint64(i), workers)
			if err != nil {
				return err
			}
			out[i] = scoredCandidate{index: i, plan: candidate, score: score, walk: walk, impulse: impulse}
			partials[i] = partials[i].Insert(score.TotalScore)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, ScoreStats{}, err
	}
	var stats ScoreStats
	for _, p := range partials {
		stats = stats.Merge(p)
	}
	return out, stats, nil
}

// argMaxDeterministic returns the highest-scoring candidate, preferring
// the lowest batch index on an exact tie (spec §5).
func argMaxDeterministic(scored []scoredCandidate) scoredCandidate {
	best := scored[0]
	for _, s := range scored[1:] {
		if s.score.TotalScore > best.score.TotalScore {
			best = s
		}
	}
	return best
}
