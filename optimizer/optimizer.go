package optimizer

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopfloor/tabu/internal/tuning"
	"github.com/shopfloor/tabu/neighborhood"
	"github.com/shopfloor/tabu/plan"
	"github.com/shopfloor/tabu/simulate"
)

// Config bundles everything an Optimizer needs beyond the initial plan:
// the tunables from spec §4.3-§4.4, the fixed customer cohort it scores
// every candidate against (spec §5), and the ambient stack (logger,
// metrics) grounded on damir5-kosarica's service wiring.
type Config struct {
	Tuning tuning.Search
	Cohort []simulate.Request

	// Seed is the trajectory-level RNG seed; combined with a monotonic
	// evaluation counter to derive per-customer, per-candidate seeds
	// deterministically (spec §9).
	Seed uint64

	Logger  zerolog.Logger
	Metrics *Metrics
}

// Optimizer runs the single-trajectory tabu search loop of spec §4.4. It
// holds the current plan/score/heatmaps, the best-ever plan/score/heatmaps,
// a bounded tabu queue of fingerprints, and the running iteration history.
// One Optimizer is exactly one trajectory (spec §5); the trajectory package
// wraps it with an identity and an archive export.
type Optimizer struct {
	cfg Config

	current        *plan.Plan
	currentScore   Score
	currentWalk    Heatmap
	currentImpulse Heatmap

	best        *plan.Plan
	bestScore   Score
	bestWalk    Heatmap
	bestImpulse Heatmap

	tabu            []Fingerprint
	history         []IterationRecord
	noImproveStreak int
	evalCounter     uint64
	candidateStats  ScoreStats
}

// New validates initial and constructs an Optimizer seeded with it. It
// returns ErrInvalidInitialPlan if initial fails Plan.Validate.
func New(initial *plan.Plan, cfg Config) (*Optimizer, error) {
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics()
	}
	o := &Optimizer{cfg: cfg}
	if err := o.SeedWith(initial, true); err != nil {
		return nil, err
	}
	return o, nil
}

// newRand derives a math/rand/v2 source from the trajectory seed and an
// evaluation id, the same counter-based construction scorePlan uses for
// per-customer seeds (spec §9).
func newRand(trajectorySeed, evalID uint64) *rand.Rand {
	return rand.New(rand.NewPCG(trajectorySeed, evalID))
}

func (o *Optimizer) nextEvalID() uint64 {
	o.evalCounter++
	return o.evalCounter
}

// isTabu reports whether fp currently sits in the tabu queue.
func (o *Optimizer) isTabu(fp Fingerprint) bool {
	for _, t := range o.tabu {
		if t == fp {
			return true
		}
	}
	return false
}

func (o *Optimizer) pushTabu(fp Fingerprint) {
	o.tabu = append(o.tabu, fp)
	if over := len(o.tabu) - o.cfg.Tuning.TabuSize; over > 0 && o.cfg.Tuning.TabuSize > 0 {
		o.tabu = o.tabu[over:]
	}
}

// SeedWith replaces the current plan with p, clears the tabu queue (a new
// starting point invalidates the history it was built against, per spec
// §4.4's seed_with operation), and rescoring p as the new current plan. If
// resetBest is true, or p is better than the trajectory's best-ever score,
// the best-ever state is updated too.
func (o *Optimizer) SeedWith(p *plan.Plan, resetBest bool) error {
	if !p.Validate() {
		return ErrInvalidInitialPlan
	}
	score, walk, impulse, err := scorePlan(p, o.cfg.Cohort, o.cfg.Seed, o.nextEvalID(), o.cfg.Tuning.WorkerPoolSize)
	if err != nil {
		return err
	}

	o.tabu = o.tabu[:0]
	o.current = p
	o.currentScore = score
	o.currentWalk = walk
	o.currentImpulse = impulse

	if resetBest || o.best == nil || score.Better(o.bestScore) {
		o.best = p
		o.bestScore = score
		o.bestWalk = walk
		o.bestImpulse = impulse
	}
	return nil
}

// Run executes the outer loop of spec §4.4: record iteration 0 with the
// current plan, then repeatedly generate a batch of neighbors, accept the
// best non-tabu, acceptance-floor-passing one, and record the result, up
// to max_iterations or until no improving neighbor is found. It stops early
// once noImproveStreak reaches the supplemental Patience parameter, if set.
// A trailing synthetic record with IterationNum == BestIterationNum holds
// the best plan seen across the whole trajectory. Run resets history each
// call, so a trajectory should call it at most once per seed.
func (o *Optimizer) Run(ctx context.Context) ([]IterationRecord, error) {
	o.history = o.history[:0]
	o.recordIteration(0)

	cfg := o.cfg.Tuning
	for k := 1; k <= cfg.MaxIterations; k++ {
		select {
		case <-ctx.Done():
			return o.history, ctx.Err()
		default:
		}

		start := time.Now()
		candidate, score, walk, impulse, fp, found, err := o.findBestImprovingNeighbor()
		if err != nil {
			return o.history, err
		}
		if !found {
			o.cfg.Metrics.recordNoImprovement()
			o.cfg.Logger.Info().Int("iteration", k).Msg("no improving neighbor found, stopping trajectory")
			break
		}

		o.pushTabu(fp)
		o.current = candidate
		o.currentScore = score
		o.currentWalk = walk
		o.currentImpulse = impulse

		if score.Better(o.bestScore) {
			o.best = candidate
			o.bestScore = score
			o.bestWalk = walk
			o.bestImpulse = impulse
			o.noImproveStreak = 0
		} else {
			o.noImproveStreak++
		}

		o.recordIteration(k)
		o.cfg.Metrics.recordIteration(score, o.bestScore, len(o.tabu), time.Since(start))

		if cfg.Patience > 0 && o.noImproveStreak >= cfg.Patience {
			o.cfg.Logger.Info().Int("iteration", k).Int("patience", cfg.Patience).
				Msg("no best-ever improvement within patience window, stopping early")
			break
		}
	}

	o.recordBestIteration()
	return o.history, nil
}

// findBestImprovingNeighbor is spec §4.4's find_best_improving_neighbor: it
// makes up to tries_allowed attempts, each generating a fresh batch of
// candidates, discarding tabu ones, and scoring the rest. Among survivors it
// picks the highest total_score, breaking exact ties by lowest batch index
// (scoreBatch/argMaxDeterministic already preserve that order). A candidate
// is accepted only if its score clears the acceptance floor: current score
// minus acceptance_floor fraction of |current score| (spec §4.4, §8
// scenario allowing a small regression). The first accepting attempt wins;
// if every attempt is exhausted without one, found is false.
func (o *Optimizer) findBestImprovingNeighbor() (candidate *plan.Plan, score Score, walk, impulse Heatmap, fp Fingerprint, found bool, err error) {
	cfg := o.cfg.Tuning
	opts := neighborhood.Options{
		AllowWalkableSwap: cfg.AllowWalkableSwap,
		SwapWholeAisles:   cfg.SwapWholeAisles,
	}
	floor := o.currentScore.TotalScore - cfg.AcceptanceFloor*absFloat(o.currentScore.TotalScore)

	tries := cfg.TriesAllowed
	if tries <= 0 {
		tries = 1
	}
	for attempt := 0; attempt < tries; attempt++ {
		rng := newRand(o.cfg.Seed, o.nextEvalID())
		candidates, genErr := neighborhood.Generate(o.current, cfg.BatchSize, cfg.SwapCount, opts, rng)
		if genErr != nil {
			if errors.Is(genErr, neighborhood.ErrNoValidNeighbor) {
				continue
			}
			return nil, Score{}, Heatmap{}, Heatmap{}, 0, false, genErr
		}

		filtered := make([]*plan.Plan, 0, len(candidates))
		filteredFP := make([]Fingerprint, 0, len(candidates))
		for _, c := range candidates {
			cfp := FingerprintOf(c)
			if o.isTabu(cfp) {
				continue
			}
			filtered = append(filtered, c)
			filteredFP = append(filteredFP, cfp)
		}
		if len(filtered) == 0 {
			continue
		}

		// reserve one evaluation id per candidate (scoreBatch uses base+i)
		evalBase := o.evalCounter + 1
		o.evalCounter += uint64(len(filtered))
		scored, batchStats, scoreErr := scoreBatch(filtered, o.cfg.Cohort, o.cfg.Seed, evalBase, cfg.WorkerPoolSize)
		if scoreErr != nil {
			return nil, Score{}, Heatmap{}, Heatmap{}, 0, false, scoreErr
		}
		o.candidateStats = o.candidateStats.Merge(batchStats)

		winner := argMaxDeterministic(scored)
		if winner.score.TotalScore <= floor {
			continue
		}
		return winner.plan, winner.score, winner.walk, winner.impulse, filteredFP[winner.index], true, nil
	}
	return nil, Score{}, Heatmap{}, Heatmap{}, 0, false, nil
}

func (o *Optimizer) recordIteration(k int) {
	o.history = append(o.history, IterationRecord{
		IterationNum:   k,
		PlanMatrix:     o.current.ArchiveMatrix(),
		Score:          o.currentScore,
		WalkHeatmap:    o.currentWalk,
		ImpulseHeatmap: o.currentImpulse,
	})
}

func (o *Optimizer) recordBestIteration() {
	o.history = append(o.history, IterationRecord{
		IterationNum:   BestIterationNum,
		PlanMatrix:     o.best.ArchiveMatrix(),
		Score:          o.bestScore,
		WalkHeatmap:    o.bestWalk,
		ImpulseHeatmap: o.bestImpulse,
	})
}

// Current returns the trajectory's current plan and score.
func (o *Optimizer) Current() (*plan.Plan, Score) {
	return o.current, o.currentScore
}

// Best returns the trajectory's best-ever plan and score.
func (o *Optimizer) Best() (*plan.Plan, Score) {
	return o.best, o.bestScore
}

// History returns every recorded iteration, including the trailing
// synthetic best-ever record once Run has completed.
func (o *Optimizer) History() []IterationRecord {
	return o.history
}

// CandidateStats returns the running distribution of total_score across
// every candidate scored so far in this trajectory (spec §5 diagnostics),
// for a driver that wants more than the single best-per-iteration value
// Metrics exposes.
func (o *Optimizer) CandidateStats() ScoreStats {
	return o.candidateStats
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
