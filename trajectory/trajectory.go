// Package trajectory wraps one optimizer.Optimizer run with the identity
// and logging a driver managing many concurrent trajectories needs (spec
// §5's "independent trajectories"), without the core optimizer package
// knowing anything about that driver.
package trajectory

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopfloor/tabu/optimizer"
	"github.com/shopfloor/tabu/plan"
)

// Trajectory is one UUID-identified tabu search run.
type Trajectory struct {
	id  uuid.UUID
	opt *optimizer.Optimizer
	log zerolog.Logger
}

// New assigns a fresh identity and constructs the underlying Optimizer,
// tagging cfg.Logger with trajectory_id so a driver running many
// trajectories can demultiplex their log lines. It returns
// optimizer.ErrInvalidInitialPlan if initial fails validation.
func New(initial *plan.Plan, cfg optimizer.Config) (*Trajectory, error) {
	id := uuid.New()
	cfg.Logger = cfg.Logger.With().Str("trajectory_id", id.String()).Logger()

	opt, err := optimizer.New(initial, cfg)
	if err != nil {
		return nil, err
	}
	return &Trajectory{id: id, opt: opt, log: cfg.Logger}, nil
}

// ID returns the trajectory's identity.
func (t *Trajectory) ID() uuid.UUID {
	return t.id
}

// Run executes the trajectory's optimizer loop to completion (or until ctx
// is cancelled), logging its start and outcome.
func (t *Trajectory) Run(ctx context.Context) ([]optimizer.IterationRecord, error) {
	t.log.Info().Msg("trajectory starting")
	history, err := t.opt.Run(ctx)
	if err != nil {
		t.log.Warn().Err(err).Msg("trajectory stopped with error")
		return history, err
	}
	_, best := t.opt.Best()
	t.log.Info().Float64("best_total_score", best.TotalScore).Msg("trajectory complete")
	return history, nil
}

// SeedWith re-seeds the underlying optimizer (spec §4.4's seed_with),
// useful for a driver restarting a trajectory from a different plan
// without discarding its identity or logger.
func (t *Trajectory) SeedWith(p *plan.Plan, resetBest bool) error {
	return t.opt.SeedWith(p, resetBest)
}

// Current returns the trajectory's current plan and score.
func (t *Trajectory) Current() (*plan.Plan, optimizer.Score) {
	return t.opt.Current()
}

// Best returns the trajectory's best-ever plan and score.
func (t *Trajectory) Best() (*plan.Plan, optimizer.Score) {
	return t.opt.Best()
}
