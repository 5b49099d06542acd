// Package sim implements the simulator orchestrator: it partitions a
// round budget across worker goroutines, runs each worker's independent
// shoe/strategy/round loop, and merges the per-worker accumulators into
// one aggregate.
package sim

import (
	"context"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/kevin-lesenechal/freebj/internal/betting"
	"github.com/kevin-lesenechal/freebj/internal/round"
	"github.com/kevin-lesenechal/freebj/internal/rules"
	"github.com/kevin-lesenechal/freebj/internal/shoe"
	"github.com/kevin-lesenechal/freebj/internal/stats"
	"github.com/kevin-lesenechal/freebj/internal/strategy"
)

// Config is everything one simulation run needs.
type Config struct {
	Rounds     int64
	Workers    int
	Rules      rules.Rules
	Deviations []strategy.Deviation
	Betting    betting.Strategy
	MasterSeed int64

	// ForceTC, when non-nil, reconfigures every worker's shoe to this TC
	// before each round's stake is computed (--force-tc).
	ForceTC *int

	// ShoeFile, when non-nil, overrides every worker's dealing order
	// (--shoe-file).
	ShoeFile []byte

	// BankrollEveryK enables bankroll sampling on the merged accumulator's
	// reassembled per-worker stream (0 disables it).
	BankrollEveryK int64

	// DryRun short-circuits Run to a zeroed accumulator with no dealing
	// (--dry-run).
	DryRun bool

	// Input, when non-nil, overrides the single round's deal/forced
	// action for debugging (-c, --dealer, -a). Only
	// meaningful for Rounds==1; Run bypasses the worker pool entirely in
	// that case.
	Input *round.Input

	// Logger receives per-worker debug output (reshuffle events). Nil
	// discards it.
	Logger *log.Logger
}

func (c Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.NewWithOptions(io.Discard, log.Options{})
}

// Run executes the simulation and returns the merged accumulator.
func Run(ctx context.Context, cfg Config) (*stats.Accumulator, error) {
	if cfg.DryRun {
		return stats.New(cfg.BankrollEveryK), nil
	}
	if cfg.Input != nil {
		return runSingleRound(cfg)
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	chunks := partition(cfg.Rounds, workers)

	g, gctx := errgroup.WithContext(ctx)
	results := make([]*stats.Accumulator, workers)

	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			acc, err := runWorker(gctx, cfg, w, chunks[w])
			if err != nil {
				return err
			}
			results[w] = acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return stats.Merge(results), nil
}

// partition divides n rounds into `workers` contiguous chunks; the first
// n%workers chunks take one extra round.
func partition(n int64, workers int) []int64 {
	chunks := make([]int64, workers)
	base := n / int64(workers)
	remainder := n % int64(workers)
	for i := range chunks {
		chunks[i] = base
		if int64(i) < remainder {
			chunks[i]++
		}
	}
	return chunks
}

func runWorker(ctx context.Context, cfg Config, index int, roundCount int64) (*stats.Accumulator, error) {
	seed := shoe.DeriveWorkerSeed(cfg.MasterSeed, index)
	s := shoe.New(cfg.Rules.Decks, cfg.Rules.Penetration, seed)
	if cfg.ShoeFile != nil {
		if err := s.WithShoeFile(cfg.ShoeFile); err != nil {
			return nil, err
		}
	}
	logger := cfg.logger()

	acc := stats.New(cfg.BankrollEveryK)
	for i := int64(0); i < roundCount; i++ {
		// Coarse-grained cancellation: checked only at round boundaries,
		// never mid-round. A cancelled context stops this worker with
		// whatever it has accumulated so far; it is not an error.
		if ctx.Err() != nil {
			return acc, nil
		}

		if s.NeedsShuffle() {
			logger.Debug("reshuffling",
				"worker", index,
				"round", i,
				"cards_remaining", s.CardsRemaining(),
				"decks_remaining", s.DecksRemaining(),
				"true_count", s.TrueCount())
			s.Shuffle()
		}
		if cfg.ForceTC != nil {
			s.ForceTC(*cfg.ForceTC)
		}

		stake := cfg.Betting.Stake(s.TrueCount())
		res := round.Play(s, cfg.Rules, cfg.Deviations, stake, nil)
		acc.Record(res)
	}
	return acc, nil
}

func runSingleRound(cfg Config) (*stats.Accumulator, error) {
	s := shoe.New(cfg.Rules.Decks, cfg.Rules.Penetration, cfg.MasterSeed)
	if cfg.ShoeFile != nil {
		if err := s.WithShoeFile(cfg.ShoeFile); err != nil {
			return nil, err
		}
	}
	if cfg.ForceTC != nil {
		s.ForceTC(*cfg.ForceTC)
	}

	acc := stats.New(cfg.BankrollEveryK)
	stake := cfg.Betting.Stake(s.TrueCount())
	res := round.Play(s, cfg.Rules, cfg.Deviations, stake, cfg.Input)
	acc.Record(res)
	return acc, nil
}
