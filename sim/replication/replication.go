// Package replication runs the engine repeatedly with independent random streams.
package replication

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/juanmaya19/problema-bancario/sim"
)

// Options controls how many replications run and how they are seeded.
type Options struct {
	Replications int   // number of independent runs (must be > 0)
	Seed         int64 // master seed; replication i uses subsystem "replication_<i>"
	Parallelism  int   // max concurrent runs; <= 0 means GOMAXPROCS
}

// VariatesFactory builds the variate source for replication i.
type VariatesFactory func(i int) sim.VariateSource

// Run executes opts.Replications independent runs of cfg and returns their
// results in replication order. Results do not depend on opts.Parallelism.
// A configuration error is returned before any run starts.
func Run(ctx context.Context, cfg sim.Config, opts Options) ([]*sim.ReplicationResult, error) {
	if opts.Replications <= 0 {
		return nil, fmt.Errorf("replications must be positive, got %d", opts.Replications)
	}
	// PartitionedRNG is not thread-safe: derive every stream before fanning out.
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(opts.Seed))
	sources := make([]sim.VariateSource, opts.Replications)
	for i := range sources {
		sources[i] = sim.NewRandVariates(rng.ForSubsystem(sim.SubsystemReplication(i)))
	}
	return RunWith(ctx, cfg, opts, func(i int) sim.VariateSource { return sources[i] })
}

// RunWith is Run with caller-supplied variate sources, one per replication.
// newVariates is called from the calling goroutine only.
func RunWith(ctx context.Context, cfg sim.Config, opts Options, newVariates VariatesFactory) ([]*sim.ReplicationResult, error) {
	if opts.Replications <= 0 {
		return nil, fmt.Errorf("replications must be positive, got %d", opts.Replications)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	sims := make([]*sim.Simulator, opts.Replications)
	for i := range sims {
		s, err := sim.NewSimulator(cfg, newVariates(i))
		if err != nil {
			return nil, fmt.Errorf("replication %d: %w", i+1, err)
		}
		sims[i] = s
	}

	results := make([]*sim.ReplicationResult, opts.Replications)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, s := range sims {
		i, s := i, s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// each goroutine owns its simulator and writes only its own slot
			results[i] = s.Run()
			logrus.Debugf("replication %d/%d: %d completions", i+1, opts.Replications, results[i].Records.Total())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("running replications: %w", err)
	}
	return results, nil
}
