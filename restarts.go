package kmeans3d

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Restart is the outcome of one seeded run in BestOf.
type Restart struct {
	Seed     int64
	Snapshot Snapshot
	Inertia  float64
}

// BestOf clusters points once per seed, each run on its own engine and
// goroutine, and returns the run with the lowest inertia. Ties go to the
// earlier seed. maxIterations caps every run as in RunToConvergence.
//
// Options apply to every engine; a WithRand option is overridden by the
// per-run seed. The context is checked between steps.
func BestOf(ctx context.Context, points []Point, k int, seeds []int64, maxIterations int, opts ...Option) (Restart, error) {
	if len(seeds) == 0 {
		return Restart{}, &ConfigError{Field: "seeds", Value: 0, Reason: "must not be empty"}
	}
	if err := validate(points, k); err != nil {
		return Restart{}, err
	}

	logger := applyOptions(opts).logger
	results := make([]Restart, len(seeds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, seed := range seeds {
		g.Go(func() error {
			r, err := restart(ctx, points, k, seed, maxIterations, opts)
			logger.LogRestart(seed, r.Inertia, err)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Restart{}, err
	}

	best := results[0]
	for _, r := range results[1:] {
		if r.Inertia < best.Inertia {
			best = r
		}
	}
	return best, nil
}

func restart(ctx context.Context, points []Point, k int, seed int64, maxIterations int, opts []Option) (Restart, error) {
	runOpts := append(append([]Option(nil), opts...), WithSeed(seed))
	eng, err := New(points, k, runOpts...)
	if err != nil {
		return Restart{}, err
	}

	for steps := 0; maxIterations <= 0 || steps < maxIterations; steps++ {
		if err := ctx.Err(); err != nil {
			return Restart{}, err
		}
		changed, err := eng.Step()
		if err != nil {
			return Restart{}, err
		}
		if !changed {
			break
		}
	}

	snap := eng.Snapshot()
	return Restart{
		Seed:     seed,
		Snapshot: snap,
		Inertia:  snap.Inertia(points),
	}, nil
}
