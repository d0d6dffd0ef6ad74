// Package playback drives an engine step by step at a fixed pace and
// publishes every intermediate clustering to a sink.
package playback

import (
	"context"
	"errors"
	"time"

	"github.com/hupe1980/kmeans3d"
	"github.com/hupe1980/kmeans3d/sink"
	"golang.org/x/time/rate"
)

// DefaultInterval is the pause between steps of the reference animation.
const DefaultInterval = time.Second

// Config controls a playback run.
type Config struct {
	// Interval is the minimum time between two steps.
	// If 0, steps run back to back.
	Interval time.Duration

	// MaxIterations caps the number of steps.
	// If 0 or negative, playback runs until convergence.
	MaxIterations int
}

// Run publishes the engine's current state, then steps it until a step
// reports no change, the cap is reached or ctx is canceled. It returns the
// last published snapshot.
func Run(ctx context.Context, eng *kmeans3d.Engine, s sink.Sink, cfg Config) (kmeans3d.Snapshot, error) {
	if eng == nil || eng.K() == 0 {
		return kmeans3d.Snapshot{}, kmeans3d.ErrNotInitialized
	}
	if s == nil {
		return kmeans3d.Snapshot{}, errors.New("playback: sink is nil")
	}

	limit := rate.Inf
	if cfg.Interval > 0 {
		limit = rate.Every(cfg.Interval)
	}
	limiter := rate.NewLimiter(limit, 1)

	snap := eng.Snapshot()
	if err := s.Publish(ctx, snap); err != nil {
		return snap, err
	}

	for steps := 0; cfg.MaxIterations <= 0 || steps < cfg.MaxIterations; steps++ {
		if err := ctx.Err(); err != nil {
			return snap, err
		}
		if err := limiter.Wait(ctx); err != nil {
			return snap, err
		}

		changed, err := eng.Step()
		if err != nil {
			return snap, err
		}

		snap = eng.Snapshot()
		if err := s.Publish(ctx, snap); err != nil {
			return snap, err
		}
		if !changed {
			break
		}
	}
	return snap, nil
}
