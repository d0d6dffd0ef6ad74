package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/hupe1980/kmeans3d"
	"github.com/hupe1980/kmeans3d/codec"
	"github.com/hupe1980/kmeans3d/playback"
	"github.com/hupe1980/kmeans3d/pointsource"
	"github.com/hupe1980/kmeans3d/sink"
)

func runAction(c *cli.Context) error {
	logger, err := newLogger(c)
	if err != nil {
		return err
	}

	k := c.Int(flagClusters)
	restarts := c.Int(flagRestarts)
	if restarts < 1 {
		return fmt.Errorf("--%s must be positive, got %d", flagRestarts, restarts)
	}
	maxIterations := c.Int(flagMaxIterations)
	runSeed := seed(c)

	// The store is only needed when reading input or recording.
	var src pointsource.Source
	var rec *sink.Recorder
	if c.String(flagInput) != "" || c.String(flagRecord) != "" {
		store, err := openStore(c)
		if err != nil {
			return err
		}
		if name := c.String(flagInput); name != "" {
			src = pointsource.Stored{Store: store, Name: name}
		}
		if prefix := c.String(flagRecord); prefix != "" {
			cdc, err := codec.Lookup(c.String(flagCodec))
			if err != nil {
				return err
			}
			rec, err = sink.NewRecorder(store, prefix, sink.WithCodec(cdc), sink.WithCompression(c.String(flagCompression)))
			if err != nil {
				return err
			}
		}
	}
	if src == nil {
		if src, err = generator(c, runSeed); err != nil {
			return err
		}
	}

	points, err := src.Points(c.Context)
	if err != nil {
		return err
	}

	metrics := &kmeans3d.BasicMetricsCollector{}
	opts := []kmeans3d.Option{kmeans3d.WithLogger(logger), kmeans3d.WithMetricsCollector(metrics)}

	if restarts > 1 {
		seeds := make([]int64, restarts)
		for i := range seeds {
			seeds[i] = runSeed + int64(i)
		}
		best, err := kmeans3d.BestOf(c.Context, points, k, seeds, maxIterations, kmeans3d.WithLogger(logger))
		if err != nil {
			return err
		}
		logger.Info("best restart selected", "seed", best.Seed, "inertia", best.Inertia)
		runSeed = best.Seed
	}

	eng, err := kmeans3d.New(points, k, append(opts, kmeans3d.WithSeed(runSeed))...)
	if err != nil {
		return err
	}

	out := sink.Multi(terminal(c), recorderSink(rec))
	final, err := playback.Run(c.Context, eng, out, playback.Config{
		Interval:      c.Duration(flagInterval),
		MaxIterations: maxIterations,
	})
	if err != nil {
		return err
	}

	stats := metrics.GetStats()
	logger.Debug("run statistics",
		"steps", stats.StepCount,
		"changed_steps", stats.StepChanged,
		"empty_clusters", stats.EmptyClusters,
		"avg_step_nanos", stats.StepAvgNanos,
	)

	_, err = fmt.Fprintf(c.App.Writer, "seed=%d points=%d k=%d iterations=%d converged=%t inertia=%.6g\n",
		runSeed, len(points), eng.K(), final.Iterations, final.Converged, final.Inertia(points))
	return err
}

// recorderSink avoids handing Multi a typed nil.
func recorderSink(rec *sink.Recorder) sink.Sink {
	if rec == nil {
		return nil
	}
	return rec
}

func generateAction(c *cli.Context) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}

	src, err := generator(c, seed(c))
	if err != nil {
		return err
	}
	points, err := src.Points(c.Context)
	if err != nil {
		return err
	}

	name := c.String(flagOutput)
	if err := pointsource.Save(c.Context, store, name, points); err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.App.Writer, "wrote %d points to %s\n", len(points), name)
	return err
}

func replayAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("replay expects exactly one RECORD-PREFIX argument")
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	cdc, err := codec.Lookup(c.String(flagCodec))
	if err != nil {
		return err
	}

	snaps, err := sink.LoadRecording(c.Context, store, c.Args().First(), cdc)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		return fmt.Errorf("no recorded steps below %q", c.Args().First())
	}

	term := terminal(c)
	for _, snap := range snaps {
		if err := term.Publish(c.Context, snap); err != nil {
			return err
		}
	}
	return nil
}
