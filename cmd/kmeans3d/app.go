package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/golang/geo/r3"
	"github.com/urfave/cli/v2"

	"github.com/hupe1980/kmeans3d"
	"github.com/hupe1980/kmeans3d/codec"
	"github.com/hupe1980/kmeans3d/playback"
	"github.com/hupe1980/kmeans3d/pointsource"
	"github.com/hupe1980/kmeans3d/sink"
)

const (
	// Scene flags.
	flagPoints    = "points"
	flagClusters  = "clusters"
	flagSizeX     = "size-x"
	flagSizeY     = "size-y"
	flagSizeZ     = "size-z"
	flagSeed      = "seed"
	flagGenerator = "generator"
	flagBlobs     = "blobs"

	// Run flags.
	flagMaxIterations = "max-iterations"
	flagInterval      = "interval"
	flagRestarts      = "restarts"
	flagInput         = "input"
	flagRecord        = "record"
	flagCodec         = "codec"
	flagCompression   = "compression"
	flagNoColor       = "no-color"

	// Generate and replay flags.
	flagOutput = "output"

	// Store flags.
	flagStore     = "store"
	flagRoot      = "root"
	flagBucket    = "bucket"
	flagPrefix    = "prefix"
	flagEndpoint  = "endpoint"
	flagAccessKey = "access-key"
	flagSecretKey = "secret-key"
	flagRegion    = "region"
	flagSecure    = "secure"

	// Logging flags.
	flagLogFormat = "log-format"
	flagLogLevel  = "log-level"

	generatorBox   = "box"
	generatorBlobs = "blobs"
)

func env(name string) []string {
	return []string{"KMEANS3D_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "kmeans3d",
		Usage: "cluster 3D points with Lloyd's k-means and watch it converge",
		Flags: append(storeFlags(), loggingFlags()...),
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "cluster a point set step by step",
				Flags:  append(sceneFlags(), runFlags()...),
				Action: runAction,
			},
			{
				Name:  "generate",
				Usage: "write a generated point set as CSV to the store",
				Flags: append(sceneFlags(), &cli.StringFlag{
					Name:     flagOutput,
					Usage:    "blob `NAME` of the CSV file",
					Required: true,
					EnvVars:  env(flagOutput),
				}),
				Action: generateAction,
			},
			{
				Name:      "replay",
				Usage:     "print a recorded run",
				ArgsUsage: "RECORD-PREFIX",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagCodec, Value: "json", Usage: "snapshot codec (" + strings.Join(codec.Names, "|") + ")", EnvVars: env(flagCodec)},
					&cli.BoolFlag{Name: flagNoColor, Usage: "disable colored output", EnvVars: env(flagNoColor)},
				},
				Action: replayAction,
			},
		},
	}
}

func sceneFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: flagPoints, Aliases: []string{"n"}, Value: pointsource.DefaultCount, Usage: "number of generated points", EnvVars: env(flagPoints)},
		&cli.IntFlag{Name: flagClusters, Aliases: []string{"k"}, Value: 3, Usage: "number of clusters", EnvVars: env(flagClusters)},
		&cli.Float64Flag{Name: flagSizeX, Value: pointsource.DefaultSize.X, Usage: "extent of the point box along X", EnvVars: env(flagSizeX)},
		&cli.Float64Flag{Name: flagSizeY, Value: pointsource.DefaultSize.Y, Usage: "extent of the point box along Y", EnvVars: env(flagSizeY)},
		&cli.Float64Flag{Name: flagSizeZ, Value: pointsource.DefaultSize.Z, Usage: "extent of the point box along Z", EnvVars: env(flagSizeZ)},
		&cli.Int64Flag{Name: flagSeed, Usage: "random seed (default: time based)", EnvVars: env(flagSeed)},
		&cli.StringFlag{Name: flagGenerator, Value: generatorBox, Usage: "point generator (box|blobs)", EnvVars: env(flagGenerator)},
		&cli.IntFlag{Name: flagBlobs, Value: 4, Usage: "number of blobs for the blobs generator", EnvVars: env(flagBlobs)},
	}
}

func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: flagMaxIterations, Value: 100, Usage: "step cap, 0 runs until convergence", EnvVars: env(flagMaxIterations)},
		&cli.DurationFlag{Name: flagInterval, Value: playback.DefaultInterval, Usage: "pause between steps, 0 disables pacing", EnvVars: env(flagInterval)},
		&cli.IntFlag{Name: flagRestarts, Value: 1, Usage: "seeded restarts; the run with the lowest inertia is played back", EnvVars: env(flagRestarts)},
		&cli.StringFlag{Name: flagInput, Usage: "CSV blob `NAME` to cluster instead of generating points", EnvVars: env(flagInput)},
		&cli.StringFlag{Name: flagRecord, Usage: "record every step below `PREFIX` in the store", EnvVars: env(flagRecord)},
		&cli.StringFlag{Name: flagCodec, Value: "json", Usage: "snapshot codec (" + strings.Join(codec.Names, "|") + ")", EnvVars: env(flagCodec)},
		&cli.StringFlag{Name: flagCompression, Value: "none", Usage: "snapshot compression (none|zstd|lz4)", EnvVars: env(flagCompression)},
		&cli.BoolFlag{Name: flagNoColor, Usage: "disable colored output", EnvVars: env(flagNoColor)},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: flagLogFormat, Value: "text", Usage: "log format (text|json)", EnvVars: env(flagLogFormat)},
		&cli.StringFlag{Name: flagLogLevel, Value: "warn", Usage: "log level (debug|info|warn|error)", EnvVars: env(flagLogLevel)},
	}
}

func newLogger(c *cli.Context) (*kmeans3d.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.String(flagLogLevel))); err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", flagLogLevel, err)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch c.String(flagLogFormat) {
	case "text":
		return kmeans3d.NewLogger(slog.NewTextHandler(c.App.ErrWriter, opts)), nil
	case "json":
		return kmeans3d.NewLogger(slog.NewJSONHandler(c.App.ErrWriter, opts)), nil
	default:
		return nil, fmt.Errorf("invalid --%s %q (want text or json)", flagLogFormat, c.String(flagLogFormat))
	}
}

// seed returns the --seed value, or a time based one when the flag is unset.
func seed(c *cli.Context) int64 {
	if c.IsSet(flagSeed) {
		return c.Int64(flagSeed)
	}
	return time.Now().UnixNano()
}

func generator(c *cli.Context, seed int64) (pointsource.Source, error) {
	switch c.String(flagGenerator) {
	case generatorBox:
		if c.Int(flagPoints) < 1 {
			return nil, fmt.Errorf("--%s must be positive, got %d", flagPoints, c.Int(flagPoints))
		}
		return pointsource.Box{
			Count: c.Int(flagPoints),
			Size:  r3.Vector{X: c.Float64(flagSizeX), Y: c.Float64(flagSizeY), Z: c.Float64(flagSizeZ)},
			Rand:  rand.New(rand.NewSource(seed)), //nolint:gosec // reproducible scenes
		}, nil
	case generatorBlobs:
		blobs := c.Int(flagBlobs)
		if blobs < 1 {
			return nil, fmt.Errorf("--%s must be positive, got %d", flagBlobs, blobs)
		}
		perBlob := c.Int(flagPoints) / blobs
		if perBlob < 1 {
			perBlob = 1
		}
		return pointsource.Blobs{Count: blobs, PerBlob: perBlob, Seed: seed}, nil
	default:
		return nil, fmt.Errorf("invalid --%s %q (want %s or %s)", flagGenerator, c.String(flagGenerator), generatorBox, generatorBlobs)
	}
}

func terminal(c *cli.Context) *sink.Terminal {
	return &sink.Terminal{
		Out:     c.App.Writer,
		NoColor: c.Bool(flagNoColor) || color.NoColor,
	}
}
