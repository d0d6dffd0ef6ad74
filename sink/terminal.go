package sink

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/hupe1980/kmeans3d"
)

// Terminal prints one colored line per cluster for every snapshot.
type Terminal struct {
	// Out defaults to color.Output.
	Out io.Writer
	// Palette defaults to DefaultPalette.
	Palette Palette
	// NoColor disables ANSI escapes regardless of the terminal.
	NoColor bool
}

// NewTerminal returns a Terminal writing to stdout. Colors are disabled when
// stdout is not a terminal.
func NewTerminal() *Terminal {
	return &Terminal{Out: color.Output, NoColor: color.NoColor}
}

// Publish implements Sink.
func (t *Terminal) Publish(ctx context.Context, snap kmeans3d.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out := t.Out
	if out == nil {
		out = os.Stdout
	}
	palette := t.Palette
	if palette == nil {
		palette = DefaultPalette
	}

	state := "running"
	switch {
	case snap.Assignment == nil:
		state = "initial"
	case snap.Converged:
		state = "converged"
	}
	if _, err := fmt.Fprintf(out, "step %d (%s)\n", snap.Iterations, state); err != nil {
		return err
	}

	sizes := snap.Sizes()
	for i, c := range snap.Centroids {
		col := palette.Color(i)
		paint := color.New(col.Attr)
		if t.NoColor {
			paint.DisableColor()
		} else {
			paint.EnableColor()
		}

		members := "-"
		if snap.Assignment != nil {
			members = fmt.Sprint(sizes[i])
		}
		if _, err := paint.Fprintf(out, "  cluster %d %-7s centroid (%.3f, %.3f, %.3f) members %s\n",
			i, col.Name, c.X, c.Y, c.Z, members); err != nil {
			return err
		}
	}
	return nil
}
