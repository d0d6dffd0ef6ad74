package pointsource

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/golang/geo/r3"
	"github.com/hupe1980/kmeans3d"
	"github.com/hupe1980/kmeans3d/distance"
)

// ErrEmpty is returned when a source yields no points.
var ErrEmpty = errors.New("pointsource: no points")

// DefaultCount and DefaultSize match the reference scene.
var (
	DefaultCount = 100
	DefaultSize  = r3.Vector{X: 10, Y: 10, Z: 10}
)

// Source produces a set of points.
type Source interface {
	Points(ctx context.Context) ([]kmeans3d.Point, error)
}

// Box samples Count points uniformly in [-Size/2, Size/2) on every axis.
type Box struct {
	// Count defaults to DefaultCount when zero.
	Count int
	// Size defaults to DefaultSize when zero.
	Size r3.Vector
	// Rand defaults to a time-seeded generator.
	Rand *rand.Rand
}

// Points implements Source.
func (b Box) Points(ctx context.Context) ([]kmeans3d.Point, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	count := b.Count
	if count == 0 {
		count = DefaultCount
	}
	if count < 0 {
		return nil, fmt.Errorf("pointsource: box count must be positive, got %d", count)
	}

	size := b.Size
	if size == (r3.Vector{}) {
		size = DefaultSize
	}
	if size.X < 0 || size.Y < 0 || size.Z < 0 {
		return nil, fmt.Errorf("pointsource: box size must not be negative, got %v", size)
	}

	rng := b.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // not for security
	}

	half := size.Mul(0.5)
	points := make([]kmeans3d.Point, count)
	for i := range points {
		points[i] = kmeans3d.Point{
			X: rng.Float64()*size.X - half.X,
			Y: rng.Float64()*size.Y - half.Y,
			Z: rng.Float64()*size.Z - half.Z,
		}
	}
	return points, nil
}

// Blobs generates Count blobs of PerBlob points each.
//
// Blob i draws its coordinates from a generator seeded with Seed+i, scales
// them by Scale about their mean and shifts them by i*Offset on every axis.
type Blobs struct {
	Count   int     // default 4
	PerBlob int     // default 50
	Scale   float64 // default 10
	Offset  float64 // default 2
	Seed    int64
}

// Points implements Source.
func (b Blobs) Points(ctx context.Context) ([]kmeans3d.Point, error) {
	count := orInt(b.Count, 4)
	perBlob := orInt(b.PerBlob, 50)
	if count < 0 || perBlob < 0 {
		return nil, fmt.Errorf("pointsource: blob counts must be positive, got %d x %d", count, perBlob)
	}
	scale := b.Scale
	if scale == 0 {
		scale = 10
	}
	offset := b.Offset
	if offset == 0 {
		offset = 2
	}

	points := make([]kmeans3d.Point, 0, count*perBlob)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		blob := unitBlob(rand.New(rand.NewSource(b.Seed+int64(i))), perBlob) //nolint:gosec // reproducible data
		mean, _ := distance.Mean(blob)
		shift := r3.Vector{X: 1, Y: 1, Z: 1}.Mul(float64(i) * offset)
		for _, p := range blob {
			points = append(points, p.Sub(mean).Mul(scale).Add(mean).Add(shift))
		}
	}
	return points, nil
}

// unitBlob draws n points in the unit cube, all X values first, then Y, then Z.
func unitBlob(rng *rand.Rand, n int) []kmeans3d.Point {
	blob := make([]kmeans3d.Point, n)
	for i := range blob {
		blob[i].X = rng.Float64()
	}
	for i := range blob {
		blob[i].Y = rng.Float64()
	}
	for i := range blob {
		blob[i].Z = rng.Float64()
	}
	return blob
}

func orInt(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}
