package pointsource

import (
	"context"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/hupe1980/kmeans3d"
	"github.com/hupe1980/kmeans3d/distance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBox_Defaults(t *testing.T) {
	points, err := Box{Rand: rand.New(rand.NewSource(1))}.Points(context.Background())
	require.NoError(t, err)
	require.Len(t, points, DefaultCount)

	for _, p := range points {
		assert.GreaterOrEqual(t, p.X, -5.0)
		assert.Less(t, p.X, 5.0)
		assert.GreaterOrEqual(t, p.Y, -5.0)
		assert.Less(t, p.Y, 5.0)
		assert.GreaterOrEqual(t, p.Z, -5.0)
		assert.Less(t, p.Z, 5.0)
	}
}

func TestBox_Seeded(t *testing.T) {
	ctx := context.Background()
	box := func() Box {
		return Box{Count: 25, Size: r3.Vector{X: 2, Y: 4, Z: 0}, Rand: rand.New(rand.NewSource(42))}
	}

	a, err := box().Points(ctx)
	require.NoError(t, err)
	b, err := box().Points(ctx)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	for _, p := range a {
		assert.InDelta(t, 0, p.X, 1)
		assert.InDelta(t, 0, p.Y, 2)
		assert.Equal(t, 0.0, p.Z)
	}
}

func TestBox_Invalid(t *testing.T) {
	ctx := context.Background()

	_, err := Box{Count: -1}.Points(ctx)
	assert.Error(t, err)

	_, err = Box{Size: r3.Vector{X: -1, Y: 1, Z: 1}}.Points(ctx)
	assert.Error(t, err)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Box{}.Points(canceled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBlobs(t *testing.T) {
	src := Blobs{Seed: 7}
	points, err := src.Points(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 4*50)

	again, err := src.Points(context.Background())
	require.NoError(t, err)
	assert.Equal(t, points, again)

	for i := 0; i < 4; i++ {
		blob := points[i*50 : (i+1)*50]
		unit := unitBlob(rand.New(rand.NewSource(7+int64(i))), 50)

		// Scaling about the mean keeps the mean; the offset moves it.
		want, _ := distance.Mean(unit)
		got, _ := distance.Mean(blob)
		shift := float64(i) * 2
		assert.InDelta(t, want.X+shift, got.X, 1e-9)
		assert.InDelta(t, want.Y+shift, got.Y, 1e-9)
		assert.InDelta(t, want.Z+shift, got.Z, 1e-9)

		// First point scaled by 10 about the mean.
		p := unit[0].Sub(want).Mul(10).Add(want)
		assert.InDelta(t, p.X+shift, blob[0].X, 1e-9)
	}
}

func TestBlobs_Custom(t *testing.T) {
	points, err := Blobs{Count: 2, PerBlob: 3, Scale: 1, Offset: 100, Seed: 1}.Points(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 6)

	for _, p := range points[:3] {
		assert.True(t, p.X > -1e-9 && p.X < 1+1e-9)
	}
	for _, p := range points[3:] {
		assert.True(t, p.X > 100-1e-9 && p.X < 101+1e-9)
	}

	_, err = Blobs{Count: -1}.Points(context.Background())
	assert.Error(t, err)
}

func TestSourcesFeedTheEngine(t *testing.T) {
	points, err := Blobs{Count: 3, PerBlob: 20, Scale: 1, Offset: 50}.Points(context.Background())
	require.NoError(t, err)

	eng, err := kmeans3d.New(points, 3, kmeans3d.WithSeed(1))
	require.NoError(t, err)
	snap, err := eng.RunToConvergence(100)
	require.NoError(t, err)
	require.NoError(t, snap.Validate(len(points)))
}
