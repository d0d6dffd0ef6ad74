package testutil

import (
	"math/rand"
	"sync"

	"github.com/golang/geo/r3"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformPoints returns num points uniform in [-size/2, size/2) per axis.
func (r *RNG) UniformPoints(num int, size r3.Vector) []r3.Vector {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([]r3.Vector, num)
	for i := range points {
		points[i] = r3.Vector{
			X: (r.rand.Float64() - 0.5) * size.X,
			Y: (r.rand.Float64() - 0.5) * size.Y,
			Z: (r.rand.Float64() - 0.5) * size.Z,
		}
	}
	return points
}

// ClusteredPoints draws perCluster points around every center with Gaussian
// noise of the given standard deviation. Point i belongs to
// centers[i%len(centers)].
func (r *RNG) ClusteredPoints(centers []r3.Vector, perCluster int, spread float64) []r3.Vector {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([]r3.Vector, len(centers)*perCluster)
	for i := range points {
		c := centers[i%len(centers)]
		points[i] = r3.Vector{
			X: c.X + r.rand.NormFloat64()*spread,
			Y: c.Y + r.rand.NormFloat64()*spread,
			Z: c.Z + r.rand.NormFloat64()*spread,
		}
	}
	return points
}

// Labels returns the ground-truth cluster of every point produced by
// ClusteredPoints.
func Labels(numPoints, numCenters int) []int {
	labels := make([]int, numPoints)
	for i := range labels {
		labels[i] = i % numCenters
	}
	return labels
}

// Lattice returns the n*n*n grid points {0, step, ..., (n-1)*step}^3 in
// x-major order. Many of them are equidistant from each other, which makes
// the grid useful for tie-break tests.
func Lattice(n int, step float64) []r3.Vector {
	points := make([]r3.Vector, 0, n*n*n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				points = append(points, r3.Vector{X: float64(x) * step, Y: float64(y) * step, Z: float64(z) * step})
			}
		}
	}
	return points
}
