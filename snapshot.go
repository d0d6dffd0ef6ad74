package kmeans3d

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/kmeans3d/distance"
)

// Snapshot is a point-in-time copy of an engine's clustering state.
// It shares no memory with the engine and is safe for concurrent reads.
type Snapshot struct {
	// Centroids holds one position per cluster index.
	Centroids []Point `json:"centroids"`
	// Assignment holds the cluster index of every point. Nil before the
	// first step.
	Assignment []int `json:"assignment,omitempty"`
	// Clusters holds the ascending point indices of every cluster.
	Clusters [][]int `json:"clusters,omitempty"`
	// Iterations is the number of steps the engine has completed.
	Iterations int `json:"iterations"`
	// Converged is true if the most recent step moved no centroid.
	Converged bool `json:"converged"`
}

// K returns the number of clusters.
func (s Snapshot) K() int { return len(s.Centroids) }

// Sizes returns the member count of every cluster.
func (s Snapshot) Sizes() []int {
	sizes := make([]int, len(s.Centroids))
	for j := range min(len(sizes), len(s.Clusters)) {
		sizes[j] = len(s.Clusters[j])
	}
	return sizes
}

// Members returns cluster c's point indices as a Roaring bitmap.
// Out-of-range clusters and negative indices yield an empty bitmap.
func (s Snapshot) Members(c int) *roaring.Bitmap {
	rb := roaring.New()
	if c < 0 || c >= len(s.Clusters) {
		return rb
	}
	for _, i := range s.Clusters[c] {
		if i >= 0 {
			rb.Add(uint32(i))
		}
	}
	return rb
}

// Validate checks that the snapshot partitions n points: every index in
// [0, n) belongs to exactly one cluster and Assignment agrees with Clusters.
func (s Snapshot) Validate(n int) error {
	if len(s.Assignment) != n {
		return fmt.Errorf("%w: %d assignments for %d points", ErrInvalidPartition, len(s.Assignment), n)
	}
	if len(s.Clusters) != len(s.Centroids) {
		return fmt.Errorf("%w: %d member lists for %d centroids", ErrInvalidPartition, len(s.Clusters), len(s.Centroids))
	}

	seen := roaring.New()
	for c, idx := range s.Clusters {
		for _, i := range idx {
			if i < 0 || i >= n {
				return fmt.Errorf("%w: cluster %d holds out-of-range point %d", ErrInvalidPartition, c, i)
			}
			if s.Assignment[i] != c {
				return fmt.Errorf("%w: point %d listed in cluster %d but assigned to %d", ErrInvalidPartition, i, c, s.Assignment[i])
			}
		}
		members := s.Members(c)
		if members.GetCardinality() != uint64(len(idx)) {
			return fmt.Errorf("%w: cluster %d lists a point twice", ErrInvalidPartition, c)
		}
		if seen.Intersects(members) {
			return fmt.Errorf("%w: cluster %d shares points with another cluster", ErrInvalidPartition, c)
		}
		seen.Or(members)
	}

	if seen.GetCardinality() != uint64(n) {
		missing := roaring.Flip(seen, 0, uint64(n))
		return fmt.Errorf("%w: %d points belong to no cluster", ErrInvalidPartition, missing.GetCardinality())
	}
	return nil
}

// Inertia returns the sum of squared distances between every point and its
// assigned centroid. points must be the point set the snapshot was taken from,
// and every assignment must name an existing centroid; Inertia panics
// otherwise. Snapshots from an Engine or LoadRecording meet both conditions
// for their own point set.
func (s Snapshot) Inertia(points []Point) float64 {
	var sum float64
	for i, c := range s.Assignment {
		sum += distance.SquaredL2(points[i], s.Centroids[c])
	}
	return sum
}
