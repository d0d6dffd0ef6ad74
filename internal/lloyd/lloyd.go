package lloyd

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/hupe1980/kmeans3d/distance"
)

// Nearest returns the index of the centroid closest to p.
// Ties resolve to the lowest index. If no distance is below
// math.MaxFloat64 (NaN coordinates), index 0 is returned.
func Nearest(p r3.Vector, centroids []r3.Vector) int {
	best := 0
	minDist := math.MaxFloat64

	for j, c := range centroids {
		d := distance.Euclidean(p, c)
		if d < minDist {
			minDist = d
			best = j
		}
	}

	return best
}

// Assign writes the nearest centroid index of every point into assignments.
// len(assignments) must equal len(points).
func Assign(points, centroids []r3.Vector, assignments []int) {
	for i, p := range points {
		assignments[i] = Nearest(p, centroids)
	}
}

// Update recomputes each centroid as the mean of its assigned points.
//
// Clusters without members keep their centroid. A centroid counts as changed
// only if its new coordinates differ exactly from the old ones. Update
// reports whether any centroid changed and how many clusters were empty.
func Update(points []r3.Vector, assignments []int, centroids []r3.Vector) (changed bool, empty int) {
	k := len(centroids)
	sums := make([]r3.Vector, k)
	counts := make([]int, k)

	for i, p := range points {
		cluster := assignments[i]
		sums[cluster] = sums[cluster].Add(p)
		counts[cluster]++
	}

	for j := 0; j < k; j++ {
		if counts[j] == 0 {
			empty++
			continue
		}
		mean := distance.Div(sums[j], float64(counts[j]))
		if mean != centroids[j] {
			centroids[j] = mean
			changed = true
		}
	}

	return changed, empty
}

// Members groups point indices by cluster. Indices within a cluster are
// ascending; clusters without members get an empty, non-nil slice.
func Members(assignments []int, k int) [][]int {
	members := make([][]int, k)
	for j := range members {
		members[j] = []int{}
	}
	for i, cluster := range assignments {
		members[cluster] = append(members[cluster], i)
	}
	return members
}
