// Package testutil provides testing utilities for kmeans3d.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	points := rng.UniformPoints(100, r3.Vector{X: 10, Y: 10, Z: 10})
//
// # Clustered Data (Ground Truth)
//
//	centers := []r3.Vector{{X: 0}, {X: 100}, {X: 200}}
//	points := rng.ClusteredPoints(centers, 50, 1.0)
//	// point i was drawn around centers[i%len(centers)]
package testutil
