// Package kmeans3d clusters points in three-dimensional space with Lloyd's
// k-means algorithm.
//
// The Engine owns a fixed point set, k centroids and the current cluster
// membership. Each Step assigns every point to its nearest centroid
// (Euclidean distance, lowest index wins ties) and moves every non-empty
// cluster's centroid to the mean of its members. Clustering has converged
// once a Step moves no centroid.
//
// # Quick Start
//
//	points := []kmeans3d.Point{{X: 0}, {X: 10}, {Y: 10}, {X: 10, Y: 10}}
//	eng, _ := kmeans3d.New(points, 2, kmeans3d.WithSeed(42))
//	snap, _ := eng.RunToConvergence(100)
//	for c, members := range snap.Clusters {
//	    fmt.Println(c, snap.Centroids[c], members)
//	}
//
// # Driving Steps
//
// The engine has no clock. Callers decide the cadence: a tight loop
// (RunToConvergence), one Step per timer tick, or interactive single
// stepping. Package playback paces steps with a rate limiter and publishes
// each snapshot to a sink.
//
// # Convergence
//
// Centroids are compared with exact floating-point equality, so a run stops
// only when every centroid is bit-identical to its previous position. For
// adversarial inputs rounding may keep centroids oscillating; pass a positive
// maxIterations to RunToConvergence to bound the run.
//
// # Concurrency
//
// An Engine is single-writer: do not call Step from more than one goroutine
// at a time. Snapshots are deep copies. BestOf runs independent engines for
// several seeds in parallel and keeps the lowest-inertia result.
package kmeans3d
