// Package pointsource produces the point sets that kmeans3d clusters.
//
// A Source is anything that can hand out a slice of points:
//
//	src := pointsource.Box{Count: 100, Size: r3.Vector{X: 10, Y: 10, Z: 10}}
//	points, err := src.Points(ctx)
//
// Box samples uniformly inside an axis-aligned box centered on the origin.
// Blobs builds seeded, overlapping blobs along the diagonal. CSV and Stored
// read "x,y,z" rows from a reader or from a blobstore.BlobStore.
package pointsource
