// Package lloyd implements the two passes of Lloyd's k-means algorithm
// over 3D points.
//
// Used by the root engine for every refinement step and by Engine.Nearest
// to place arbitrary points.
package lloyd
