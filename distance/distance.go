// Package distance provides distance and mean calculations on 3-vectors.
//
// # Usage
//
//	d := distance.Euclidean(a, b)
//	sq := distance.SquaredL2(a, b)
//	m, ok := distance.Mean(points)
package distance

import (
	"github.com/golang/geo/r3"
)

// Euclidean returns the L2 distance sqrt(dx²+dy²+dz²) between a and b.
func Euclidean(a, b r3.Vector) float64 {
	return a.Distance(b)
}

// SquaredL2 returns the squared L2 distance between a and b.
func SquaredL2(a, b r3.Vector) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

// Sum adds up vs componentwise.
func Sum(vs []r3.Vector) r3.Vector {
	var s r3.Vector
	for _, v := range vs {
		s = s.Add(v)
	}
	return s
}

// Div divides each component of v by n.
// Division (not multiplication by 1/n) keeps means bit-identical to a
// direct sum/count computation.
func Div(v r3.Vector, n float64) r3.Vector {
	return r3.Vector{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Mean returns the componentwise arithmetic mean of vs.
// Returns false if vs is empty.
func Mean(vs []r3.Vector) (r3.Vector, bool) {
	if len(vs) == 0 {
		return r3.Vector{}, false
	}
	return Div(Sum(vs), float64(len(vs))), true
}
