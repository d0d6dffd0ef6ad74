package distance

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
)

func TestEuclidean(t *testing.T) {
	tests := []struct {
		name string
		a, b r3.Vector
		want float64
	}{
		{"same point", r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{X: 1, Y: 2, Z: 3}, 0},
		{"axis", r3.Vector{}, r3.Vector{X: 10}, 10},
		{"pythagorean", r3.Vector{}, r3.Vector{X: 3, Y: 4}, 5},
		{"diagonal", r3.Vector{}, r3.Vector{X: 10, Y: 10}, math.Sqrt(200)},
		{"3d", r3.Vector{X: 1, Y: 1, Z: 1}, r3.Vector{X: 3, Y: 4, Z: 7}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Euclidean(tt.a, tt.b), 1e-12)
			assert.InDelta(t, tt.want, Euclidean(tt.b, tt.a), 1e-12)
		})
	}
}

func TestSquaredL2(t *testing.T) {
	assert.Equal(t, 25.0, SquaredL2(r3.Vector{}, r3.Vector{X: 3, Y: 4}))
	assert.Equal(t, 0.0, SquaredL2(r3.Vector{X: -1}, r3.Vector{X: -1}))
}

func TestMean(t *testing.T) {
	_, ok := Mean(nil)
	assert.False(t, ok)

	m, ok := Mean([]r3.Vector{{X: 0}, {X: 10}, {Y: 10}})
	assert.True(t, ok)
	assert.Equal(t, r3.Vector{X: 10.0 / 3, Y: 10.0 / 3}, m)

	m, ok = Mean([]r3.Vector{{X: 1, Y: 2, Z: 3}})
	assert.True(t, ok)
	assert.Equal(t, r3.Vector{X: 1, Y: 2, Z: 3}, m)
}
