package kmeans3d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSnapshot() Snapshot {
	return Snapshot{
		Centroids:  []Point{{X: 10.0 / 3, Y: 10.0 / 3}, {X: 10, Y: 10}, {Z: 7}},
		Assignment: []int{0, 0, 0, 1},
		Clusters:   [][]int{{0, 1, 2}, {3}, {}},
		Iterations: 2,
		Converged:  true,
	}
}

func TestSnapshot_Validate(t *testing.T) {
	require.NoError(t, validSnapshot().Validate(4))

	tests := []struct {
		name   string
		mutate func(*Snapshot)
		n      int
	}{
		{"wrong point count", func(s *Snapshot) {}, 5},
		{"missing point", func(s *Snapshot) {
			s.Clusters[0] = []int{0, 1}
		}, 4},
		{"overlap", func(s *Snapshot) {
			s.Clusters[1] = []int{2, 3}
		}, 4},
		{"duplicate within cluster", func(s *Snapshot) {
			s.Clusters[0] = []int{0, 1, 2, 2}
		}, 4},
		{"assignment disagrees", func(s *Snapshot) {
			s.Assignment[3] = 2
		}, 4},
		{"out of range index", func(s *Snapshot) {
			s.Clusters[2] = []int{9}
		}, 4},
		{"negative index", func(s *Snapshot) {
			s.Clusters[2] = []int{-1}
		}, 4},
		{"member lists missing", func(s *Snapshot) {
			s.Clusters = s.Clusters[:2]
		}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSnapshot()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(tt.n), ErrInvalidPartition)
		})
	}
}

func TestSnapshot_Members(t *testing.T) {
	s := validSnapshot()

	assert.Equal(t, []uint32{0, 1, 2}, s.Members(0).ToArray())
	assert.Equal(t, []uint32{3}, s.Members(1).ToArray())
	assert.True(t, s.Members(2).IsEmpty())
	assert.True(t, s.Members(3).IsEmpty())
	assert.True(t, s.Members(-1).IsEmpty())
}

func TestSnapshot_SizesAndK(t *testing.T) {
	s := validSnapshot()
	assert.Equal(t, 3, s.K())
	assert.Equal(t, []int{3, 1, 0}, s.Sizes())

	assert.Equal(t, []int{0, 0}, Snapshot{Centroids: []Point{{}, {}}}.Sizes())
}

func TestSnapshot_Inertia(t *testing.T) {
	s := Snapshot{
		Centroids:  []Point{{}, {X: 10}},
		Assignment: []int{0, 0, 1},
	}
	points := []Point{{X: 1}, {Y: 2}, {X: 10, Z: 3}}

	assert.Equal(t, 1.0+4.0+9.0, s.Inertia(points))
	assert.Equal(t, 0.0, Snapshot{}.Inertia(nil))
}
