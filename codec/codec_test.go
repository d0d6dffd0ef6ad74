package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Iterations int          `json:"iterations"`
	Converged  bool         `json:"converged"`
	Clusters   [][]int      `json:"clusters"`
	Centroids  [][3]float64 `json:"centroids"`
}

func TestByName(t *testing.T) {
	for _, name := range Names {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)

	_, err := Lookup("msgpack")
	assert.ErrorContains(t, err, "msgpack")
}

func TestCodecsAgree(t *testing.T) {
	in := record{
		Iterations: 4,
		Converged:  true,
		Clusters:   [][]int{{0, 2}, {1}, {}},
		Centroids:  [][3]float64{{10.0 / 3, 1, 0}, {-1.5, 2, 8}, {0, 0, 0}},
	}

	std, err := JSON{}.Marshal(in)
	require.NoError(t, err)
	fast, err := GoJSON{}.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, string(std), string(fast))

	var out record
	require.NoError(t, GoJSON{}.Unmarshal(std, &out))
	assert.Equal(t, in, out)
}

func TestDefault(t *testing.T) {
	assert.Equal(t, "go-json", Default.Name())
}
