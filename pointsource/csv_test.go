package pointsource

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/hupe1980/kmeans3d"
	"github.com/hupe1980/kmeans3d/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	input := `# sampled scene
x, y, z, label
1,2,3,a
 -0.5, 1e3 ,0
# trailing comment
4,5,6
`
	points, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []kmeans3d.Point{
		{X: 1, Y: 2, Z: 3},
		{X: -0.5, Y: 1000, Z: 0},
		{X: 4, Y: 5, Z: 6},
	}, points)
}

func TestParseCSV_NoHeader(t *testing.T) {
	points, err := ParseCSV(strings.NewReader("0,0,0\n10,10,10\n"))
	require.NoError(t, err)
	assert.Len(t, points, 2)
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"too few fields", "1,2\n"},
		{"bad number", "1,2,3\n4,x,6\n"},
		{"header in the middle", "1,2,3\nx,y,z\n"},
		{"bad second field on first row", "1,y,3\n"},
		{"nan", "x,y,z\n0,0,0\nNaN,0,0\n"},
		{"infinity", "1,+Inf,3\n"},
		{"negative infinity", "1,2,-inf\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}

	_, err := ParseCSV(strings.NewReader("x,y,z\n# nothing\n"))
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = ParseCSV(strings.NewReader("x,y,z\n0,0,0\n1,1,1\nNaN,0,0\n5,5,5\n"))
	assert.ErrorContains(t, err, "line 4: field 1")
}

func TestEncodeCSV(t *testing.T) {
	points := []kmeans3d.Point{{X: 0.1, Y: -2, Z: 1e-9}, {X: 10.0 / 3}}

	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, points))
	assert.True(t, strings.HasPrefix(buf.String(), "x,y,z\n0.1,-2,1e-09\n"))

	got, err := CSV{Reader: &buf}.Points(context.Background())
	require.NoError(t, err)
	assert.Equal(t, points, got)
}

func TestStored(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	points := []kmeans3d.Point{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}}

	require.NoError(t, Save(ctx, store, "scenes/two.csv", points))

	got, err := Stored{Store: store, Name: "scenes/two.csv"}.Points(ctx)
	require.NoError(t, err)
	assert.Equal(t, points, got)

	_, err = Stored{Store: store, Name: "scenes/missing.csv"}.Points(ctx)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	require.NoError(t, store.Put(ctx, "scenes/empty.csv", []byte("x,y,z\n")))
	_, err = Stored{Store: store, Name: "scenes/empty.csv"}.Points(ctx)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestCSV_NilReader(t *testing.T) {
	_, err := CSV{}.Points(context.Background())
	assert.Error(t, err)
}
