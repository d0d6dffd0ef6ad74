package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	// 1. Create and write
	blobName := "runs/demo/step-000001.json"
	content := []byte("hello world, this is a test blob")

	w, err := store.Create(ctx, blobName)
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)

	// Not visible until closed.
	_, err = os.Stat(filepath.Join(tmpDir, "runs", "demo", "step-000001.json"))
	require.True(t, os.IsNotExist(err))
	names, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Empty(t, names)

	require.NoError(t, w.Close())

	info, err := os.Stat(filepath.Join(tmpDir, "runs", "demo", "step-000001.json"))
	require.NoError(t, err)
	require.Equal(t, int64(len(content)), info.Size())

	// 2. Open and ReadAt
	blob, err := store.Open(ctx, blobName)
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(content)), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "world", string(buf))

	// 3. ReadRange
	rangeReader, err := blob.ReadRange(ctx, 13, 4)
	require.NoError(t, err)
	defer rangeReader.Close()

	rangeContent, err := io.ReadAll(rangeReader)
	require.NoError(t, err)
	require.Equal(t, "this", string(rangeContent))

	// 4. List
	require.NoError(t, store.Put(ctx, "runs/demo/step-000002.json", []byte("{}")))
	require.NoError(t, store.Put(ctx, "points.csv", []byte("1,2,3\n")))

	names, err = store.List(ctx, "runs/")
	require.NoError(t, err)
	require.Equal(t, []string{"runs/demo/step-000001.json", "runs/demo/step-000002.json"}, names)

	names, err = store.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"points.csv", "runs/demo/step-000001.json", "runs/demo/step-000002.json"}, names)

	// 5. Delete
	require.NoError(t, store.Delete(ctx, blobName))
	require.NoError(t, store.Delete(ctx, blobName))

	_, err = store.Open(ctx, blobName)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_ReadRange_Boundaries(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	data := []byte("0123456789")
	require.NoError(t, store.Put(ctx, "boundary.bin", data))

	blob, err := store.Open(ctx, "boundary.bin")
	require.NoError(t, err)
	defer blob.Close()

	// Case 1: Read full range
	r, err := blob.ReadRange(ctx, 0, 10)
	require.NoError(t, err)
	content, err := io.ReadAll(r)
	require.NoError(t, err)
	r.Close()
	require.Equal(t, data, content)

	// Case 2: Read past end
	r, err = blob.ReadRange(ctx, 8, 5)
	require.NoError(t, err)
	content, err = io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "89", string(content))
	r.Close()

	// Case 3: Offset past EOF
	_, err = blob.ReadRange(ctx, 20, 5)
	require.ErrorIs(t, err, io.EOF)

	// Case 4: Short ReadAt at the tail
	buf := make([]byte, 4)
	n, err := blob.ReadAt(ctx, buf, 8)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, "89", string(buf[:n]))
}

func TestLocalStore_RejectsEscapingNames(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"../outside", "/abs/path", ""} {
		_, err := store.Create(ctx, name)
		assert.Error(t, err, name)
		_, err = store.Open(ctx, name)
		assert.Error(t, err, name)
	}
}

func TestLocalStore_MissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "does-not-exist"))

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStore_CanceledContext(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Create(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Put(ctx, "x", []byte("y")), context.Canceled)
}

func TestReadAll(t *testing.T) {
	ctx := context.Background()

	for name, store := range map[string]BlobStore{
		"local":  NewLocalStore(t.TempDir()),
		"memory": NewMemoryStore(),
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Put(ctx, "a/data.bin", []byte("payload")))
			require.NoError(t, store.Put(ctx, "a/empty.bin", nil))

			got, err := ReadAll(ctx, store, "a/data.bin")
			require.NoError(t, err)
			assert.Equal(t, "payload", string(got))

			got, err = ReadAll(ctx, store, "a/empty.bin")
			require.NoError(t, err)
			assert.Empty(t, got)

			_, err = ReadAll(ctx, store, "a/missing.bin")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}
