package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	w, err := store.Create(ctx, "runs/step-000001.json")
	require.NoError(t, err)
	_, err = w.Write([]byte("hello "))
	require.NoError(t, err)

	_, err = store.Open(ctx, "runs/step-000001.json")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = w.Write([]byte("world"))
	require.NoError(t, err)
	require.NoError(t, w.Sync())
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Close(), io.ErrClosedPipe)

	blob, err := store.Open(ctx, "runs/step-000001.json")
	require.NoError(t, err)
	assert.Equal(t, int64(11), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	assert.Equal(t, "world", string(buf[:n]))

	_, err = blob.ReadRange(ctx, 11, 1)
	assert.ErrorIs(t, err, io.EOF)
	require.NoError(t, blob.Close())

	require.NoError(t, store.Put(ctx, "runs/step-000000.json", []byte("{}")))
	require.NoError(t, store.Put(ctx, "other", []byte("x")))

	names, err := store.List(ctx, "runs/")
	require.NoError(t, err)
	assert.Equal(t, []string{"runs/step-000000.json", "runs/step-000001.json"}, names)

	require.NoError(t, store.Delete(ctx, "other"))
	names, err = store.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, names, 2)
}

func TestMemoryStore_PutCopiesInput(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	data := []byte("abc")
	require.NoError(t, store.Put(ctx, "k", data))
	data[0] = 'z'

	got, err := ReadAll(ctx, store, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}
