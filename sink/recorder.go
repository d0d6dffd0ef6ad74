package sink

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/hupe1980/kmeans3d"
	"github.com/hupe1980/kmeans3d/blobstore"
	"github.com/hupe1980/kmeans3d/codec"
	"github.com/hupe1980/kmeans3d/internal/compress"
)

// Recorder writes every snapshot to a blob store as
// "<prefix>/step-<iteration>.json", optionally compressed.
type Recorder struct {
	store  blobstore.BlobStore
	prefix string
	codec  codec.Codec
	kind   compress.Kind
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder) error

// WithCodec sets the snapshot codec. Defaults to codec.Default.
func WithCodec(c codec.Codec) RecorderOption {
	return func(r *Recorder) error {
		if c == nil {
			return errors.New("sink: codec is nil")
		}
		r.codec = c
		return nil
	}
}

// WithCompression selects "none", "lz4" or "zstd" framing.
func WithCompression(name string) RecorderOption {
	return func(r *Recorder) error {
		kind, err := compress.ParseKind(name)
		if err != nil {
			return fmt.Errorf("sink: %w", err)
		}
		r.kind = kind
		return nil
	}
}

// NewRecorder returns a Recorder that stores snapshots below prefix.
func NewRecorder(store blobstore.BlobStore, prefix string, opts ...RecorderOption) (*Recorder, error) {
	if store == nil {
		return nil, errors.New("sink: recorder store is nil")
	}

	r := &Recorder{
		store:  store,
		prefix: strings.Trim(prefix, "/"),
		codec:  codec.Default,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Name returns the blob name used for the snapshot of the given iteration.
func (r *Recorder) Name(iteration int) string {
	return stepName(r.prefix, iteration) + r.kind.Extension()
}

// Publish implements Sink.
func (r *Recorder) Publish(ctx context.Context, snap kmeans3d.Snapshot) error {
	data, err := r.codec.Marshal(snap)
	if err != nil {
		return fmt.Errorf("sink: encode step %d: %w", snap.Iterations, err)
	}

	if r.kind != compress.None {
		if data, err = compress.Encode(r.kind, data); err != nil {
			return fmt.Errorf("sink: compress step %d: %w", snap.Iterations, err)
		}
	}

	name := r.Name(snap.Iterations)
	if err := r.store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("sink: store %s: %w", name, err)
	}
	return nil
}

func stepName(prefix string, iteration int) string {
	return path.Join(prefix, fmt.Sprintf("step-%06d.json", iteration))
}

// LoadRecording reads back the snapshots a Recorder stored below prefix,
// ordered by iteration. Compressed and plain steps may be mixed. Every
// returned snapshot assigns its points to existing clusters only.
func LoadRecording(ctx context.Context, store blobstore.BlobStore, prefix string, c codec.Codec) ([]kmeans3d.Snapshot, error) {
	if c == nil {
		c = codec.Default
	}

	dir := strings.Trim(prefix, "/")
	listPrefix := "step-"
	if dir != "" {
		listPrefix = dir + "/step-"
	}

	names, err := store.List(ctx, listPrefix)
	if err != nil {
		return nil, fmt.Errorf("sink: list %s: %w", prefix, err)
	}

	type step struct {
		iteration int
		name      string
	}
	var steps []step
	for _, name := range names {
		rest := strings.TrimPrefix(name, listPrefix)
		if strings.Contains(rest, "/") {
			continue
		}
		digits, _, _ := strings.Cut(rest, ".")
		iteration, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		steps = append(steps, step{iteration: iteration, name: name})
	}
	slices.SortStableFunc(steps, func(a, b step) int { return cmp.Compare(a.iteration, b.iteration) })

	snaps := make([]kmeans3d.Snapshot, 0, len(steps))
	for _, st := range steps {
		name := st.name
		data, err := blobstore.ReadAll(ctx, store, name)
		if err != nil {
			return nil, err
		}
		if !strings.HasSuffix(name, ".json") {
			if data, err = compress.Decode(data); err != nil {
				return nil, fmt.Errorf("sink: decompress %s: %w", name, err)
			}
		}

		var snap kmeans3d.Snapshot
		if err := c.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("sink: decode %s: %w", name, err)
		}
		for i, a := range snap.Assignment {
			if a < 0 || a >= len(snap.Centroids) {
				return nil, fmt.Errorf("sink: decode %s: point %d assigned to missing cluster %d", name, i, a)
			}
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}
