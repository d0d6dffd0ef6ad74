// Package sink delivers clustering snapshots to renderers and recorders.
//
// The engine knows nothing about presentation. Callers push each snapshot to
// a Sink; a sink colors clusters, prints them, keeps them in memory or
// records them to a blob store.
package sink

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/kmeans3d"
)

// Sink receives clustering snapshots in step order.
type Sink interface {
	Publish(ctx context.Context, snap kmeans3d.Snapshot) error
}

// Func adapts a function to the Sink interface.
type Func func(ctx context.Context, snap kmeans3d.Snapshot) error

// Publish calls f.
func (f Func) Publish(ctx context.Context, snap kmeans3d.Snapshot) error {
	return f(ctx, snap)
}

type multi []Sink

// Multi returns a Sink that publishes to every sink in order and stops at
// the first error.
func Multi(sinks ...Sink) Sink {
	m := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	return m
}

func (m multi) Publish(ctx context.Context, snap kmeans3d.Snapshot) error {
	for i, s := range m {
		if err := s.Publish(ctx, snap); err != nil {
			return fmt.Errorf("sink %d: %w", i, err)
		}
	}
	return nil
}

// Collector keeps every published snapshot in memory.
type Collector struct {
	mu    sync.Mutex
	snaps []kmeans3d.Snapshot
}

// Publish implements Sink.
func (c *Collector) Publish(_ context.Context, snap kmeans3d.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snaps = append(c.snaps, snap)
	return nil
}

// Snapshots returns the snapshots published so far.
func (c *Collector) Snapshots() []kmeans3d.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]kmeans3d.Snapshot, len(c.snaps))
	copy(out, c.snaps)
	return out
}

// Len returns the number of snapshots published so far.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.snaps)
}

// Last returns the most recent snapshot.
func (c *Collector) Last() (kmeans3d.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.snaps) == 0 {
		return kmeans3d.Snapshot{}, false
	}
	return c.snaps[len(c.snaps)-1], true
}
