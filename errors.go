package kmeans3d

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned when an engine cannot be built from
	// the supplied points, k or centroids.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNotInitialized is returned when a zero-value Engine is stepped.
	ErrNotInitialized = errors.New("engine not initialized")

	// ErrInvalidPartition is returned by Snapshot.Validate when the cluster
	// member lists do not partition the point set.
	ErrInvalidPartition = errors.New("invalid partition")
)

// ConfigError describes which construction argument was rejected.
//
// It always satisfies errors.Is(err, ErrInvalidConfiguration).
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s (got %v)", e.Field, e.Reason, e.Value)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfiguration }
