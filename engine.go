package kmeans3d

import (
	"math"
	"slices"
	"time"

	"github.com/golang/geo/r3"
	"github.com/hupe1980/kmeans3d/internal/lloyd"
)

// Point is an immutable position in three-dimensional space.
type Point = r3.Vector

// Engine clusters a fixed point set with Lloyd's algorithm.
//
// The zero value is an uninitialized engine: Step, RunToConvergence and
// Nearest return ErrNotInitialized until the engine is built with New or
// NewWithCentroids.
//
// An Engine must not be mutated by more than one goroutine at a time.
// Values returned by its accessors are copies and may be shared freely.
type Engine struct {
	points      []Point
	centroids   []Point
	assignments []int
	assigned    bool
	converged   bool
	iterations  int

	logger  *Logger
	metrics MetricsCollector
}

// New builds an engine whose k initial centroids are sampled uniformly from
// points. Each centroid is drawn independently, so two centroids may start at
// the same point.
//
// It fails with ErrInvalidConfiguration if points is empty, holds a NaN or
// infinite coordinate, or k < 1.
// Use WithSeed or WithRand for reproducible initialization.
func New(points []Point, k int, opts ...Option) (*Engine, error) {
	o := applyOptions(opts)

	if err := validate(points, k); err != nil {
		o.logger.LogInit(k, len(points), err)
		o.metricsCollector.RecordInit(k, len(points), err)
		return nil, err
	}

	centroids := make([]Point, k)
	for i := range centroids {
		centroids[i] = points[o.rng.Intn(len(points))]
	}

	return newEngine(points, centroids, o), nil
}

// NewWithCentroids builds an engine that starts from the given centroids.
// k is len(centroids).
func NewWithCentroids(points, centroids []Point, opts ...Option) (*Engine, error) {
	o := applyOptions(opts)

	var err error
	if len(centroids) == 0 {
		err = &ConfigError{Field: "centroids", Value: 0, Reason: "must not be empty"}
	} else if err = validate(points, len(centroids)); err == nil && !allFinite(centroids) {
		err = &ConfigError{Field: "centroids", Value: len(centroids), Reason: "must be finite"}
	}
	if err != nil {
		o.logger.LogInit(len(centroids), len(points), err)
		o.metricsCollector.RecordInit(len(centroids), len(points), err)
		return nil, err
	}

	return newEngine(points, slices.Clone(centroids), o), nil
}

func validate(points []Point, k int) error {
	if k < 1 {
		return &ConfigError{Field: "k", Value: k, Reason: "must be at least 1"}
	}
	if len(points) == 0 {
		return &ConfigError{Field: "points", Value: 0, Reason: "must not be empty"}
	}
	if !allFinite(points) {
		return &ConfigError{Field: "points", Value: len(points), Reason: "must be finite"}
	}
	return nil
}

func allFinite(ps []Point) bool {
	for _, p := range ps {
		for _, v := range [3]float64{p.X, p.Y, p.Z} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

func newEngine(points, centroids []Point, o options) *Engine {
	e := &Engine{
		points:      slices.Clone(points),
		centroids:   centroids,
		assignments: make([]int, len(points)),
		logger:      o.logger.WithK(len(centroids)).WithCount(len(points)),
		metrics:     o.metricsCollector,
	}
	e.logger.LogInit(len(centroids), len(points), nil)
	e.metrics.RecordInit(len(centroids), len(points), nil)
	return e
}

func (e *Engine) ready() bool {
	return e != nil && len(e.centroids) > 0
}

// Step performs one refinement iteration: every point is assigned to its
// nearest centroid, then every non-empty cluster's centroid moves to the mean
// of its members. Step reports whether any centroid moved.
//
// Centroids are compared with exact floating-point equality. On some inputs
// rounding can make two centroids trade places forever; RunToConvergence's
// iteration cap guards against that. A NaN coordinate would make its
// centroid unequal to itself on every step, which is why New and
// NewWithCentroids reject non-finite input.
func (e *Engine) Step() (bool, error) {
	if !e.ready() {
		return false, ErrNotInitialized
	}

	start := time.Now()

	lloyd.Assign(e.points, e.centroids, e.assignments)
	changed, empty := lloyd.Update(e.points, e.assignments, e.centroids)

	e.assigned = true
	e.converged = !changed
	e.iterations++

	e.metrics.RecordStep(time.Since(start), changed, empty)
	e.logger.LogStep(e.iterations, changed, empty)

	return changed, nil
}

// RunToConvergence calls Step until no centroid moves or maxIterations steps
// have run. maxIterations <= 0 means no limit.
//
// The returned snapshot's Converged field tells the two outcomes apart.
func (e *Engine) RunToConvergence(maxIterations int) (Snapshot, error) {
	if !e.ready() {
		return Snapshot{}, ErrNotInitialized
	}

	start := time.Now()
	steps := 0

	for maxIterations <= 0 || steps < maxIterations {
		changed, err := e.Step()
		if err != nil {
			return Snapshot{}, err
		}
		steps++
		if !changed {
			break
		}
	}

	e.metrics.RecordRun(steps, e.converged, time.Since(start))
	e.logger.LogConverged(e.iterations, e.converged)

	return e.Snapshot(), nil
}

// CurrentAssignment maps each cluster index to the indices of its points in
// ascending order. Every cluster index 0..k-1 is present; empty clusters map
// to an empty slice. The map is empty until the first Step.
func (e *Engine) CurrentAssignment() map[int][]int {
	out := make(map[int][]int)
	if !e.ready() || !e.assigned {
		return out
	}
	for j, members := range lloyd.Members(e.assignments, len(e.centroids)) {
		out[j] = members
	}
	return out
}

// Snapshot returns a copy of the current clustering state.
func (e *Engine) Snapshot() Snapshot {
	if !e.ready() {
		return Snapshot{}
	}
	s := Snapshot{
		Centroids:  slices.Clone(e.centroids),
		Iterations: e.iterations,
		Converged:  e.assigned && e.converged,
	}
	if e.assigned {
		s.Assignment = slices.Clone(e.assignments)
		s.Clusters = lloyd.Members(e.assignments, len(e.centroids))
	}
	return s
}

// Nearest returns the index of the current centroid closest to p, using the
// same lowest-index tie-break as Step.
func (e *Engine) Nearest(p Point) (int, error) {
	if !e.ready() {
		return -1, ErrNotInitialized
	}
	return lloyd.Nearest(p, e.centroids), nil
}

// K returns the number of clusters.
func (e *Engine) K() int {
	if e == nil {
		return 0
	}
	return len(e.centroids)
}

// Points returns a copy of the point set.
func (e *Engine) Points() []Point {
	if e == nil {
		return nil
	}
	return slices.Clone(e.points)
}

// Centroids returns a copy of the current centroids.
func (e *Engine) Centroids() []Point {
	if e == nil {
		return nil
	}
	return slices.Clone(e.centroids)
}

// Assignment returns the cluster index of every point, or nil before the
// first Step.
func (e *Engine) Assignment() []int {
	if !e.ready() || !e.assigned {
		return nil
	}
	return slices.Clone(e.assignments)
}

// Iterations returns the number of Step calls completed so far.
func (e *Engine) Iterations() int {
	if e == nil {
		return 0
	}
	return e.iterations
}
