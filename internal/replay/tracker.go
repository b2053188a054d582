package replay

import (
	"context"
	"errors"
	"sync"

	"github.com/arvidhagen/replaykit/internal/metrics"
	"github.com/arvidhagen/replaykit/internal/model"
)

// ErrSuperseded is returned to a load cycle whose result arrived after a
// newer cycle had already started. The stale result is discarded.
var ErrSuperseded = errors.New("replay load superseded by a newer request")

// State is the consumer-facing view of the latest load cycle: fetching
// while a cycle is in flight, then either an error or a snapshot.
type State struct {
	Fetching bool
	Err      error
	Snapshot *model.Snapshot
}

type snapshotLoader interface {
	Load(ctx context.Context, req Request) (model.Snapshot, error)
}

// Tracker serializes load cycles and publishes only the newest result.
// Starting a new load supersedes any in-flight cycle: when the older
// cycle completes, its outcome is dropped instead of overwriting the
// newer cycle's state.
type Tracker struct {
	loader  snapshotLoader
	metrics metrics.Recorder

	mu    sync.Mutex
	gen   uint64
	state State
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithTrackerMetrics sets the recorder for superseded cycles.
func WithTrackerMetrics(m metrics.Recorder) TrackerOption {
	return func(t *Tracker) { t.metrics = m }
}

// NewTracker wraps a loader with stale-result guarding.
func NewTracker(l snapshotLoader, opts ...TrackerOption) *Tracker {
	t := &Tracker{loader: l, metrics: metrics.Noop{}}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load starts a new cycle and blocks until it completes. The returned
// values are this cycle's outcome; if a newer cycle started meanwhile,
// the outcome is ErrSuperseded and the published state is untouched.
func (t *Tracker) Load(ctx context.Context, req Request) (model.Snapshot, error) {
	t.mu.Lock()
	t.gen++
	gen := t.gen
	t.state = State{Fetching: true}
	t.mu.Unlock()

	snap, err := t.loader.Load(ctx, req)

	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen {
		t.metrics.RecordSuperseded()
		return model.Snapshot{}, ErrSuperseded
	}
	if err != nil {
		t.state = State{Err: err}
		return model.Snapshot{}, err
	}
	t.state = State{Snapshot: &snap}
	return snap, nil
}

// State returns the latest published state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
