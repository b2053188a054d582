package async

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/arvidhagen/replaykit/internal/export"
	"github.com/arvidhagen/replaykit/internal/model"
)

const (
	defaultBufferSize   = 16
	defaultDrainTimeout = 5 * time.Second
)

// Option configures an Async wrapper.
type Option func(*Async)

// WithBufferSize sets the channel buffer capacity. Default: 16.
func WithBufferSize(n int) Option {
	return func(a *Async) { a.bufSize = n }
}

// WithOnError sets the callback invoked when the inner exporter fails.
// Default: logs a warning via slog.
func WithOnError(f func(error)) Option {
	return func(a *Async) { a.errFunc = f }
}

// WithDropOnFull makes Export return immediately (dropping the snapshot)
// when the buffer is full, instead of blocking. Use for destinations
// where lossiness is acceptable (e.g., a non-critical webhook).
func WithDropOnFull() Option {
	return func(a *Async) { a.dropOnFull = true }
}

// Async decouples snapshot production from delivery via a buffered
// channel. Callers export into the channel; a background goroutine
// drains it to the wrapped exporter. Errors from the inner exporter are
// passed to errFunc rather than propagated to the caller.
type Async struct {
	inner      export.Exporter
	ch         chan model.Snapshot
	done       chan struct{}
	errFunc    func(error)
	bufSize    int
	dropOnFull bool
	closeOnce  sync.Once
}

// New wraps an exporter in an async channel-based writer.
// The background drain goroutine starts immediately.
func New(inner export.Exporter, opts ...Option) *Async {
	a := &Async{
		inner:   inner,
		bufSize: defaultBufferSize,
		errFunc: func(err error) { slog.Warn("async export error", "error", err) },
	}
	for _, opt := range opts {
		opt(a)
	}
	a.ch = make(chan model.Snapshot, a.bufSize)
	a.done = make(chan struct{})
	go a.drain()
	return a
}

// Export sends the snapshot into the channel. By default, blocks if the
// channel is full (backpressure). With WithDropOnFull, returns nil
// immediately and the snapshot is lost.
func (a *Async) Export(_ context.Context, snap model.Snapshot) error {
	if a.dropOnFull {
		select {
		case a.ch <- snap:
		default:
			slog.Warn("async export buffer full, dropping snapshot",
				"event", snap.Event.ID)
		}
		return nil
	}
	a.ch <- snap
	return nil
}

// Close closes the channel, waits for the drain goroutine to finish
// (with a timeout), then closes the inner exporter.
func (a *Async) Close() error {
	var err error
	a.closeOnce.Do(func() {
		close(a.ch)
		select {
		case <-a.done:
		case <-time.After(defaultDrainTimeout):
			slog.Warn("async export drain timed out")
		}
		err = a.inner.Close()
	})
	return err
}

// drain reads snapshots from the channel and hands them to the inner exporter.
func (a *Async) drain() {
	defer close(a.done)
	for snap := range a.ch {
		if err := a.inner.Export(context.Background(), snap); err != nil {
			a.errFunc(err)
		}
	}
}
