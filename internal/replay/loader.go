package replay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/arvidhagen/replaykit/internal/metrics"
	"github.com/arvidhagen/replaykit/internal/model"
	"github.com/arvidhagen/replaykit/internal/source"
)

const defaultFetchLimit = 4

// Request identifies one replay to load.
type Request struct {
	Organization string
	// EventSlug is <projectSlug>:<eventID> of the root replay event.
	EventSlug string
}

// Option configures a Loader.
type Option func(*Loader)

// WithMetrics sets the recorder for load outcomes. Default: discard.
func WithMetrics(m metrics.Recorder) Option {
	return func(l *Loader) { l.metrics = m }
}

// WithFetchLimit bounds concurrent attachment downloads and related-event
// fetches within one branch. Default: 4.
func WithFetchLimit(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.fetchLimit = n
		}
	}
}

// Loader runs replay load cycles against an upstream source. Stateless:
// every Load recomputes from scratch and owns its intermediate buffers
// exclusively, so a Loader is safe for concurrent use.
type Loader struct {
	source     source.Source
	metrics    metrics.Recorder
	fetchLimit int
}

// NewLoader creates a Loader backed by the given source.
func NewLoader(src source.Source, opts ...Option) *Loader {
	l := &Loader{
		source:     src,
		metrics:    metrics.Noop{},
		fetchLimit: defaultFetchLimit,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches the root event, its timeline attachments, and the related
// transaction events concurrently, then merges them into a Snapshot.
// Any branch failure cancels the others and fails the whole cycle; on
// error the returned Snapshot is zero, never partially populated.
func (l *Loader) Load(ctx context.Context, req Request) (model.Snapshot, error) {
	if req.Organization == "" {
		return model.Snapshot{}, fmt.Errorf("replay load: missing organization")
	}
	project, eventID, err := ParseSlug(req.EventSlug)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("replay load: %w", err)
	}

	// Cycle ID is for log correlation only.
	cycle := uuid.NewString()
	start := time.Now()
	slog.Debug("replay load started",
		"cycle", cycle, "org", req.Organization, "slug", req.EventSlug)

	var (
		root    model.Event
		rrweb   []model.RRWebEvent
		related []model.Event
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ev, err := l.source.Event(gctx, req.Organization, project, eventID)
		if err != nil {
			return fmt.Errorf("fetch root event: %w", err)
		}
		root = ev
		return nil
	})
	g.Go(func() error {
		events, err := l.collectRRWebEvents(gctx, req.Organization, project, eventID)
		if err != nil {
			return err
		}
		rrweb = events
		return nil
	})
	g.Go(func() error {
		events, err := l.fetchRelatedEvents(gctx, req.Organization, eventID)
		if err != nil {
			return err
		}
		related = events
		return nil
	})

	if err := g.Wait(); err != nil {
		l.metrics.RecordFailure()
		slog.Warn("replay load failed", "cycle", cycle, "error", err)
		return model.Snapshot{}, fmt.Errorf("replay load: %w", err)
	}

	snap := model.Snapshot{
		Event:             root,
		MergedReplayEvent: MergeReplayEvents(related),
		ReplayEvents:      related,
		RRWebEvents:       rrweb,
		BreadcrumbEntry:   MergeBreadcrumbs(append([]model.Event{root}, related...)...),
	}

	elapsed := time.Since(start)
	l.metrics.RecordSuccess(elapsed)
	slog.Debug("replay load finished",
		"cycle", cycle, "elapsed", elapsed,
		"related", len(related), "rrweb", len(rrweb))
	return snap, nil
}
