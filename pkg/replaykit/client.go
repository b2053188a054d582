package replaykit

import (
	"context"
	"fmt"

	"github.com/arvidhagen/replaykit/internal/replay"
	"github.com/arvidhagen/replaykit/internal/source"

	// Register source provider implementations.
	_ "github.com/arvidhagen/replaykit/internal/source/glitchtip"
	_ "github.com/arvidhagen/replaykit/internal/source/sentry"
)

// Client fetches and merges replay timelines. Safe for concurrent use.
type Client struct {
	loader  *replay.Loader
	tracker *replay.Tracker
}

// New creates a Client for the configured provider.
func New(opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ctor, err := source.Get(o.provider)
	if err != nil {
		return nil, fmt.Errorf("replaykit: %w", err)
	}
	src, err := ctor(source.Config{
		Provider: o.provider,
		Endpoint: o.endpoint,
		Token:    o.token,
		Timeout:  o.timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("replaykit: %w", err)
	}

	var loaderOpts []replay.Option
	if o.fetchLimit > 0 {
		loaderOpts = append(loaderOpts, replay.WithFetchLimit(o.fetchLimit))
	}
	loader := replay.NewLoader(src, loaderOpts...)
	return &Client{
		loader:  loader,
		tracker: replay.NewTracker(loader),
	}, nil
}

// FetchReplay loads one replay by organization and <project>:<eventID>
// slug and merges it into a Snapshot. Stateless: every call recomputes
// from scratch, and a failure in any fetch branch fails the whole call
// with no partial results.
func (c *Client) FetchReplay(ctx context.Context, org, eventSlug string) (Snapshot, error) {
	return c.loader.Load(ctx, replay.Request{Organization: org, EventSlug: eventSlug})
}

// Refresh is FetchReplay with stale-result guarding: starting a new
// Refresh supersedes any in-flight one, whose late result is discarded
// with ErrSuperseded. The latest outcome is readable via State.
func (c *Client) Refresh(ctx context.Context, org, eventSlug string) (Snapshot, error) {
	return c.tracker.Load(ctx, replay.Request{Organization: org, EventSlug: eventSlug})
}

// State returns the latest outcome published by Refresh.
func (c *Client) State() State {
	return c.tracker.State()
}
