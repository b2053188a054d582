package replay

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/arvidhagen/replaykit/internal/model"
	"github.com/arvidhagen/replaykit/internal/source"
)

// Related events are the transactions tagged with the replay identifier,
// scoped to a bounded recent window.
const relatedStatsPeriod = "14d"

func relatedQuery(replayID string) source.EventQuery {
	return source.EventQuery{
		Fields:      []string{"id", "project.name", "timestamp"},
		Query:       fmt.Sprintf("event.type:transaction replayId:%s", replayID),
		Sort:        "timestamp",
		StatsPeriod: relatedStatsPeriod,
	}
}

// fetchRelatedEvents queries the secondary index for events sharing the
// replay identifier, then fetches each full body. Full fetches run
// concurrently; results are stored by index so the returned slice keeps
// index order regardless of completion order. Index order is treated as
// authoritative, so there is no post-fetch re-sort.
func (l *Loader) fetchRelatedEvents(ctx context.Context, org, replayID string) ([]model.Event, error) {
	descs, err := l.source.Query(ctx, org, relatedQuery(replayID))
	if err != nil {
		return nil, fmt.Errorf("query related events: %w", err)
	}
	if len(descs) == 0 {
		return nil, nil
	}

	events := make([]model.Event, len(descs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.fetchLimit)
	for i, d := range descs {
		g.Go(func() error {
			ev, err := l.source.Event(gctx, org, d.Project, d.ID)
			if err != nil {
				return fmt.Errorf("fetch related event %s: %w", d.ID, err)
			}
			events[i] = ev
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return events, nil
}
