package replay

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"golang.org/x/sync/errgroup"

	"github.com/arvidhagen/replaykit/internal/model"
)

// Timeline attachments are named rrweb-<13-digit epoch millis>.json.
// Everything else attached to the event is ignored.
var timelineName = regexp.MustCompile(`^rrweb-\d{13}\.json$`)

// FilterTimelineAttachments returns the attachments whose names match the
// timeline naming convention, preserving server-provided list order.
func FilterTimelineAttachments(atts []model.Attachment) []model.Attachment {
	var out []model.Attachment
	for _, a := range atts {
		if timelineName.MatchString(a.Name) {
			out = append(out, a)
		}
	}
	return out
}

// The downloaded blob is a JSON document with an events array.
type attachmentPayload struct {
	Events []model.RRWebEvent `json:"events"`
}

// collectRRWebEvents lists the event's attachments, downloads every
// timeline attachment, and flattens the parsed records in listed order.
// A failed download or parse fails the whole collection; there is no
// per-attachment skip or retry.
func (l *Loader) collectRRWebEvents(ctx context.Context, org, project, eventID string) ([]model.RRWebEvent, error) {
	atts, err := l.source.Attachments(ctx, org, project, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	matched := FilterTimelineAttachments(atts)
	if len(matched) == 0 {
		return nil, nil
	}

	// Download concurrently but keep results indexed by list position.
	parsed := make([][]model.RRWebEvent, len(matched))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.fetchLimit)
	for i, att := range matched {
		g.Go(func() error {
			blob, err := l.source.Download(gctx, org, project, eventID, att.ID)
			if err != nil {
				return fmt.Errorf("download %s: %w", att.Name, err)
			}
			var payload attachmentPayload
			if err := json.Unmarshal(blob, &payload); err != nil {
				return fmt.Errorf("parse %s: %w", att.Name, err)
			}
			parsed[i] = payload.Events
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var events []model.RRWebEvent
	for _, p := range parsed {
		events = append(events, p...)
	}
	return events, nil
}
