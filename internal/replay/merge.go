package replay

import "github.com/arvidhagen/replaykit/internal/model"

// MergeReplayEvents synthesizes the unified replay timeline event from
// the related transaction events.
//
// Each related event contributes its first spans entry (only the first,
// if an event somehow carries several). Contributions concatenate in
// related-event order, then intra-event order. The result clones the
// first related event's shape, replaces its entries with the single
// concatenated spans entry, clears any breakdowns payload, and sets the
// end timestamp to the last span's end timestamp.
//
// An empty related-event list yields an empty merged event with an empty
// span sequence and a zero end timestamp rather than faulting.
func MergeReplayEvents(replayEvents []model.Event) model.Event {
	var spans []model.Span
	for _, ev := range replayEvents {
		if entry, ok := firstSpansEntry(ev); ok {
			spans = append(spans, entry.Spans...)
		}
	}

	var merged model.Event
	if len(replayEvents) > 0 {
		merged = replayEvents[0]
	}
	merged.Entries = []model.Entry{model.NewSpansEntry(spans)}
	merged.Breakdowns = nil
	merged.EndTimestamp = 0
	if len(spans) > 0 {
		merged.EndTimestamp = spans[len(spans)-1].Timestamp
	}
	return merged
}

// firstSpansEntry returns the event's first spans-kind entry, if any.
func firstSpansEntry(ev model.Event) (model.Entry, bool) {
	for _, entry := range ev.Entries {
		if entry.Type == model.EntrySpans {
			return entry, true
		}
	}
	return model.Entry{}, false
}
