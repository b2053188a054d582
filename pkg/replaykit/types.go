package replaykit

import (
	"github.com/arvidhagen/replaykit/internal/model"
	"github.com/arvidhagen/replaykit/internal/replay"
)

// Public names for the result types. These are aliases, so values
// returned by the client interoperate directly with the wire format.
type (
	// Snapshot is the immutable result of one completed fetch.
	Snapshot = model.Snapshot
	// Event is a full event body: the root replay event, a related
	// transaction event, or the synthetic merged timeline event.
	Event = model.Event
	// Entry is one element of an event's entry list.
	Entry = model.Entry
	// Span is one timed sub-record of a transaction event.
	Span = model.Span
	// Breadcrumb is one chronological log entry of an event.
	Breadcrumb = model.Breadcrumb
	// RRWebEvent is one record from a parsed timeline attachment.
	RRWebEvent = model.RRWebEvent
	// State is the tracked view of the latest fetch cycle.
	State = replay.State
)

// ErrSuperseded is returned by Refresh when a newer refresh started
// before this one finished; the stale result is discarded.
var ErrSuperseded = replay.ErrSuperseded

// ErrBadSlug marks an event slug that failed validation.
var ErrBadSlug = replay.ErrBadSlug
