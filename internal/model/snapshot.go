package model

// Snapshot is the immutable result of one completed replay load cycle.
// Either every field is populated from the same cycle or the load failed
// and the caller got an error instead; no partial snapshots exist.
type Snapshot struct {
	// Event is the root replay event fetched by slug.
	Event Event `json:"event"`

	// MergedReplayEvent is the synthetic timeline event: the first related
	// event's shape carrying one concatenated span sequence.
	MergedReplayEvent Event `json:"mergedReplayEvent"`

	// ReplayEvents are the full bodies of the related transaction events,
	// in index order.
	ReplayEvents []Event `json:"replayEvents"`

	// RRWebEvents are the flattened timeline records from all matching
	// attachments, in listed-attachment order.
	RRWebEvents []RRWebEvent `json:"rrwebEvents"`

	// BreadcrumbEntry merges breadcrumb entries across the root and
	// related events, sorted by timestamp. Nil when none carried any.
	BreadcrumbEntry *Entry `json:"breadcrumbEntry,omitempty"`
}
