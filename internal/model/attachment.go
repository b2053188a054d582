package model

import "encoding/json"

// Attachment is metadata for a downloadable blob associated with an event.
type Attachment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Size     int64  `json:"size,omitempty"`
	MimeType string `json:"mimetype,omitempty"`
}

// RRWebEvent is one timed record from a parsed rrweb timeline attachment.
// Timestamp is epoch milliseconds. Data has no fixed schema beyond
// chronological ordering, so it stays raw.
type RRWebEvent struct {
	Type      int             `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}
