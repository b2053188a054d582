package model

import "encoding/json"

// Event is a full event body as returned by the event-read endpoint.
// Both the root replay event and its related transaction events share
// this shape.
type Event struct {
	ID             string          `json:"eventID"`
	Project        string          `json:"projectSlug,omitempty"`
	Title          string          `json:"title,omitempty"`
	Type           string          `json:"type,omitempty"`
	Tags           []Tag           `json:"tags,omitempty"`
	Entries        []Entry         `json:"entries"`
	StartTimestamp float64         `json:"startTimestamp,omitempty"`
	EndTimestamp   float64         `json:"endTimestamp,omitempty"`
	Breakdowns     json.RawMessage `json:"breakdowns,omitempty"`
}

// Tag is a key/value pair attached to an event.
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TagValue returns the value of the first tag with the given key, or "".
func (e Event) TagValue(key string) string {
	for _, t := range e.Tags {
		if t.Key == key {
			return t.Value
		}
	}
	return ""
}

// Span is one timed sub-record of a transaction event. Timestamps are
// epoch seconds, as on the wire.
type Span struct {
	SpanID         string         `json:"span_id,omitempty"`
	ParentSpanID   string         `json:"parent_span_id,omitempty"`
	Op             string         `json:"op,omitempty"`
	Description    string         `json:"description,omitempty"`
	StartTimestamp float64        `json:"start_timestamp"`
	Timestamp      float64        `json:"timestamp"`
	Data           map[string]any `json:"data,omitempty"`
}

// Breadcrumb is one chronological log entry of an event.
type Breadcrumb struct {
	Type      string         `json:"type,omitempty"`
	Category  string         `json:"category,omitempty"`
	Level     string         `json:"level,omitempty"`
	Message   string         `json:"message,omitempty"`
	Timestamp float64        `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// EventDescriptor is a lightweight row returned by the secondary event
// index. ID plus Project is enough to build a full-event slug.
type EventDescriptor struct {
	ID        string `json:"id"`
	Project   string `json:"project.name"`
	Title     string `json:"title,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}
