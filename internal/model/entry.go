package model

import (
	"encoding/json"
	"fmt"
)

// EntryType discriminates the kinds of event entries.
type EntryType string

const (
	EntrySpans       EntryType = "spans"
	EntryBreadcrumbs EntryType = "breadcrumbs"
)

// Entry is one element of an event's entry list, a tagged variant keyed
// by Type. Span- and breadcrumb-bearing entries decode into typed slices;
// every other kind keeps its raw data payload untouched so events
// round-trip losslessly.
type Entry struct {
	Type        EntryType
	Spans       []Span       // populated when Type == EntrySpans
	Breadcrumbs []Breadcrumb // populated when Type == EntryBreadcrumbs
	Raw         json.RawMessage
}

// NewSpansEntry builds a spans entry from the given span sequence.
func NewSpansEntry(spans []Span) Entry {
	return Entry{Type: EntrySpans, Spans: spans}
}

// NewBreadcrumbsEntry builds a breadcrumbs entry.
func NewBreadcrumbsEntry(crumbs []Breadcrumb) Entry {
	return Entry{Type: EntryBreadcrumbs, Breadcrumbs: crumbs}
}

type entryEnvelope struct {
	Type EntryType       `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Breadcrumb payloads are wrapped in a values object on the wire.
type breadcrumbData struct {
	Values []Breadcrumb `json:"values"`
}

func (e Entry) MarshalJSON() ([]byte, error) {
	var data any
	switch e.Type {
	case EntrySpans:
		spans := e.Spans
		if spans == nil {
			spans = []Span{}
		}
		data = spans
	case EntryBreadcrumbs:
		crumbs := e.Breadcrumbs
		if crumbs == nil {
			crumbs = []Breadcrumb{}
		}
		data = breadcrumbData{Values: crumbs}
	default:
		raw := e.Raw
		if raw == nil {
			raw = json.RawMessage("null")
		}
		data = raw
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(entryEnvelope{Type: e.Type, Data: payload})
}

func (e *Entry) UnmarshalJSON(b []byte) error {
	var env entryEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}
	*e = Entry{Type: env.Type}
	switch env.Type {
	case EntrySpans:
		if err := json.Unmarshal(env.Data, &e.Spans); err != nil {
			return fmt.Errorf("spans entry: %w", err)
		}
	case EntryBreadcrumbs:
		var bd breadcrumbData
		if err := json.Unmarshal(env.Data, &bd); err != nil {
			return fmt.Errorf("breadcrumbs entry: %w", err)
		}
		e.Breadcrumbs = bd.Values
	default:
		e.Raw = env.Data
	}
	return nil
}
