package replay

import (
	"context"
	"sync"

	"github.com/arvidhagen/replaykit/internal/model"
	"github.com/arvidhagen/replaykit/internal/source"
)

// fakeSource implements source.Source with per-operation function hooks
// and records every call.
type fakeSource struct {
	mu    sync.Mutex
	calls []string

	eventFn       func(org, project, eventID string) (model.Event, error)
	attachmentsFn func(org, project, eventID string) ([]model.Attachment, error)
	downloadFn    func(org, project, eventID, attachmentID string) ([]byte, error)
	queryFn       func(org string, q source.EventQuery) ([]model.EventDescriptor, error)
}

func (f *fakeSource) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSource) Event(_ context.Context, org, project, eventID string) (model.Event, error) {
	f.record("event:" + project + ":" + eventID)
	if f.eventFn == nil {
		return model.Event{ID: eventID, Project: project}, nil
	}
	return f.eventFn(org, project, eventID)
}

func (f *fakeSource) Attachments(_ context.Context, org, project, eventID string) ([]model.Attachment, error) {
	f.record("attachments:" + eventID)
	if f.attachmentsFn == nil {
		return nil, nil
	}
	return f.attachmentsFn(org, project, eventID)
}

func (f *fakeSource) Download(_ context.Context, org, project, eventID, attachmentID string) ([]byte, error) {
	f.record("download:" + attachmentID)
	if f.downloadFn == nil {
		return []byte(`{"events":[]}`), nil
	}
	return f.downloadFn(org, project, eventID, attachmentID)
}

func (f *fakeSource) Query(_ context.Context, org string, q source.EventQuery) ([]model.EventDescriptor, error) {
	f.record("query")
	if f.queryFn == nil {
		return nil, nil
	}
	return f.queryFn(org, q)
}

// spanEvent builds a transaction event carrying one spans entry.
func spanEvent(id string, spans ...model.Span) model.Event {
	return model.Event{
		ID:      id,
		Type:    "transaction",
		Entries: []model.Entry{model.NewSpansEntry(spans)},
	}
}
