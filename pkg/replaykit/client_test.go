package replaykit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeUpstream serves the four upstream endpoints the client touches,
// recording which attachments get downloaded.
type fakeUpstream struct {
	mu        sync.Mutex
	downloads []string

	srv *httptest.Server
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{}
	mux := http.NewServeMux()

	// Root replay event.
	mux.HandleFunc("/organizations/acme/events/123:abc/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"eventID":     "abc",
			"projectSlug": "123",
			"type":        "replay",
			"entries": []map[string]any{
				{"type": "breadcrumbs", "data": map[string]any{
					"values": []map[string]any{
						{"category": "console", "timestamp": 15.0},
					},
				}},
			},
		})
	})

	// Attachment listing: one timeline attachment, one unrelated file.
	mux.HandleFunc("/projects/acme/123/events/abc/attachments/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "a1", "name": "rrweb-1670000000001.json"},
			{"id": "a2", "name": "other.json"},
		})
	})
	mux.HandleFunc("/projects/acme/123/events/abc/attachments/a1/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.downloads = append(f.downloads, "a1")
		f.mu.Unlock()
		w.Write([]byte(`{"events":[{"type":2,"timestamp":1670000000001}]}`))
	})
	mux.HandleFunc("/projects/acme/123/events/abc/attachments/a2/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.downloads = append(f.downloads, "a2")
		f.mu.Unlock()
		w.Write([]byte(`{"events":[]}`))
	})

	// Secondary event index.
	mux.HandleFunc("/organizations/acme/eventsv2/", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got, want := q.Get("query"), "event.type:transaction replayId:abc"; got != want {
			t.Errorf("index query = %q, want %q", got, want)
		}
		if got := q.Get("sort"); got != "timestamp" {
			t.Errorf("index sort = %q", got)
		}
		if got := q.Get("statsPeriod"); got != "14d" {
			t.Errorf("index statsPeriod = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "tx1", "project.name": "123"},
				{"id": "tx2", "project.name": "123"},
			},
		})
	})

	// Related transaction bodies.
	mux.HandleFunc("/organizations/acme/events/123:tx1/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"eventID": "tx1",
			"type":    "transaction",
			"entries": []map[string]any{
				{"type": "spans", "data": []map[string]any{
					{"op": "pageload", "start_timestamp": 10.0, "timestamp": 11.0},
					{"op": "http", "start_timestamp": 11.0, "timestamp": 12.0},
				}},
			},
		})
	})
	mux.HandleFunc("/organizations/acme/events/123:tx2/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"eventID": "tx2",
			"type":    "transaction",
			"entries": []map[string]any{
				{"type": "spans", "data": []map[string]any{
					{"op": "db", "start_timestamp": 12.0, "timestamp": 13.5},
				}},
			},
		})
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeUpstream) downloaded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.downloads...)
}

func newTestClient(t *testing.T, upstream *fakeUpstream) *Client {
	t.Helper()
	c, err := New(
		WithEndpoint(upstream.srv.URL),
		WithToken("test-token"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestFetchReplay(t *testing.T) {
	upstream := newFakeUpstream(t)
	c := newTestClient(t, upstream)

	snap, err := c.FetchReplay(context.Background(), "acme", "123:abc")
	if err != nil {
		t.Fatalf("FetchReplay: %v", err)
	}

	if snap.Event.ID != "abc" || snap.Event.Type != "replay" {
		t.Fatalf("wrong root event: %+v", snap.Event)
	}

	// Only the rrweb-named attachment gets downloaded.
	for _, id := range upstream.downloaded() {
		if id != "a1" {
			t.Fatalf("non-timeline attachment downloaded: %s", id)
		}
	}
	if len(snap.RRWebEvents) != 1 || snap.RRWebEvents[0].Timestamp != 1670000000001 {
		t.Fatalf("wrong rrweb events: %+v", snap.RRWebEvents)
	}

	// Related events keep index order and merge into one span sequence.
	if len(snap.ReplayEvents) != 2 || snap.ReplayEvents[0].ID != "tx1" || snap.ReplayEvents[1].ID != "tx2" {
		t.Fatalf("wrong related events: %+v", snap.ReplayEvents)
	}
	merged := snap.MergedReplayEvent
	if len(merged.Entries) != 1 {
		t.Fatalf("merged entries: %+v", merged.Entries)
	}
	spans := merged.Entries[0].Spans
	if len(spans) != 3 || spans[0].Op != "pageload" || spans[2].Op != "db" {
		t.Fatalf("wrong merged spans: %+v", spans)
	}
	if merged.EndTimestamp != 13.5 {
		t.Fatalf("merged end timestamp = %v", merged.EndTimestamp)
	}

	// Breadcrumbs from the root event survive the merge.
	if snap.BreadcrumbEntry == nil || snap.BreadcrumbEntry.Breadcrumbs[0].Category != "console" {
		t.Fatalf("wrong breadcrumb entry: %+v", snap.BreadcrumbEntry)
	}
}

func TestFetchReplay_BadSlug(t *testing.T) {
	upstream := newFakeUpstream(t)
	c := newTestClient(t, upstream)

	_, err := c.FetchReplay(context.Background(), "acme", "no-colon")
	if !errors.Is(err, ErrBadSlug) {
		t.Fatalf("expected ErrBadSlug, got %v", err)
	}
}

func TestRefreshPublishesState(t *testing.T) {
	upstream := newFakeUpstream(t)
	c := newTestClient(t, upstream)

	snap, err := c.Refresh(context.Background(), "acme", "123:abc")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if snap.Event.ID != "abc" {
		t.Fatalf("wrong snapshot: %+v", snap)
	}

	state := c.State()
	if state.Fetching || state.Err != nil || state.Snapshot == nil {
		t.Fatalf("wrong state: %+v", state)
	}
	if state.Snapshot.Event.ID != "abc" {
		t.Fatalf("wrong published snapshot: %+v", state.Snapshot)
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(WithProvider("nope"), WithToken("tok"))
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNew_MissingToken(t *testing.T) {
	_, err := New()
	if err == nil {
		t.Fatal("expected error for missing token")
	}
}
