package sentry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arvidhagen/replaykit/internal/source"
)

func newTestSource(t *testing.T, handler http.HandlerFunc) (source.Source, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	src, err := New(source.Config{Endpoint: srv.URL, Token: "tok"})
	if err != nil {
		t.Fatalf("new source: %v", err)
	}
	return src, srv
}

func TestNew_MissingToken(t *testing.T) {
	_, err := New(source.Config{})
	if err == nil {
		t.Fatal("expected error for missing token")
	}
	if !strings.Contains(err.Error(), "token") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEvent_Path(t *testing.T) {
	var gotPath string
	src, _ := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"eventID":"abc","entries":[]}`))
	})

	ev, err := src.Event(context.Background(), "acme", "frontend", "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/organizations/acme/events/frontend:abc/" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if ev.ID != "abc" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestAttachments_Path(t *testing.T) {
	var gotPath string
	src, _ := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[{"id":"1","name":"rrweb-1670000000001.json"},{"id":"2","name":"screenshot.png"}]`))
	})

	atts, err := src.Attachments(context.Background(), "acme", "frontend", "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/projects/acme/frontend/events/abc/attachments/" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if len(atts) != 2 || atts[0].Name != "rrweb-1670000000001.json" {
		t.Fatalf("unexpected attachments: %+v", atts)
	}
}

func TestDownload_QueryAndBody(t *testing.T) {
	src, _ := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects/acme/frontend/events/abc/attachments/7/" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("download") != "1" {
			t.Fatalf("missing download flag: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"events":[]}`))
	})

	body, err := src.Download(context.Background(), "acme", "frontend", "abc", "7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"events":[]}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestQuery_Params(t *testing.T) {
	src, _ := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/organizations/acme/eventsv2/" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if got := q["field"]; len(got) != 2 || got[0] != "id" || got[1] != "timestamp" {
			t.Fatalf("unexpected fields: %v", got)
		}
		if q.Get("query") != "event.type:transaction replayId:abc" {
			t.Fatalf("unexpected query: %q", q.Get("query"))
		}
		if q.Get("sort") != "timestamp" || q.Get("statsPeriod") != "14d" {
			t.Fatalf("unexpected sort/window: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"data":[{"id":"e1","project.name":"frontend"},{"id":"e2","project.name":"frontend"}]}`))
	})

	descs, err := src.Query(context.Background(), "acme", source.EventQuery{
		Fields:      []string{"id", "timestamp"},
		Query:       "event.type:transaction replayId:abc",
		Sort:        "timestamp",
		StatsPeriod: "14d",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(descs) != 2 || descs[0].ID != "e1" || descs[1].Project != "frontend" {
		t.Fatalf("unexpected descriptors: %+v", descs)
	}
}

func TestRegistry_HasSentry(t *testing.T) {
	ctor, err := source.Get("sentry")
	if err != nil {
		t.Fatalf("sentry not registered: %v", err)
	}
	if _, err := ctor(source.Config{Token: "tok"}); err != nil {
		t.Fatalf("constructor failed: %v", err)
	}
}
