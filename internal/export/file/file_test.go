package file

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arvidhagen/replaykit/internal/model"
)

func snapshotWithSpans(id string, spans ...model.Span) model.Snapshot {
	return model.Snapshot{
		Event: model.Event{ID: id},
		MergedReplayEvent: model.Event{
			ID:      id,
			Entries: []model.Entry{model.NewSpansEntry(spans)},
		},
	}
}

func TestExportWritesOneLinePerSpan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeline.ndjson")
	e, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	snap := snapshotWithSpans("abc",
		model.Span{Op: "pageload", StartTimestamp: 1, Timestamp: 2},
		model.Span{Op: "http", Description: "GET /api", StartTimestamp: 2, Timestamp: 3},
	)
	if err := e.Export(context.Background(), snap); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var lines []row
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var r row
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatalf("bad line %q: %v", sc.Text(), err)
		}
		lines = append(lines, r)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].ReplayID != "abc" || lines[0].Op != "pageload" {
		t.Fatalf("wrong first line: %+v", lines[0])
	}
	if lines[1].Description != "GET /api" || lines[1].Timestamp != 3 {
		t.Fatalf("wrong second line: %+v", lines[1])
	}
}

func TestExportSkipsSpanlessSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeline.ndjson")
	e, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Export(context.Background(), model.Snapshot{}); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty file, got %q", data)
	}
}

func TestRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeline.ndjson")
	e, err := New(path, WithMaxSize(128), WithBufSize(16))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	long := strings.Repeat("x", 80)
	for i := 0; i < 5; i++ {
		snap := snapshotWithSpans("abc", model.Span{Op: "http", Description: long, Timestamp: float64(i)})
		if err := e.Export(context.Background(), snap); err != nil {
			t.Fatalf("Export %d: %v", i, err)
		}
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Fatalf("expected rotated file: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat current: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("current file empty after rotation")
	}
}
