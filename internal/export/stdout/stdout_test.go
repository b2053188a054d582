package stdout

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/arvidhagen/replaykit/internal/export"
	"github.com/arvidhagen/replaykit/internal/model"
)

func TestExportWritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	e := New(export.FormatJSON, false, WithWriter(&buf))

	snap := model.Snapshot{Event: model.Event{ID: "abc"}}
	if err := e.Export(context.Background(), snap); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out := buf.String()
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("missing trailing newline: %q", out)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
}

func TestExportYAML(t *testing.T) {
	var buf bytes.Buffer
	e := New(export.FormatYAML, false, WithWriter(&buf))

	if err := e.Export(context.Background(), model.Snapshot{}); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(buf.String(), "event:") {
		t.Fatalf("unexpected YAML output: %q", buf.String())
	}
}
