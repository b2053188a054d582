package stdout

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/arvidhagen/replaykit/internal/export"
	"github.com/arvidhagen/replaykit/internal/model"
)

// Exporter writes encoded snapshots to stdout (or a supplied writer).
type Exporter struct {
	w      io.Writer
	format export.Format
	pretty bool
}

// Option configures a stdout Exporter.
type Option func(*Exporter)

// WithWriter redirects output away from os.Stdout. Used by tests.
func WithWriter(w io.Writer) Option {
	return func(e *Exporter) { e.w = w }
}

// New creates a stdout exporter with the given format and optional
// pretty-printing (JSON only).
func New(format export.Format, pretty bool, opts ...Option) *Exporter {
	e := &Exporter{w: os.Stdout, format: format, pretty: pretty}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Exporter) Export(_ context.Context, snap model.Snapshot) error {
	data, err := export.Encode(snap, e.format, e.pretty)
	if err != nil {
		return fmt.Errorf("stdout export: %w", err)
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	if _, err := e.w.Write(data); err != nil {
		return fmt.Errorf("stdout export: %w", err)
	}
	return nil
}

func (e *Exporter) Close() error {
	return nil
}
