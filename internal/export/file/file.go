package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/arvidhagen/replaykit/internal/model"
)

const defaultBufSize = 64 * 1024 // 64KB

// Option configures a file Exporter.
type Option func(*Exporter)

// WithMaxSize sets the file size (bytes) at which rotation triggers.
// 0 (default) disables rotation.
func WithMaxSize(bytes int64) Option {
	return func(e *Exporter) { e.maxSize = bytes }
}

// WithBufSize sets the bufio.Writer buffer size. Default: 64KB.
func WithBufSize(bytes int) Option {
	return func(e *Exporter) { e.bufSize = bytes }
}

// Exporter appends merged timeline rows as NDJSON to a file with
// buffered I/O and optional size-based rotation. One line per span of
// the merged replay event.
type Exporter struct {
	w       *bufio.Writer
	f       *os.File
	mu      sync.Mutex
	path    string
	maxSize int64 // 0 = no rotation
	written int64
	bufSize int
}

// row is one NDJSON line of the exported timeline.
type row struct {
	ReplayID       string  `json:"replayId"`
	Op             string  `json:"op,omitempty"`
	Description    string  `json:"description,omitempty"`
	StartTimestamp float64 `json:"start_timestamp"`
	Timestamp      float64 `json:"timestamp"`
}

// New creates a file exporter that writes NDJSON to the given path.
func New(path string, opts ...Option) (*Exporter, error) {
	e := &Exporter{
		path:    path,
		bufSize: defaultBufSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.openFile(); err != nil {
		return nil, err
	}
	return e, nil
}

// Export appends one line per span of the snapshot's merged timeline.
func (e *Exporter) Export(_ context.Context, snap model.Snapshot) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, entry := range snap.MergedReplayEvent.Entries {
		if entry.Type != model.EntrySpans {
			continue
		}
		for _, sp := range entry.Spans {
			line := row{
				ReplayID:       snap.Event.ID,
				Op:             sp.Op,
				Description:    sp.Description,
				StartTimestamp: sp.StartTimestamp,
				Timestamp:      sp.Timestamp,
			}
			if err := e.writeLine(line); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Exporter) writeLine(line row) error {
	data, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("file export: marshal: %w", err)
	}
	data = append(data, '\n')

	if e.maxSize > 0 && e.written+int64(len(data)) > e.maxSize {
		if err := e.rotate(); err != nil {
			return fmt.Errorf("file export: rotate: %w", err)
		}
	}

	n, err := e.w.Write(data)
	e.written += int64(n)
	if err != nil {
		return fmt.Errorf("file export: write: %w", err)
	}
	return nil
}

// Close flushes the buffer and closes the file.
func (e *Exporter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.w.Flush(); err != nil {
		e.f.Close()
		return fmt.Errorf("file export: flush: %w", err)
	}
	return e.f.Close()
}

// openFile opens (or creates) the output file and wraps it in a bufio.Writer.
func (e *Exporter) openFile() error {
	f, err := os.OpenFile(e.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("file export: open %s: %w", e.path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("file export: stat %s: %w", e.path, err)
	}
	e.f = f
	e.w = bufio.NewWriterSize(f, e.bufSize)
	e.written = info.Size()
	return nil
}

// rotate flushes, closes the current file, renames it to {path}.1
// (shifting existing rotated files), and opens a new file.
func (e *Exporter) rotate() error {
	if err := e.w.Flush(); err != nil {
		return err
	}
	if err := e.f.Close(); err != nil {
		return err
	}

	// Shift existing rotated files: .2 → .3, .1 → .2, current → .1
	for i := 9; i >= 1; i-- {
		from := fmt.Sprintf("%s.%d", e.path, i)
		to := fmt.Sprintf("%s.%d", e.path, i+1)
		os.Rename(from, to) // ignore errors — file may not exist
	}
	if err := os.Rename(e.path, e.path+".1"); err != nil {
		return err
	}

	e.written = 0
	return e.openFile()
}
