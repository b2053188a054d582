package multi

import (
	"context"
	"errors"

	"github.com/arvidhagen/replaykit/internal/export"
	"github.com/arvidhagen/replaykit/internal/model"
)

// Multi fans out snapshots to multiple export.Exporter implementations.
// If one exporter fails, the remaining exporters still receive the
// snapshot; errors are joined.
type Multi struct {
	exporters []export.Exporter
}

// New creates a Multi that fans out to the given exporters.
func New(exporters ...export.Exporter) *Multi {
	return &Multi{exporters: exporters}
}

func (m *Multi) Export(ctx context.Context, snap model.Snapshot) error {
	var errs []error
	for _, e := range m.exporters {
		if err := e.Export(ctx, snap); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close calls Close on every wrapped exporter, collecting errors.
func (m *Multi) Close() error {
	var errs []error
	for _, e := range m.exporters {
		if err := e.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
