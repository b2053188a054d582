package export

import (
	"context"

	"github.com/arvidhagen/replaykit/internal/model"
)

// Exporter defines the interface for replay snapshot destinations.
type Exporter interface {
	Export(ctx context.Context, snap model.Snapshot) error
	Close() error
}
