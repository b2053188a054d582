package archive

import (
	"context"
	"errors"
	"time"

	"github.com/arvidhagen/replaykit/internal/model"
)

// ErrNotFound is returned when no archived replay matches the given ID.
var ErrNotFound = errors.New("archived replay not found")

// Record is one archived aggregation result.
type Record struct {
	ID           string         `json:"id"`
	Organization string         `json:"organization"`
	EventSlug    string         `json:"eventSlug"`
	FetchedAt    time.Time      `json:"fetchedAt"`
	Snapshot     model.Snapshot `json:"snapshot"`
}

// Store persists completed aggregation results for later inspection.
// It is not a cache: loads never consult it, and saving is an explicit
// caller choice.
type Store interface {
	Save(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (Record, error)
	// List returns records newest-first, at most limit (0 = no limit).
	// The listed records carry an empty Snapshot; use Get for the payload.
	List(ctx context.Context, limit int) ([]Record, error)
}
