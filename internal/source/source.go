package source

import (
	"context"
	"time"

	"github.com/arvidhagen/replaykit/internal/model"
)

// Source defines the interface all upstream event-API providers must
// implement. The four operations mirror the read endpoints of a
// Sentry-compatible API; everything above this layer is backend-agnostic.
type Source interface {
	// Event fetches a full event body by organization, project, and event ID.
	Event(ctx context.Context, org, project, eventID string) (model.Event, error)

	// Attachments lists attachment metadata for an event.
	Attachments(ctx context.Context, org, project, eventID string) ([]model.Attachment, error)

	// Download retrieves the raw content of one attachment.
	Download(ctx context.Context, org, project, eventID, attachmentID string) ([]byte, error)

	// Query runs a structured query against the secondary event index and
	// returns lightweight descriptors in index order.
	Query(ctx context.Context, org string, q EventQuery) ([]model.EventDescriptor, error)
}

// Config holds provider-specific connection settings.
type Config struct {
	Provider string
	Endpoint string
	Token    string
	Timeout  time.Duration
}

// EventQuery describes a secondary-index query: selected fields, a filter
// expression, sort order, and a bounded recent time window.
type EventQuery struct {
	Fields      []string
	Query       string
	Sort        string
	StatsPeriod string
}
