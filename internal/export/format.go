package export

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/arvidhagen/replaykit/internal/model"
)

// Format selects the wire encoding of an exported snapshot.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. Empty defaults to JSON.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown export format: %q", s)
	}
}

// Encode renders the snapshot in the given format. JSON honors the
// pretty flag; YAML is always indented.
func Encode(snap model.Snapshot, format Format, pretty bool) ([]byte, error) {
	switch format {
	case FormatYAML:
		// Round-trip through JSON so yaml sees the wire field names
		// instead of Go struct names.
		raw, err := json.Marshal(snap)
		if err != nil {
			return nil, fmt.Errorf("encode snapshot: %w", err)
		}
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("encode snapshot: %w", err)
		}
		return yaml.Marshal(doc)
	default:
		if pretty {
			return json.MarshalIndent(snap, "", "  ")
		}
		return json.Marshal(snap)
	}
}
