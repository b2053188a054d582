package cli

import (
	"fmt"

	"github.com/arvidhagen/replaykit/internal/source"

	// Register source provider implementations.
	_ "github.com/arvidhagen/replaykit/internal/source/glitchtip"
	_ "github.com/arvidhagen/replaykit/internal/source/sentry"
)

// buildSource resolves the configured provider and constructs it.
func buildSource() (source.Source, error) {
	ctor, err := source.Get(cfg.Source.Provider)
	if err != nil {
		return nil, fmt.Errorf("resolve source: %w", err)
	}
	src, err := ctor(source.Config{
		Provider: cfg.Source.Provider,
		Endpoint: cfg.Source.Endpoint,
		Token:    cfg.Source.Token,
		Timeout:  cfg.Source.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("build source: %w", err)
	}
	return src, nil
}
