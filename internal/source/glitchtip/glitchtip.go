package glitchtip

import (
	"github.com/arvidhagen/replaykit/internal/source"
	"github.com/arvidhagen/replaykit/internal/source/sentry"
)

const defaultEndpoint = "https://app.glitchtip.com/api/0"

func init() {
	source.Register("glitchtip", New)
}

// New creates a GlitchTip source. GlitchTip speaks the Sentry API, so
// this is the sentry source with a different default endpoint.
func New(cfg source.Config) (source.Source, error) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	return sentry.New(cfg)
}
