package replaykit

import "time"

type options struct {
	provider   string
	endpoint   string
	token      string
	timeout    time.Duration
	fetchLimit int
}

// Option configures a Client.
type Option func(*options)

// WithProvider selects the upstream provider: "sentry" (default) or
// "glitchtip".
func WithProvider(name string) Option {
	return func(o *options) {
		o.provider = name
	}
}

// WithEndpoint overrides the provider's default API base URL. Use for
// self-hosted installs.
func WithEndpoint(url string) Option {
	return func(o *options) {
		o.endpoint = url
	}
}

// WithToken sets the Bearer token sent with every request.
func WithToken(token string) Option {
	return func(o *options) {
		o.token = token
	}
}

// WithTimeout sets the per-request HTTP timeout. Default: 30s.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithFetchLimit bounds concurrent attachment downloads and related-event
// fetches. Default: 4.
func WithFetchLimit(n int) Option {
	return func(o *options) {
		o.fetchLimit = n
	}
}

func defaultOptions() options {
	return options{
		provider: "sentry",
	}
}
