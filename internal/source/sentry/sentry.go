package sentry

import (
	"context"
	"fmt"
	"net/url"

	"github.com/arvidhagen/replaykit/internal/model"
	"github.com/arvidhagen/replaykit/internal/source"
	"github.com/arvidhagen/replaykit/internal/source/httpapi"
)

const defaultEndpoint = "https://sentry.io/api/0"

func init() {
	source.Register("sentry", New)
}

// Source implements the source.Source interface against the Sentry
// REST API (SaaS or self-hosted).
type Source struct {
	client *httpapi.Client
}

// New creates a Sentry source from the given configuration. An empty
// endpoint falls back to the SaaS API.
func New(cfg source.Config) (source.Source, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("sentry source: missing API token")
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	var opts []httpapi.Option
	if cfg.Timeout > 0 {
		opts = append(opts, httpapi.WithTimeout(cfg.Timeout))
	}
	return &Source{client: httpapi.New(endpoint, cfg.Token, opts...)}, nil
}

func (s *Source) Event(ctx context.Context, org, project, eventID string) (model.Event, error) {
	path := fmt.Sprintf("/organizations/%s/events/%s:%s/",
		url.PathEscape(org), url.PathEscape(project), url.PathEscape(eventID))
	var ev model.Event
	if err := s.client.GetJSON(ctx, path, nil, &ev); err != nil {
		return model.Event{}, fmt.Errorf("sentry source: event %s:%s: %w", project, eventID, err)
	}
	return ev, nil
}

func (s *Source) Attachments(ctx context.Context, org, project, eventID string) ([]model.Attachment, error) {
	path := fmt.Sprintf("/projects/%s/%s/events/%s/attachments/",
		url.PathEscape(org), url.PathEscape(project), url.PathEscape(eventID))
	var atts []model.Attachment
	if err := s.client.GetJSON(ctx, path, nil, &atts); err != nil {
		return nil, fmt.Errorf("sentry source: attachments for %s: %w", eventID, err)
	}
	return atts, nil
}

func (s *Source) Download(ctx context.Context, org, project, eventID, attachmentID string) ([]byte, error) {
	path := fmt.Sprintf("/projects/%s/%s/events/%s/attachments/%s/",
		url.PathEscape(org), url.PathEscape(project), url.PathEscape(eventID), url.PathEscape(attachmentID))
	q := url.Values{}
	q.Set("download", "1")
	body, err := s.client.GetRaw(ctx, path, q)
	if err != nil {
		return nil, fmt.Errorf("sentry source: download attachment %s: %w", attachmentID, err)
	}
	return body, nil
}

// Response shape of the eventsv2 index endpoint.
type queryResponse struct {
	Data []model.EventDescriptor `json:"data"`
}

func (s *Source) Query(ctx context.Context, org string, eq source.EventQuery) ([]model.EventDescriptor, error) {
	path := fmt.Sprintf("/organizations/%s/eventsv2/", url.PathEscape(org))
	q := url.Values{}
	for _, f := range eq.Fields {
		q.Add("field", f)
	}
	if eq.Query != "" {
		q.Set("query", eq.Query)
	}
	if eq.Sort != "" {
		q.Set("sort", eq.Sort)
	}
	if eq.StatsPeriod != "" {
		q.Set("statsPeriod", eq.StatsPeriod)
	}
	var resp queryResponse
	if err := s.client.GetJSON(ctx, path, q, &resp); err != nil {
		return nil, fmt.Errorf("sentry source: query: %w", err)
	}
	return resp.Data, nil
}
