package gcalendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const (
	defaultCalendarID = "primary"
	defaultTokenPath  = "token.json"
	defaultMaxResults = 250
)

// Client wraps the Google Calendar API service.
type Client struct {
	service *calendar.Service
}

type options struct {
	tokenPath string
}

// Option configures client construction.
type Option func(*options)

// WithTokenPath sets where the OAuth desktop token written by scripts/gcal-auth is read from.
func WithTokenPath(path string) Option {
	return func(o *options) { o.tokenPath = path }
}

// NewClientFromCredentialsFile creates a Calendar client from a credentials JSON file path.
func NewClientFromCredentialsFile(ctx context.Context, credentialsPath string, opts ...Option) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return NewClientFromCredentialsJSON(ctx, data, opts...)
}

// NewClientFromCredentialsJSON accepts either a service account key or OAuth desktop app
// credentials. The latter needs a token previously saved by scripts/gcal-auth.
func NewClientFromCredentialsJSON(ctx context.Context, credentialsJSON []byte, opts ...Option) (*Client, error) {
	o := options{tokenPath: defaultTokenPath}
	for _, opt := range opts {
		opt(&o)
	}

	jwtConfig, err := google.JWTConfigFromJSON(credentialsJSON, calendar.CalendarScope)
	if err == nil {
		return newClient(ctx, jwtConfig.TokenSource(ctx))
	}

	oauthConfig, oauthErr := google.ConfigFromJSON(credentialsJSON, calendar.CalendarScope)
	if oauthErr != nil {
		return nil, fmt.Errorf("unsupported credentials format: %w", err)
	}

	tokenData, err := os.ReadFile(o.tokenPath)
	if err != nil {
		return nil, fmt.Errorf("oauth desktop credentials need a token at %s (run scripts/gcal-auth): %w", o.tokenPath, err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(tokenData, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", o.tokenPath, err)
	}

	return newClient(ctx, oauthConfig.TokenSource(ctx, &tok))
}

// NewClientFromHTTP creates a Calendar client from a pre-configured HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &Client{service: svc}, nil
}

func newClient(ctx context.Context, ts oauth2.TokenSource) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &Client{service: svc}, nil
}

// CreateEvent creates a new Google Calendar event.
func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	event := &calendar.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Start: &calendar.EventDateTime{
			DateTime: req.StartTime.Format(time.RFC3339),
			TimeZone: req.Timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: req.EndTime.Format(time.RFC3339),
			TimeZone: req.Timezone,
		},
	}
	if len(req.PrivateProperties) > 0 {
		event.ExtendedProperties = &calendar.EventExtendedProperties{Private: req.PrivateProperties}
	}

	created, err := c.service.Events.Insert(calendarID(req.CalendarID), event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}

	return &Event{
		ID:                created.Id,
		Summary:           created.Summary,
		Description:       created.Description,
		HTMLLink:          created.HtmlLink,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		PrivateProperties: req.PrivateProperties,
	}, nil
}

// ListEvents returns single (expanded) events in [TimeMin, TimeMax) ordered by start time.
func (c *Client) ListEvents(ctx context.Context, req ListEventsRequest) ([]Event, error) {
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	call := c.service.Events.List(calendarID(req.CalendarID)).
		Context(ctx).
		TimeMin(req.TimeMin.Format(time.RFC3339)).
		TimeMax(req.TimeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxResults)
	if len(req.PrivateProperties) > 0 {
		keys := make([]string, 0, len(req.PrivateProperties))
		for k := range req.PrivateProperties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		filters := make([]string, 0, len(keys))
		for _, k := range keys {
			filters = append(filters, k+"="+req.PrivateProperties[k])
		}
		call = call.PrivateExtendedProperty(filters...)
	}

	res, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}

	events := make([]Event, 0, len(res.Items))
	for _, item := range res.Items {
		ev := Event{
			ID:          item.Id,
			Summary:     item.Summary,
			Description: item.Description,
			HTMLLink:    item.HtmlLink,
			StartTime:   parseEventTime(item.Start),
			EndTime:     parseEventTime(item.End),
		}
		if item.ExtendedProperties != nil {
			ev.PrivateProperties = item.ExtendedProperties.Private
		}
		events = append(events, ev)
	}
	return events, nil
}

func calendarID(id string) string {
	if id == "" {
		return defaultCalendarID
	}
	return id
}

// parseEventTime reads a timed or all-day boundary. All-day dates resolve to UTC midnight.
func parseEventTime(dt *calendar.EventDateTime) time.Time {
	if dt == nil {
		return time.Time{}
	}
	if dt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, dt.DateTime); err == nil {
			return t
		}
	}
	if dt.Date != "" {
		if t, err := time.Parse(time.DateOnly, dt.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}
