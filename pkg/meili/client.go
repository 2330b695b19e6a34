// Package meili builds meilisearch-go clients whose requests share one rate limiter.
package meili

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/meilisearch/meilisearch-go"
	"golang.org/x/time/rate"
)

// ErrTaskFailed is returned by WaitForTask when the server reports a failed or canceled task.
var ErrTaskFailed = errors.New("meilisearch task failed")

type options struct {
	timeout time.Duration
	limiter *rate.Limiter
}

// Option configures NewClient.
type Option func(*options)

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithRateLimit throttles outgoing requests to perSec with the given burst.
func WithRateLimit(perSec float64, burst int) Option {
	return func(o *options) {
		if perSec > 0 {
			o.limiter = rate.NewLimiter(rate.Limit(perSec), max(burst, 1))
		}
	}
}

// NewClient creates a Meilisearch service manager. apiKey may be empty for unsecured instances.
func NewClient(host, apiKey string, opts ...Option) meilisearch.ServiceManager {
	o := options{timeout: 10 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := &http.Client{
		Timeout:   o.timeout,
		Transport: &throttledTransport{next: http.DefaultTransport, limiter: o.limiter},
	}
	return meilisearch.New(host,
		meilisearch.WithAPIKey(apiKey),
		meilisearch.WithCustomClient(httpClient),
	)
}

// WaitForTask polls taskUID until it settles and maps failed or canceled tasks to ErrTaskFailed.
func WaitForTask(ctx context.Context, client meilisearch.ServiceManager, taskUID int64, interval time.Duration) (*meilisearch.Task, error) {
	task, err := client.WaitForTaskWithContext(ctx, taskUID, interval)
	if err != nil {
		return nil, err
	}
	switch task.Status {
	case meilisearch.TaskStatusFailed, meilisearch.TaskStatusCanceled:
		return task, fmt.Errorf("%w: task %d is %s", ErrTaskFailed, taskUID, task.Status)
	}
	return task, nil
}

type throttledTransport struct {
	next    http.RoundTripper
	limiter *rate.Limiter
}

func (t *throttledTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("meili rate limit: %w", err)
		}
	}
	return t.next.RoundTrip(req)
}
