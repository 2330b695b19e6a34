package sync

import (
	"time"

	"github.com/asyncopatedsoul/health-protocol/internal/importer"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
	pkgLog "github.com/asyncopatedsoul/health-protocol/pkg/log"
)

const (
	defaultMaxRetries = 3
	defaultBackoff    = 2 * time.Second
	processTimeout    = 2 * time.Minute
)

type WebhookHandler struct {
	importer   importer.UseCase
	events     repository.EventRepository
	l          pkgLog.Logger
	maxRetries int
	backoff    time.Duration
	locks      noteLocks
}

// Option customises the webhook handler.
type Option func(*WebhookHandler)

// WithRetry overrides the retry budget and the initial backoff between attempts.
func WithRetry(maxRetries int, backoff time.Duration) Option {
	return func(h *WebhookHandler) {
		h.maxRetries = maxRetries
		h.backoff = backoff
	}
}

func NewWebhookHandler(uc importer.UseCase, events repository.EventRepository, l pkgLog.Logger, opts ...Option) *WebhookHandler {
	h := &WebhookHandler{
		importer:   uc,
		events:     events,
		l:          l,
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
