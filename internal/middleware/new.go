package middleware

import (
	"github.com/asyncopatedsoul/health-protocol/pkg/log"
)

// Config configures the shared HTTP middlewares.
type Config struct {
	// RequestsPerMin is the per-client budget for rate limited route groups. Zero disables limiting.
	RequestsPerMin int
	// WebhookSecret guards POST /webhook/memos. Empty accepts every webhook call.
	WebhookSecret string
}

type Middleware struct {
	l             log.Logger
	limiter       *rateLimiter
	webhookSecret string
}

func New(l log.Logger, cfg Config) Middleware {
	mw := Middleware{
		l:             l,
		webhookSecret: cfg.WebhookSecret,
	}
	if cfg.RequestsPerMin > 0 {
		mw.limiter = newRateLimiter(cfg.RequestsPerMin)
	}
	return mw
}
