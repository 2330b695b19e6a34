// Package eventbus publishes journal domain events to the message broker.
package eventbus

import (
	"context"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
)

// Publisher emits domain events. Implementations are best effort; callers log and continue on error.
type Publisher interface {
	PublishActivityEvent(ctx context.Context, ev model.Event) error
	PublishPlannedActivities(ctx context.Context, items []model.PlannedActivity) error
	PublishNoteSaved(ctx context.Context, msg NoteSaved) error
}
