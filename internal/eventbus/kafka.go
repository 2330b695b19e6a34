package eventbus

import (
	"context"
	"errors"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
)

// JSONProducer is satisfied by *pkg/kafka.Producer.
type JSONProducer interface {
	PublishJSON(ctx context.Context, topic, key, eventType string, v any) error
}

type kafkaPublisher struct {
	producer JSONProducer
	topics   Topics
}

// NewKafka creates a Publisher over a broker producer.
func NewKafka(producer JSONProducer, topics Topics) Publisher {
	return &kafkaPublisher{producer: producer, topics: topics}
}

func (p *kafkaPublisher) PublishActivityEvent(ctx context.Context, ev model.Event) error {
	return p.producer.PublishJSON(ctx, p.topics.Events, ev.UserID, EventTypeActivityCompleted, ev)
}

func (p *kafkaPublisher) PublishPlannedActivities(ctx context.Context, items []model.PlannedActivity) error {
	if len(items) == 0 {
		return nil
	}
	batch := PlannedBatch{UserID: items[0].UserID, ProgramID: items[0].ProgramID, Items: items}
	return p.producer.PublishJSON(ctx, p.topics.Planned, batch.UserID, EventTypePlannedCreated, batch)
}

func (p *kafkaPublisher) PublishNoteSaved(ctx context.Context, msg NoteSaved) error {
	if msg.NoteID == "" {
		return errors.New("note id is required")
	}
	return p.producer.PublishJSON(ctx, p.topics.Notes, msg.NoteID, EventTypeNoteSaved, msg)
}

type nopPublisher struct{}

// NewNop returns a Publisher that drops everything, used when the broker is disabled.
func NewNop() Publisher { return nopPublisher{} }

func (nopPublisher) PublishActivityEvent(context.Context, model.Event) error { return nil }

func (nopPublisher) PublishPlannedActivities(context.Context, []model.PlannedActivity) error {
	return nil
}

func (nopPublisher) PublishNoteSaved(context.Context, NoteSaved) error { return nil }
