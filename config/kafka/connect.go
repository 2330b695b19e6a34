// Package kafka builds the broker producer and the note reader from config.
package kafka

import (
	"errors"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/asyncopatedsoul/health-protocol/config"
	"github.com/asyncopatedsoul/health-protocol/internal/eventbus"
	pkgKafka "github.com/asyncopatedsoul/health-protocol/pkg/kafka"
)

// ErrDisabled is returned when kafka.enabled is false.
var ErrDisabled = errors.New("kafka is disabled")

// ConnectProducer returns a lazily-connecting producer for the configured brokers.
func ConnectProducer(cfg config.KafkaConfig) (*pkgKafka.Producer, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers are not configured")
	}
	return pkgKafka.NewProducer(cfg.Brokers), nil
}

// NewNoteReader returns a consumer-group reader on the note topic.
func NewNoteReader(cfg config.KafkaConfig) (*kafkago.Reader, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		Topic:          cfg.NoteTopic,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        time.Second,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	}), nil
}

// Topics maps the configured topic names onto the event bus.
func Topics(cfg config.KafkaConfig) eventbus.Topics {
	return eventbus.Topics{
		Notes:   cfg.NoteTopic,
		Events:  cfg.EventTopic,
		Planned: cfg.PlannedTopic,
	}
}
