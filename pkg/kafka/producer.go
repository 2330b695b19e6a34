// Package kafka wraps segmentio/kafka-go with a lazily-initialised producer and a
// commit-after-handle consumer loop.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/segmentio/kafka-go"
)

// HeaderEventType carries the event discriminator on every message.
const HeaderEventType = "event_type"

// Writer is the subset of kafka.Writer the producer needs per topic.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer lazily manages one writer per topic.
type Producer struct {
	brokers   []string
	mu        sync.Mutex
	writers   map[string]Writer
	newWriter func(topic string) Writer
}

// NewProducer creates a Producer for the given brokers.
func NewProducer(brokers []string) *Producer {
	p := &Producer{
		brokers: brokers,
		writers: make(map[string]Writer),
	}
	p.newWriter = p.kafkaWriter
	return p
}

// NewProducerWithWriters is NewProducer with a custom writer factory, used in tests.
func NewProducerWithWriters(factory func(topic string) Writer) *Producer {
	return &Producer{
		writers:   make(map[string]Writer),
		newWriter: factory,
	}
}

// WriteMessages writes messages to the given topic, creating a writer if necessary.
func (p *Producer) WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error {
	return p.writerForTopic(topic).WriteMessages(ctx, msgs...)
}

// PublishJSON encodes v as JSON and writes it under key with the event type header.
func (p *Producer) PublishJSON(ctx context.Context, topic, key, eventType string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", eventType, err)
	}
	return p.WriteMessages(ctx, topic, kafka.Message{
		Key:     []byte(key),
		Value:   value,
		Headers: []kafka.Header{{Key: HeaderEventType, Value: []byte(eventType)}},
	})
}

func (p *Producer) writerForTopic(topic string) Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}
	w := p.newWriter(topic)
	p.writers[topic] = w
	return w
}

func (p *Producer) kafkaWriter(topic string) Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(p.brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		Compression:            kafka.Snappy,
		AllowAutoTopicCreation: true,
	}
}

// Close releases all writers.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.writers, topic)
	}
	return firstErr
}
