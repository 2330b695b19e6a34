package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/asyncopatedsoul/health-protocol/pkg/log"
)

// Reader exposes the minimal kafka.Reader interface needed by the processor.
type Reader interface {
	FetchMessage(context.Context) (kafka.Message, error)
	CommitMessages(context.Context, ...kafka.Message) error
	Close() error
}

// Handler receives decoded messages.
type Handler interface {
	Handle(context.Context, Message) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(context.Context, Message) error

func (f HandlerFunc) Handle(ctx context.Context, msg Message) error { return f(ctx, msg) }

// Message is a decoded record.
type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Key       string
	EventType string
	Payload   json.RawMessage
}

// Processor pulls messages, decodes them, and dispatches to a Handler. A failed message is
// retried with exponential backoff before the next one is fetched, and its offset is committed
// only after the handler succeeds. Undecodable messages, and messages that exhaust
// WithMaxAttempts, are committed and dropped.
type Processor struct {
	reader      Reader
	handler     Handler
	l           log.Logger
	backoff     time.Duration
	maxBackoff  time.Duration
	maxAttempts int
}

// ProcessorOption customises a Processor.
type ProcessorOption func(*Processor)

// WithBackoff sets the first and the largest delay between retries.
func WithBackoff(initial, limit time.Duration) ProcessorOption {
	return func(p *Processor) {
		p.backoff = initial
		p.maxBackoff = limit
	}
}

// WithMaxAttempts bounds handler attempts per message. Zero retries until ctx is done.
func WithMaxAttempts(n int) ProcessorOption {
	return func(p *Processor) { p.maxAttempts = n }
}

// NewProcessor constructs a Processor.
func NewProcessor(reader Reader, handler Handler, l log.Logger, opts ...ProcessorOption) *Processor {
	p := &Processor{
		reader:     reader,
		handler:    handler,
		l:          l,
		backoff:    time.Second,
		maxBackoff: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run blocks until ctx is cancelled or the reader returns context.Canceled.
func (p *Processor) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := p.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			p.l.Errorf(ctx, "kafka.Processor: fetch: %v", err)
			p.wait(ctx, p.backoff)
			continue
		}

		decoded, err := Decode(msg)
		if err != nil {
			p.l.Warnf(ctx, "kafka.Processor: dropping topic=%s partition=%d offset=%d: %v", msg.Topic, msg.Partition, msg.Offset, err)
			if err := p.reader.CommitMessages(ctx, msg); err != nil {
				p.l.Errorf(ctx, "kafka.Processor: commit after decode failure: %v", err)
			}
			continue
		}

		if err := p.handle(ctx, decoded); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			p.l.Errorf(ctx, "kafka.Processor: dropping event_type=%s key=%s offset=%d after %d attempts: %v",
				decoded.EventType, decoded.Key, decoded.Offset, p.maxAttempts, err)
		}

		if err := p.reader.CommitMessages(ctx, msg); err != nil {
			p.l.Errorf(ctx, "kafka.Processor: commit: %v", err)
		}
	}
}

// handle calls the handler until it succeeds, attempts run out, or ctx is done.
func (p *Processor) handle(ctx context.Context, msg Message) error {
	delay := p.backoff
	for attempt := 1; ; attempt++ {
		err := p.handler.Handle(ctx, msg)
		if err == nil {
			return nil
		}
		p.l.Errorf(ctx, "kafka.Processor: handle event_type=%s key=%s attempt=%d: %v", msg.EventType, msg.Key, attempt, err)
		if p.maxAttempts > 0 && attempt >= p.maxAttempts {
			return err
		}
		if !p.wait(ctx, delay) {
			return err
		}
		delay = min(delay*2, p.maxBackoff)
	}
}

// wait sleeps for d and reports false when ctx ends first.
func (p *Processor) wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Decode validates and unpacks a raw record.
func Decode(msg kafka.Message) (Message, error) {
	eventType, ok := headerValue(msg, HeaderEventType)
	if !ok || len(eventType) == 0 {
		return Message{}, errors.New("missing event_type header")
	}
	if !json.Valid(msg.Value) {
		return Message{}, fmt.Errorf("payload is not valid JSON (%d bytes)", len(msg.Value))
	}

	return Message{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
		Key:       string(msg.Key),
		EventType: string(eventType),
		Payload:   json.RawMessage(append([]byte(nil), msg.Value...)),
	}, nil
}

func headerValue(msg kafka.Message, key string) ([]byte, bool) {
	for _, h := range msg.Headers {
		if h.Key == key {
			return h.Value, true
		}
	}
	return nil, false
}
