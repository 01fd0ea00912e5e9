package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	domainevents "github.com/narwhalmedia/catalog/internal/domain/events"
	"github.com/narwhalmedia/catalog/internal/domain/video"
)

const publishTimeout = 5 * time.Second

// StreamPublisher is the part of jetstream.JetStream used for publishing
type StreamPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// Publisher implements the EventPublisher interface using NATS JetStream
type Publisher struct {
	js             StreamPublisher
	catalogSubject string
	logger         *zap.Logger
}

// NewPublisher creates a new NATS event publisher.
// Media created events go to catalogSubject so the encoder can pick them up.
func NewPublisher(js StreamPublisher, catalogSubject string, logger *zap.Logger) *Publisher {
	return &Publisher{
		js:             js,
		catalogSubject: catalogSubject,
		logger:         logger.Named("publisher"),
	}
}

// PublishEvent publishes a domain event to NATS
func (p *Publisher) PublishEvent(ctx context.Context, event domainevents.Event) error {
	subject := p.subjectFor(event)

	data, err := json.Marshal(domainevents.NewMessage(event))
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	ack, err := p.js.Publish(pubCtx, subject, data, jetstream.WithMsgID(event.ID()))
	if err != nil {
		p.logger.Error("failed to publish event",
			zap.Error(err),
			zap.String("event_id", event.ID()),
			zap.String("event_type", event.EventType()),
			zap.String("subject", subject),
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info("event published",
		zap.String("event_id", event.ID()),
		zap.String("event_type", event.EventType()),
		zap.String("subject", subject),
		zap.Uint64("sequence", ack.Sequence),
		zap.String("stream", ack.Stream),
	)
	return nil
}

func (p *Publisher) subjectFor(event domainevents.Event) string {
	if event.EventType() == video.EventTypeMediaCreated && p.catalogSubject != "" {
		return p.catalogSubject
	}
	return "catalog." + strings.ToLower(event.EventType())
}
