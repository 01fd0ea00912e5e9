package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"
)

// MessageHandler handles the payload of one message.
// A returned error triggers redelivery.
type MessageHandler interface {
	Handle(ctx context.Context, data []byte) error
}

// EncoderListener feeds encoder results from a JetStream consumer to a handler.
// Messages failing maxDeliver times are moved to the dead letter queue.
type EncoderListener struct {
	consumer   jetstream.Consumer
	dlq        StreamPublisher
	handler    MessageHandler
	name       string
	maxDeliver int
	logger     *zap.Logger
}

// NewEncoderListener creates a new encoder result listener
func NewEncoderListener(consumer jetstream.Consumer, dlq StreamPublisher, handler MessageHandler, name string, maxDeliver int, logger *zap.Logger) *EncoderListener {
	return &EncoderListener{
		consumer:   consumer,
		dlq:        dlq,
		handler:    handler,
		name:       name,
		maxDeliver: maxDeliver,
		logger:     logger.Named("encoder-listener"),
	}
}

// Start consumes messages until ctx is cancelled
func (l *EncoderListener) Start(ctx context.Context) error {
	consumeCtx, err := l.consumer.Consume(func(msg jetstream.Msg) {
		l.processMessage(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	l.logger.Info("encoder listener started", zap.String("consumer", l.name))

	<-ctx.Done()
	consumeCtx.Stop()
	l.logger.Info("encoder listener stopped")
	return nil
}

func (l *EncoderListener) processMessage(ctx context.Context, msg jetstream.Msg) {
	if err := l.handler.Handle(ctx, msg.Data()); err != nil {
		l.logger.Error("failed to handle message",
			zap.Error(err),
			zap.String("subject", msg.Subject()),
		)
		l.handleMessageError(ctx, msg, err)
		return
	}

	if err := msg.Ack(); err != nil {
		l.logger.Error("failed to acknowledge message", zap.Error(err))
	}
}

func (l *EncoderListener) handleMessageError(ctx context.Context, msg jetstream.Msg, err error) {
	metadata, _ := msg.Metadata()
	if metadata != nil && l.maxDeliver > 0 && metadata.NumDelivered >= uint64(l.maxDeliver) {
		l.sendToDeadLetterQueue(ctx, msg, metadata, err)
		if ackErr := msg.Ack(); ackErr != nil {
			l.logger.Error("failed to acknowledge dead lettered message", zap.Error(ackErr))
		}
		return
	}

	if nakErr := msg.Nak(); nakErr != nil {
		l.logger.Error("failed to nak message", zap.Error(nakErr))
	}
}

func (l *EncoderListener) sendToDeadLetterQueue(ctx context.Context, msg jetstream.Msg, metadata *jetstream.MsgMetadata, cause error) {
	dlqMessage := DeadLetterMessage{
		OriginalSubject: msg.Subject(),
		OriginalData:    msg.Data(),
		Error:           cause.Error(),
		Timestamp:       time.Now().UTC(),
		NumDelivered:    metadata.NumDelivered,
		Stream:          metadata.Stream,
		Consumer:        l.name,
	}

	data, err := json.Marshal(dlqMessage)
	if err != nil {
		l.logger.Error("failed to marshal DLQ message", zap.Error(err))
		return
	}

	subject := fmt.Sprintf("dlq.%s", l.name)
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if _, err := l.dlq.Publish(pubCtx, subject, data); err != nil {
		l.logger.Error("failed to send message to DLQ", zap.Error(err), zap.String("subject", subject))
		return
	}

	l.logger.Warn("message sent to dead letter queue",
		zap.String("original_subject", msg.Subject()),
		zap.String("error", cause.Error()),
		zap.Uint64("deliveries", metadata.NumDelivered),
	)
}

// DeadLetterMessage represents a message in the dead letter queue
type DeadLetterMessage struct {
	OriginalSubject string    `json:"original_subject"`
	OriginalData    []byte    `json:"original_data"`
	Error           string    `json:"error"`
	Timestamp       time.Time `json:"timestamp"`
	NumDelivered    uint64    `json:"num_delivered"`
	Stream          string    `json:"stream"`
	Consumer        string    `json:"consumer"`
}
