package kafka

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// MessageHandler handles the payload of one message
type MessageHandler interface {
	Handle(ctx context.Context, data []byte) error
}

// RetryPolicy controls how a failing message is retried before it is dead-lettered
type RetryPolicy struct {
	MaxAttempts     int
	Backoff         time.Duration
	DeadLetterTopic string
}

// Consumer feeds a topic to a handler through a consumer group.
// A message's offset is committed only once it was handled or dead-lettered.
type Consumer struct {
	group      sarama.ConsumerGroup
	deadLetter sarama.SyncProducer
	topic      string
	handler    MessageHandler
	policy     RetryPolicy
	logger     *zap.Logger
}

// NewConsumer creates a new Kafka consumer with its dead letter producer
func NewConsumer(brokers []string, groupID, topic string, policy RetryPolicy, handler MessageHandler, logger *zap.Logger) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Return.Errors = true
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Return.Successes = true

	group, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("creating consumer group: %w", err)
	}

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		_ = group.Close()
		return nil, fmt.Errorf("creating dead letter producer: %w", err)
	}

	return NewConsumerWithGroup(group, producer, topic, policy, handler, logger), nil
}

// NewConsumerWithGroup creates a consumer over an existing group and producer
func NewConsumerWithGroup(group sarama.ConsumerGroup, deadLetter sarama.SyncProducer, topic string, policy RetryPolicy, handler MessageHandler, logger *zap.Logger) *Consumer {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return &Consumer{
		group:      group,
		deadLetter: deadLetter,
		topic:      topic,
		handler:    handler,
		policy:     policy,
		logger:     logger.Named("kafka-consumer"),
	}
}

// Start consumes until ctx is cancelled
func (c *Consumer) Start(ctx context.Context) error {
	go func() {
		for err := range c.group.Errors() {
			c.logger.Error("consumer group error", zap.Error(err))
		}
	}()

	for {
		if err := c.group.Consume(ctx, []string{c.topic}, c); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return fmt.Errorf("consuming messages: %w", err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// ConsumeClaim implements sarama.ConsumerGroupHandler.
// Returning early leaves the offset uncommitted so the message is consumed again.
func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		if err := c.process(session.Context(), message); err != nil {
			return err
		}
		session.MarkMessage(message, "")
	}
	return nil
}

func (c *Consumer) process(ctx context.Context, message *sarama.ConsumerMessage) error {
	var err error
	for attempt := 1; attempt <= c.policy.MaxAttempts; attempt++ {
		if err = c.handler.Handle(ctx, message.Value); err == nil {
			return nil
		}
		c.logger.Warn("failed to handle message",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.String("topic", message.Topic),
			zap.Int32("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		if attempt == c.policy.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.policy.Backoff << (attempt - 1)):
		}
	}

	return c.sendToDeadLetter(message, err)
}

func (c *Consumer) sendToDeadLetter(message *sarama.ConsumerMessage, cause error) error {
	if c.deadLetter == nil || c.policy.DeadLetterTopic == "" {
		c.logger.Error("dropping message without dead letter topic",
			zap.Error(cause),
			zap.Int64("offset", message.Offset),
		)
		return nil
	}

	_, _, err := c.deadLetter.SendMessage(&sarama.ProducerMessage{
		Topic: c.policy.DeadLetterTopic,
		Key:   sarama.ByteEncoder(message.Key),
		Value: sarama.ByteEncoder(message.Value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("original_topic"), Value: []byte(message.Topic)},
			{Key: []byte("original_partition"), Value: []byte(strconv.Itoa(int(message.Partition)))},
			{Key: []byte("original_offset"), Value: []byte(strconv.FormatInt(message.Offset, 10))},
			{Key: []byte("error"), Value: []byte(cause.Error())},
		},
	})
	if err != nil {
		return fmt.Errorf("sending message to dead letter topic: %w", err)
	}

	c.logger.Error("message sent to dead letter topic",
		zap.Error(cause),
		zap.String("dead_letter_topic", c.policy.DeadLetterTopic),
		zap.Int64("offset", message.Offset),
	)
	return nil
}

// Setup implements sarama.ConsumerGroupHandler
func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

// Cleanup implements sarama.ConsumerGroupHandler
func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// Close closes the consumer group and the dead letter producer
func (c *Consumer) Close() error {
	var errs []error
	if err := c.group.Close(); err != nil {
		errs = append(errs, err)
	}
	if c.deadLetter != nil {
		if err := c.deadLetter.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
