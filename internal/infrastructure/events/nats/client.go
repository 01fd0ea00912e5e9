package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/config"
)

// Stream names
const (
	CatalogStream = "CATALOG_EVENTS"
	EncoderStream = "ENCODER_EVENTS"
	DLQStream     = "DLQ"
)

// Client wraps NATS and JetStream connections
type Client struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	logger *zap.Logger
	config config.NATSConfig
}

// NewClient creates a new NATS client with JetStream
func NewClient(cfg *config.Config, logger *zap.Logger) (*Client, func(), error) {
	natsCfg := cfg.Events.NATS
	opts := []nats.Option{
		nats.Name(natsCfg.ClientID),
		nats.MaxReconnects(natsCfg.MaxReconnects),
		nats.ReconnectWait(natsCfg.ReconnectWait),
		nats.Timeout(natsCfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			fields := []zap.Field{zap.Error(err)}
			if sub != nil {
				fields = append(fields, zap.String("subject", sub.Subject))
			}
			logger.Error("NATS async error", fields...)
		}),
	}

	nc, err := nats.Connect(natsCfg.URL, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	client := &Client{
		nc:     nc,
		js:     js,
		logger: logger.Named("nats"),
		config: natsCfg,
	}

	ctx, cancel := context.WithTimeout(context.Background(), natsCfg.ConnectTimeout)
	defer cancel()
	if err := client.initializeStreams(ctx); err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to initialize streams: %w", err)
	}

	cleanup := func() {
		if err := nc.Drain(); err != nil {
			logger.Error("failed to drain NATS connection", zap.Error(err))
		}
	}

	logger.Info("NATS client initialized",
		zap.String("url", natsCfg.URL),
		zap.String("client_id", natsCfg.ClientID),
	)

	return client, cleanup, nil
}

func streamConfig(name, description, subject string, maxAge time.Duration) jetstream.StreamConfig {
	return jetstream.StreamConfig{
		Name:         name,
		Description:  description,
		Subjects:     []string{subject},
		Retention:    jetstream.LimitsPolicy,
		MaxAge:       maxAge,
		MaxConsumers: -1,
		Replicas:     1,
		Storage:      jetstream.FileStorage,
		Discard:      jetstream.DiscardOld,
		MaxMsgs:      -1,
		MaxBytes:     -1,
	}
}

// initializeStreams creates the JetStream streams the catalog talks through
func (c *Client) initializeStreams(ctx context.Context) error {
	streams := []jetstream.StreamConfig{
		streamConfig(CatalogStream, "Video events published by the catalog", "catalog.>", 7*24*time.Hour),
		streamConfig(EncoderStream, "Results published by the encoder", "encoder.>", 7*24*time.Hour),
		streamConfig(DLQStream, "Dead letter queue for failed messages", "dlq.>", 30*24*time.Hour),
	}

	for _, stream := range streams {
		if _, err := c.js.CreateOrUpdateStream(ctx, stream); err != nil {
			return fmt.Errorf("failed to create stream %s: %w", stream.Name, err)
		}
	}

	c.logger.Info("JetStream streams initialized")
	return nil
}

// EncoderConsumer creates the durable consumer reading encoder results
func (c *Client) EncoderConsumer(ctx context.Context) (jetstream.Consumer, error) {
	consumer, err := c.js.CreateOrUpdateConsumer(ctx, EncoderStream, jetstream.ConsumerConfig{
		Durable:       c.config.ConsumerName,
		Description:   "Encoder results consumed by the catalog",
		FilterSubject: c.config.EncoderSubject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       30 * time.Second,
		MaxDeliver:    c.config.MaxDeliver,
		DeliverPolicy: jetstream.DeliverAllPolicy,
		ReplayPolicy:  jetstream.ReplayInstantPolicy,
		MaxAckPending: 100,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create encoder consumer: %w", err)
	}
	return consumer, nil
}

// JetStream returns the JetStream context
func (c *Client) JetStream() jetstream.JetStream {
	return c.js
}

// IsConnected checks if the client is connected
func (c *Client) IsConnected() bool {
	return c.nc.IsConnected()
}

// Health checks the health of the NATS connection
func (c *Client) Health(ctx context.Context) error {
	if !c.IsConnected() {
		return fmt.Errorf("NATS client is not connected")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	info, err := c.js.AccountInfo(ctx)
	if err != nil {
		return fmt.Errorf("failed to get JetStream account info: %w", err)
	}

	c.logger.Debug("NATS health check passed",
		zap.Int("streams", info.Streams),
		zap.Int("consumers", info.Consumers),
	)
	return nil
}
