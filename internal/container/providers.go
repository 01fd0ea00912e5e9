// Package container wires the catalog service together.
package container

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	videoapp "github.com/narwhalmedia/catalog/internal/application/video"
	"github.com/narwhalmedia/catalog/internal/config"
	"github.com/narwhalmedia/catalog/internal/domain/events"
	"github.com/narwhalmedia/catalog/internal/infrastructure/events/encoder"
	"github.com/narwhalmedia/catalog/internal/infrastructure/events/kafka"
	"github.com/narwhalmedia/catalog/internal/infrastructure/events/nats"
	"github.com/narwhalmedia/catalog/internal/infrastructure/storage"
	"github.com/narwhalmedia/catalog/pkg/interfaces"
	pkglogger "github.com/narwhalmedia/catalog/pkg/logger"
)

// CatalogContainer holds all dependencies of the catalog service
type CatalogContainer struct {
	Config       *config.Config
	Logger       *zap.Logger
	DB           *gorm.DB
	Transport    *Transport
	VideoService *videoapp.Service
	Listener     EncoderListener
}

// EncoderListener consumes encoder results until ctx is cancelled
type EncoderListener interface {
	Start(ctx context.Context) error
}

// Transport is the messaging connection selected by events.transport
type Transport struct {
	Publisher events.EventPublisher
	NATS      *nats.Client
}

// Health reports whether the messaging connection is usable
func (t *Transport) Health(ctx context.Context) error {
	if t.NATS == nil {
		return nil
	}
	return t.NATS.Health(ctx)
}

func provideBlobStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.BlobStorage, error) {
	if cfg.Storage.Type == "s3" {
		return storage.NewS3Storage(ctx, cfg.Storage.S3Bucket, cfg.Storage.S3Prefix, cfg.Storage.S3Region, logger)
	}
	return storage.NewLocalStorage(cfg.Storage.LocalPath, logger)
}

func provideTransport(cfg *config.Config, logger *zap.Logger) (*Transport, func(), error) {
	switch cfg.Events.Transport {
	case "kafka":
		publisher, err := kafka.NewPublisher(cfg.Events.Kafka.Brokers, cfg.Events.Kafka.Topic, logger)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := publisher.Close(); err != nil {
				logger.Error("failed to close kafka publisher", zap.Error(err))
			}
		}
		return &Transport{Publisher: publisher}, cleanup, nil
	case "nats":
		client, cleanup, err := nats.NewClient(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		publisher := nats.NewPublisher(client.JetStream(), cfg.Events.NATS.CatalogSubject, logger)
		return &Transport{Publisher: publisher, NATS: client}, cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unsupported events transport: %q", cfg.Events.Transport)
	}
}

func providePublisher(t *Transport) events.EventPublisher {
	return t.Publisher
}

func provideAppLogger(logger *zap.Logger) interfaces.Logger {
	return pkglogger.FromZap(logger.Named("video-service"))
}

func provideEncoderListener(ctx context.Context, cfg *config.Config, t *Transport, handler *encoder.Handler, logger *zap.Logger) (EncoderListener, func(), error) {
	if t.NATS == nil {
		kafkaCfg := cfg.Events.Kafka
		policy := kafka.RetryPolicy{
			MaxAttempts:     kafkaCfg.MaxAttempts,
			Backoff:         kafkaCfg.RetryBackoff,
			DeadLetterTopic: kafkaCfg.DeadLetterTopic,
		}
		consumer, err := kafka.NewConsumer(kafkaCfg.Brokers, kafkaCfg.GroupID, kafkaCfg.EncoderTopic, policy, handler, logger)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := consumer.Close(); err != nil {
				logger.Error("failed to close kafka consumer", zap.Error(err))
			}
		}
		return consumer, cleanup, nil
	}

	natsCfg := cfg.Events.NATS
	consumer, err := t.NATS.EncoderConsumer(ctx)
	if err != nil {
		return nil, nil, err
	}
	listener := nats.NewEncoderListener(consumer, t.NATS.JetStream(), handler, natsCfg.ConsumerName, natsCfg.MaxDeliver, logger)
	return listener, func() {}, nil
}
