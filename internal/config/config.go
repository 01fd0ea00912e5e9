package config

import (
	"errors"
	"fmt"
	"time"

	pkgconfig "github.com/narwhalmedia/catalog/pkg/config"
)

// ServiceName is the config and environment prefix of the catalog service
const ServiceName = "catalog"

// Config holds all configuration for the catalog service
type Config struct {
	Service  pkgconfig.ServiceConfig `koanf:"service"`
	Logger   pkgconfig.LoggerConfig  `koanf:"logger"`
	Database DatabaseConfig          `koanf:"database"`
	Storage  StorageConfig           `koanf:"storage"`
	Events   EventsConfig            `koanf:"events"`

	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver          string        `koanf:"driver"` // postgres or sqlite
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name"`
	SSLMode         string        `koanf:"ssl_mode"`
	Path            string        `koanf:"path"` // sqlite file
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	MaxConnLifetime time.Duration `koanf:"max_conn_lifetime"`
	Debug           bool          `koanf:"debug"`
}

// DSN returns the database connection string
func (c DatabaseConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.Path
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// StorageConfig selects where media binaries are kept
type StorageConfig struct {
	Type      string `koanf:"type"` // local or s3
	LocalPath string `koanf:"local_path"`
	S3Bucket  string `koanf:"s3_bucket"`
	S3Region  string `koanf:"s3_region"`
	S3Prefix  string `koanf:"s3_prefix"`
}

// EventsConfig holds messaging configuration
type EventsConfig struct {
	Transport string      `koanf:"transport"` // nats or kafka
	NATS      NATSConfig  `koanf:"nats"`
	Kafka     KafkaConfig `koanf:"kafka"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `koanf:"url"`
	ClusterID      string        `koanf:"cluster_id"`
	ClientID       string        `koanf:"client_id"`
	MaxReconnects  int           `koanf:"max_reconnects"`
	ReconnectWait  time.Duration `koanf:"reconnect_wait"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`

	// CatalogSubject receives video.media_created requests for the encoder
	CatalogSubject string `koanf:"catalog_subject"`
	// EncoderSubject carries encoder results back to the catalog
	EncoderSubject string `koanf:"encoder_subject"`
	ConsumerName   string `koanf:"consumer_name"`
	MaxDeliver     int    `koanf:"max_deliver"`
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers      []string `koanf:"brokers"`
	Topic        string   `koanf:"topic"`
	EncoderTopic string   `koanf:"encoder_topic"`
	GroupID      string   `koanf:"group_id"`

	// MaxAttempts bounds handling of one encoder result before it is dead-lettered
	MaxAttempts     int           `koanf:"max_attempts"`
	RetryBackoff    time.Duration `koanf:"retry_backoff"`
	DeadLetterTopic string        `koanf:"dead_letter_topic"`
}

// Default returns the configuration used when nothing else is set
func Default() *Config {
	return &Config{
		Service: pkgconfig.ServiceConfig{
			Name:        ServiceName,
			Version:     "dev",
			Environment: "dev",
			GRPCPort:    pkgconfig.DefaultGRPCPort,
		},
		Logger: pkgconfig.LoggerConfig{
			Level:  "info",
			Format: "json",
		},
		Database: DatabaseConfig{
			Driver:          "postgres",
			Host:            "localhost",
			Port:            pkgconfig.DefaultPostgresPort,
			User:            "narwhal",
			Password:        "narwhal_dev",
			Name:            "catalog",
			SSLMode:         "disable",
			Path:            "catalog.db",
			MaxOpenConns:    pkgconfig.DefaultMaxConnections,
			MaxIdleConns:    pkgconfig.DefaultMinConnections,
			MaxConnLifetime: pkgconfig.DefaultMaxConnLifetime,
		},
		Storage: StorageConfig{
			Type:      "local",
			LocalPath: "./data/media",
			S3Region:  "us-east-1",
		},
		Events: EventsConfig{
			Transport: "nats",
			NATS: NATSConfig{
				URL:            "nats://localhost:4222",
				ClusterID:      "narwhal",
				ClientID:       "catalog",
				MaxReconnects:  10,
				ReconnectWait:  2 * time.Second,
				ConnectTimeout: 5 * time.Second,
				CatalogSubject: "catalog.video.media_created",
				EncoderSubject: "encoder.video.result",
				ConsumerName:   "catalog-encoder-results",
				MaxDeliver:     5,
			},
			Kafka: KafkaConfig{
				Brokers:         []string{"localhost:9092"},
				Topic:           "catalog.video.events",
				EncoderTopic:    "encoder.video.result",
				GroupID:         "catalog",
				MaxAttempts:     5,
				RetryBackoff:    time.Second,
				DeadLetterTopic: "dlq.encoder.video.result",
			},
		},
		ShutdownTimeout: pkgconfig.DefaultShutdownTimeout,
	}
}

// Load reads the configuration from defaults, config files and CATALOG_ environment variables.
// When paths is empty the standard locations are searched.
func Load(paths ...string) (*Config, error) {
	cfg := Default()
	manager := pkgconfig.NewManager(ServiceName)
	if len(paths) > 0 {
		manager = manager.WithPaths(paths...)
	}
	if err := manager.LoadConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for inconsistencies
func (c *Config) Validate() error {
	if c.Service.Name == "" {
		return errors.New("service name is required")
	}
	if c.Service.GRPCPort <= 0 || c.Service.GRPCPort > 65535 {
		return fmt.Errorf("invalid grpc port: %d", c.Service.GRPCPort)
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" {
			return errors.New("database host is required")
		}
	case "sqlite":
		if c.Database.Path == "" {
			return errors.New("database path is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}

	switch c.Storage.Type {
	case "local":
		if c.Storage.LocalPath == "" {
			return errors.New("storage local_path is required")
		}
	case "s3":
		if c.Storage.S3Bucket == "" {
			return errors.New("storage s3_bucket is required")
		}
	default:
		return fmt.Errorf("unsupported storage type: %q", c.Storage.Type)
	}

	switch c.Events.Transport {
	case "nats":
		if c.Events.NATS.URL == "" {
			return errors.New("nats url is required")
		}
	case "kafka":
		if len(c.Events.Kafka.Brokers) == 0 {
			return errors.New("at least one kafka broker is required")
		}
		if c.Events.Kafka.MaxAttempts < 1 {
			return fmt.Errorf("invalid kafka max_attempts: %d", c.Events.Kafka.MaxAttempts)
		}
	default:
		return fmt.Errorf("unsupported events transport: %q", c.Events.Transport)
	}

	return nil
}
