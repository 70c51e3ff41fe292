package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Server captures process level configuration. Every field has a development
// default so the binary boots with in-memory stores and the log publisher.
type Server struct {
	Addr            string        `env:"TRUSTGATE_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"TRUSTGATE_LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"TRUSTGATE_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	JWTSigningKey string `env:"JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	JWTIssuer     string `env:"JWT_ISSUER" envDefault:"trustgate"`
	JWTAudience   string `env:"JWT_AUDIENCE" envDefault:"trustgate-api"`

	// DatabaseURL switches every store to PostgreSQL when set.
	DatabaseURL string `env:"DATABASE_URL"`

	Redis         RedisConfig        `envPrefix:"REDIS_"`
	Kafka         KafkaConfig        `envPrefix:"KAFKA_"`
	AMQP          AMQPConfig         `envPrefix:"AMQP_"`
	Notifications NotificationConfig `envPrefix:"NOTIFY_"`
	Tracing       TracingConfig      `envPrefix:"TRUSTGATE_OTEL_"`
}

// RedisConfig configures the go-redis client. An empty URL disables Redis.
type RedisConfig struct {
	URL          string        `env:"URL"`
	PoolSize     int           `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"3s"`
	Stream       string        `env:"STREAM" envDefault:"trustgate.notifications"`
}

type KafkaConfig struct {
	Brokers           []string `env:"BROKERS" envSeparator:","`
	Topic             string   `env:"TOPIC" envDefault:"trustgate.notifications"`
	Partitions        int32    `env:"PARTITIONS" envDefault:"3"`
	ReplicationFactor int16    `env:"REPLICATION_FACTOR" envDefault:"1"`
}

type AMQPConfig struct {
	URL      string `env:"URL"`
	Exchange string `env:"EXCHANGE" envDefault:"trustgate.notifications"`
}

// TracingConfig enables OTLP span export. An empty endpoint keeps tracing
// off.
type TracingConfig struct {
	Endpoint    string  `env:"ENDPOINT"`
	ServiceName string  `env:"SERVICE_NAME" envDefault:"trustgate"`
	SampleRatio float64 `env:"SAMPLE_RATIO" envDefault:"1"`
}

// NotificationConfig selects which publishers the dispatcher fans out to.
type NotificationConfig struct {
	Publishers []string      `env:"PUBLISHERS" envSeparator:"," envDefault:"log"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"2s"`
}

const (
	PublisherLog   = "log"
	PublisherKafka = "kafka"
	PublisherRedis = "redis"
	PublisherAMQP  = "amqp"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads optional .env files (missing files are ignored) and then the
// process environment. Variables already set in the environment win.
func Load(dotenvFiles ...string) (Server, error) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Server{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks that every selected publisher has its transport configured.
func (c Server) Validate() error {
	for _, p := range c.Notifications.Publishers {
		switch p {
		case PublisherLog:
		case PublisherKafka:
			if len(c.Kafka.Brokers) == 0 {
				return errors.New("kafka publisher selected but KAFKA_BROKERS is empty")
			}
		case PublisherRedis:
			if c.Redis.URL == "" {
				return errors.New("redis publisher selected but REDIS_URL is empty")
			}
		case PublisherAMQP:
			if c.AMQP.URL == "" {
				return errors.New("amqp publisher selected but AMQP_URL is empty")
			}
		default:
			return fmt.Errorf("unknown notification publisher %q", p)
		}
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return errors.New("TRUSTGATE_OTEL_SAMPLE_RATIO must be between 0 and 1")
	}
	if c.JWTSigningKey == "" {
		return errors.New("JWT_SIGNING_KEY must not be empty")
	}
	return nil
}
