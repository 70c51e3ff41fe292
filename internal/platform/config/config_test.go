package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, []string{PublisherLog}, cfg.Notifications.Publishers)
	assert.Equal(t, 2*time.Second, cfg.Notifications.Timeout)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Empty(t, cfg.Tracing.Endpoint)
	assert.Equal(t, "trustgate", cfg.Tracing.ServiceName)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRatio)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("TRUSTGATE_ADDR", ":9090")
	t.Setenv("NOTIFY_PUBLISHERS", "log,kafka")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")
	t.Setenv("REDIS_DIAL_TIMEOUT", "1s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, []string{"log", "kafka"}, cfg.Notifications.Publishers)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, time.Second, cfg.Redis.DialTimeout)
}

func TestLoad_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TRUSTGATE_LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("TRUSTGATE_LOG_LEVEL") })

	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Server)
		wantErr string
	}{
		{"kafka without brokers", func(c *Server) { c.Notifications.Publishers = []string{"kafka"} }, "KAFKA_BROKERS"},
		{"redis without url", func(c *Server) { c.Notifications.Publishers = []string{"redis"} }, "REDIS_URL"},
		{"amqp without url", func(c *Server) { c.Notifications.Publishers = []string{"amqp"} }, "AMQP_URL"},
		{"unknown publisher", func(c *Server) { c.Notifications.Publishers = []string{"sms"} }, "unknown notification publisher"},
		{"empty signing key", func(c *Server) { c.JWTSigningKey = "" }, "JWT_SIGNING_KEY"},
		{"sample ratio above one", func(c *Server) { c.Tracing.SampleRatio = 1.5 }, "SAMPLE_RATIO"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Server{JWTSigningKey: "k", Notifications: NotificationConfig{Publishers: []string{"log"}}}
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}
