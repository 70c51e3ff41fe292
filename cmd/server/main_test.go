package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustgate/internal/platform/config"
)

func TestRunFlushesTracingWhenStartupFails(t *testing.T) {
	var flushed bool
	original := setupTracing
	setupTracing = func(context.Context, config.TracingConfig) (func(context.Context) error, error) {
		return func(context.Context) error {
			flushed = true
			return nil
		}, nil
	}
	t.Cleanup(func() { setupTracing = original })

	cfg := config.Server{ShutdownTimeout: time.Second}
	cfg.Notifications.Publishers = []string{"carrier_pigeon"}

	err := run(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.ErrorContains(t, err, "unknown notification publisher")
	assert.True(t, flushed)
}
