package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info")

	t.Run("Should fall back to the global logger", func(t *testing.T) {
		assert.Same(t, Log, FromContext(context.Background()))
	})

	t.Run("Should return the request-scoped logger", func(t *testing.T) {
		scoped := Log.With("request_id", "abc")
		FromContext(WithContext(context.Background(), scoped)).Info("hello")
		assert.Contains(t, buf.String(), `"request_id":"abc"`)
		assert.Contains(t, buf.String(), `"msg":"hello"`)
	})

	t.Run("Should drop records below the level", func(t *testing.T) {
		buf.Reset()
		Log.Debug("hidden")
		assert.Empty(t, buf.String())
	})
}
