package audit

import (
	"context"
	"testing"

	"go-candidate-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerRecord(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewWithZap(zap.New(core), "candidate-backend", "test")

	ctx := context.WithValue(context.Background(), domain.KeyRequestID, "req-1")
	l.Record(ctx, Event{
		Action:   ActionCandidateDeleted,
		Entity:   "candidate",
		EntityID: 7,
		Details:  map[string]interface{}{"resumes_removed": 2},
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "candidate_deleted", entry.Message)
	assert.Equal(t, zapcore.WarnLevel, entry.Level)

	fields := entry.ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, int64(7), fields["entity_id"])
	assert.Equal(t, `{"resumes_removed":2}`, fields["details"])
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskEmail("john@example.com"))
	assert.Equal(t, "***", MaskEmail("@example.com"))
	assert.Equal(t, "***", MaskEmail("plain"))
}
