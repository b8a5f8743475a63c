package audit

import (
	"context"
	"encoding/json"
	"time"

	"go-candidate-backend/internal/domain"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Action string

const (
	ActionCandidateCreated Action = "candidate_created"
	ActionCandidateUpdated Action = "candidate_updated"
	ActionCandidateDeleted Action = "candidate_deleted"
	ActionResumeCreated    Action = "resume_created"
	ActionResumeUpdated    Action = "resume_updated"
	ActionResumeDeleted    Action = "resume_deleted"
	ActionEmailConflict    Action = "email_conflict"
)

// Event is one entry of the mutation trail.
type Event struct {
	Timestamp time.Time              `json:"timestamp"`
	Action    Action                 `json:"action"`
	Entity    string                 `json:"entity"`
	EntityID  int64                  `json:"entity_id,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Recorder accepts audit events.
type Recorder interface {
	Record(ctx context.Context, event Event)
}

// Logger writes audit events through zap.
type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// NewLogger builds a production zap logger writing JSON to stdout.
func NewLogger(serviceName, environment string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return NewWithZap(logger, serviceName, environment)
}

func NewWithZap(logger *zap.Logger, serviceName, environment string) *Logger {
	return &Logger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: environment,
	}
}

func (l *Logger) Record(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.RequestID == "" && ctx != nil {
		event.RequestID, _ = ctx.Value(domain.KeyRequestID).(string)
	}

	level := zapcore.InfoLevel
	if event.Action == ActionEmailConflict || event.Action == ActionCandidateDeleted {
		level = zapcore.WarnLevel
	}

	fields := []zap.Field{
		zap.String("service", l.serviceName),
		zap.String("env", l.environment),
		zap.String("entity", event.Entity),
		zap.Time("at", event.Timestamp),
	}
	if event.EntityID != 0 {
		fields = append(fields, zap.Int64("entity_id", event.EntityID))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	l.zapLogger.Log(level, string(event.Action), fields...)
}

func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, Event) {}

// Nop discards every event.
func Nop() Recorder {
	return nopRecorder{}
}

// MaskEmail keeps the first character of the local part: j***@example.com
func MaskEmail(email string) string {
	at := -1
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			at = i
			break
		}
	}
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}
