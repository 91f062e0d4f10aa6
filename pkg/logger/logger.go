// Package logger wraps zap with the handful of structured-field helpers the
// rest of this repo's engines and handlers share (brand, event, schedule,
// platform — the identifiers that recur across every C1-C12 log line).
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.SugaredLogger for structured logging.
type Logger struct {
	*zap.SugaredLogger
}

// New builds a Logger from ENVIRONMENT/LOG_LEVEL env vars. Called before
// config.Load() in cmd/server/main.go, so it cannot depend on a parsed
// Config; callers that already have one field it against should prefer
// passing its Environment/LogLevel through NewWithLevel instead.
func New() *Logger {
	return NewWithLevel(os.Getenv("ENVIRONMENT"), os.Getenv("LOG_LEVEL"))
}

// NewWithLevel builds a Logger for an explicit environment/level pair,
// bypassing env-var lookup (used by tests and anywhere a config.Config is
// already in hand).
func NewWithLevel(environment, level string) *Logger {
	core := zapcore.NewCore(encoderFor(environment), zapcore.AddSync(os.Stdout), levelFor(level))
	zl := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return &Logger{zl.Sugar()}
}

func encoderFor(environment string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if environment == "development" {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}

func levelFor(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// WithError attaches an error field.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{l.With("error", err)}
}

// WithRequestID attaches the inbound HTTP request's chi request ID.
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{l.With("request_id", requestID)}
}

// WithBrandID attaches the owning brand (spec §3 BrandContext.brandId).
func (l *Logger) WithBrandID(brandID string) *Logger {
	return &Logger{l.With("brand_id", brandID)}
}

// WithEventID attaches a SocialEvent ID (C1-C7 pipeline stages).
func (l *Logger) WithEventID(eventID string) *Logger {
	return &Logger{l.With("event_id", eventID)}
}

// WithScheduleID attaches a ScheduledContent ID (C8/C9 scheduling and
// publishing stages).
func (l *Logger) WithScheduleID(scheduleID string) *Logger {
	return &Logger{l.With("schedule_id", scheduleID)}
}

// WithPlatform attaches the social platform a log line concerns (C9
// publish dispatch, C6 action execution).
func (l *Logger) WithPlatform(platform string) *Logger {
	return &Logger{l.With("platform", platform)}
}
