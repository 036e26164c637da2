package logtrace

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey string

const (
	correlationIDKey contextKey = "correlation_id"
	originKey        contextKey = "origin"
)

var (
	logger     = zap.NewNop()
	level      = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	setupOnce  sync.Once
	loggerLock sync.RWMutex
)

// Setup initializes the process-wide logger. Output is JSON on stderr;
// DOCANCHOR_LOG_LEVEL overrides the initial level.
func Setup(serviceName string) {
	setupOnce.Do(func() {
		if lvl := strings.TrimSpace(os.Getenv("DOCANCHOR_LOG_LEVEL")); lvl != "" {
			_ = SetLevel(lvl)
		}

		encCfg := zap.NewProductionEncoderConfig()
		encCfg.TimeKey = "ts"
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(encCfg),
			zapcore.Lock(os.Stderr),
			level,
		)

		loggerLock.Lock()
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2)).With(zap.String("service", serviceName))
		loggerLock.Unlock()
	})
}

// SetLevel changes the minimum level at runtime ("debug", "info", "warn", "error").
func SetLevel(lvl string) error {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(lvl)))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", lvl, err)
	}
	level.SetLevel(l)
	return nil
}

// Sync flushes buffered entries.
func Sync() {
	loggerLock.RLock()
	defer loggerLock.RUnlock()
	_ = logger.Sync()
}

// CtxWithCorrelationID stores the correlation ID in the context.
func CtxWithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey, correlationID)
}

// CtxWithOrigin stores the logical origin of a call chain in the context.
func CtxWithOrigin(ctx context.Context, origin string) context.Context {
	return context.WithValue(ctx, originKey, origin)
}

func extractCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return "unknown"
	}
	if v, ok := ctx.Value(correlationIDKey).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

func extractOrigin(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(originKey).(string); ok {
		return v
	}
	return ""
}

func Debug(ctx context.Context, msg string, fields Fields) { log(ctx, zapcore.DebugLevel, msg, fields) }
func Info(ctx context.Context, msg string, fields Fields)  { log(ctx, zapcore.InfoLevel, msg, fields) }
func Warn(ctx context.Context, msg string, fields Fields)  { log(ctx, zapcore.WarnLevel, msg, fields) }
func Error(ctx context.Context, msg string, fields Fields) { log(ctx, zapcore.ErrorLevel, msg, fields) }

func log(ctx context.Context, lvl zapcore.Level, msg string, fields Fields) {
	loggerLock.RLock()
	l := logger
	loggerLock.RUnlock()

	ce := l.Check(lvl, msg)
	if ce == nil {
		return
	}

	zf := make([]zap.Field, 0, len(fields)+2)
	zf = append(zf, zap.String(FieldCorrelationID, extractCorrelationID(ctx)))
	if origin := extractOrigin(ctx); origin != "" {
		zf = append(zf, zap.String(FieldOrigin, origin))
	}
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	ce.Write(zf...)
}

// SetLogger replaces the process-wide logger and returns a function
// restoring the previous one.
func SetLogger(l *zap.Logger) (restore func()) {
	loggerLock.Lock()
	prev := logger
	logger = l
	loggerLock.Unlock()
	return func() {
		loggerLock.Lock()
		logger = prev
		loggerLock.Unlock()
	}
}
