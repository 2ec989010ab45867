package logging

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey int

const (
	fieldsKey contextKey = iota
)

type ZapLogger struct {
	logger *zap.Logger
}

func NewZapLogger(level zapcore.Level, opts ...Option) (*ZapLogger, error) {
	s := defaultSettings(zap.NewAtomicLevelAt(level))
	for _, opt := range opts {
		opt(s)
	}
	logger, err := s.config.Build(s.opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}
	return &ZapLogger{
		logger: logger,
	}, nil
}

// NewFromZap wraps an already configured zap logger.
func NewFromZap(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{
		logger: logger,
	}
}

// NewNop returns a logger that drops everything. Handy in tests.
func NewNop() *ZapLogger {
	return &ZapLogger{
		logger: zap.NewNop(),
	}
}

// WithContextFields stores fields in ctx; every *Ctx call made with the
// returned context carries them.
func WithContextFields(ctx context.Context, fields ...zap.Field) context.Context {
	existing := fieldsFromContext(ctx)
	merged := make([]zap.Field, 0, len(existing)+len(fields))
	merged = append(merged, existing...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, fieldsKey, merged)
}

func (l *ZapLogger) DebugCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.logger.Debug(msg, withContext(ctx, fields)...)
}

func (l *ZapLogger) InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.logger.Info(msg, withContext(ctx, fields)...)
}

func (l *ZapLogger) WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.logger.Warn(msg, withContext(ctx, fields)...)
}

func (l *ZapLogger) ErrorCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.logger.Error(msg, withContext(ctx, fields)...)
}

func (l *ZapLogger) Sync() error {
	return l.logger.Sync() //nolint:wrapcheck // unnecessary
}

func withContext(ctx context.Context, fields []zap.Field) []zap.Field {
	ctxFields := fieldsFromContext(ctx)
	if len(ctxFields) == 0 {
		return fields
	}
	res := make([]zap.Field, 0, len(ctxFields)+len(fields))
	res = append(res, ctxFields...)
	return append(res, fields...)
}

func fieldsFromContext(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	fields, ok := ctx.Value(fieldsKey).([]zap.Field)
	if !ok {
		return nil
	}
	return fields
}
