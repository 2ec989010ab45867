package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	initialSampling    = 100
	thereafterSampling = 100
)

type settings struct {
	config *zap.Config
	opts   []zap.Option
}

type Option func(*settings)

// WithOutputPaths replaces the default stderr sink.
func WithOutputPaths(paths ...string) Option {
	return func(s *settings) {
		if len(paths) == 0 {
			return
		}
		s.config.OutputPaths = paths
	}
}

// WithConsoleEncoding switches to the human readable encoder, used by the console binary.
func WithConsoleEncoding() Option {
	return func(s *settings) {
		s.config.Encoding = "console"
	}
}

func defaultSettings(level zap.AtomicLevel) *settings {
	config := &zap.Config{
		Level:       level,
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    initialSampling,
			Thereafter: thereafterSampling,
		},
		Encoding: "json",
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:     "message",
			LevelKey:       "level",
			TimeKey:        "@timestamp",
			NameKey:        "logger",
			CallerKey:      "caller",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return &settings{
		config: config,
		opts: []zap.Option{
			zap.AddCallerSkip(1),
		},
	}
}
