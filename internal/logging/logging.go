// Package logging builds the zap loggers used by the engine and the CLI.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Option mutates the zap configuration before the logger is built.
type Option func(*zap.Config)

// WithLevel sets the minimum level ("debug", "info", "warn", "error").
// Unknown names leave the default info level in place.
func WithLevel(name string) Option {
	return func(cfg *zap.Config) {
		level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			return
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}
}

// WithDevelopment switches to the console encoder and development mode.
func WithDevelopment(dev bool) Option {
	return func(cfg *zap.Config) {
		cfg.Development = dev
		if dev {
			cfg.Encoding = "console"
			cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		}
	}
}

// WithFields attaches fields to every log line. Empty keys are skipped.
func WithFields(fields map[string]any) Option {
	return func(cfg *zap.Config) {
		if cfg.InitialFields == nil {
			cfg.InitialFields = map[string]any{}
		}
		for k, v := range fields {
			if k == "" {
				continue
			}
			cfg.InitialFields[k] = v
		}
	}
}

// WithOutput replaces the output paths (default stderr).
func WithOutput(paths ...string) Option {
	return func(cfg *zap.Config) {
		if len(paths) > 0 {
			cfg.OutputPaths = paths
		}
	}
}

// Config returns the production config with opts applied.
func Config(opts ...Option) zap.Config {
	cfg := zap.NewProductionConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// New builds a logger. Build failures fall back to a no-op logger.
func New(opts ...Option) *zap.Logger {
	cfg := Config(opts...)
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
