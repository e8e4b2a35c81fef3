// Package logger builds the process-wide zap logger.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects level and output format.
type Config struct {
	Level       string // debug, info, warn, error
	Format      string // console or json
	Development bool
}

// New builds a logger from cfg. Unknown levels fall back to info.
func New(cfg Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Development {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
		// Per-frame debug lines would otherwise be sampled away unpredictably.
		zapConfig.Sampling = nil
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	switch cfg.Format {
	case "console":
		zapConfig.Encoding = "console"
	case "", "json":
		zapConfig.Encoding = "json"
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	l, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}
