// Package observability builds the structured logger shared by the pair finder and its CLI.
package observability

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/tilegrow/internal/config"
)

// presets maps a logging.format value to its base zap configuration.
var presets = map[string]func() zap.Config{
	"json": zap.NewProductionConfig,
	"console": func() zap.Config {
		c := zap.NewDevelopmentConfig()
		c.DisableStacktrace = true
		return c
	},
}

// NewLogger builds the process logger from cfg. Entries go to stderr so the
// ranked queue owns stdout.
//
// Precondition: cfg.Level is one of "debug", "info", "warn", "error" and
// cfg.Format is "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}
	preset, ok := presets[cfg.Format]
	if !ok {
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg := preset()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.OutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// RunLogger scopes base to one pair-finding run. Every entry carries a fresh
// run_id and the seed, so a logged run can be replayed from its output.
//
// Precondition: base must be non-nil.
func RunLogger(base *zap.Logger, seed uint64) *zap.Logger {
	return base.Named("pairfinder").With(
		zap.String("run_id", uuid.NewString()),
		zap.Uint64("seed", seed),
	)
}

// TraceDraws reports whether logger records debug entries, which is when
// wrapping the random source in a draw logger is worth its cost.
func TraceDraws(logger *zap.Logger) bool {
	return logger.Core().Enabled(zapcore.DebugLevel)
}
