package kit

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewLogger(service, level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = parseLevel(level, zapcore.InfoLevel)
	cfg.InitialFields = map[string]any{"service": service}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// NewConsoleLogger writes human-readable entries to stderr and never goes
// below warn, so it stays out of an interactive session on stdout.
func NewConsoleLogger(service, level string) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = parseLevel(level, zapcore.WarnLevel)
	if cfg.Level.Level() < zapcore.WarnLevel {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.InitialFields = map[string]any{"service": service}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func parseLevel(level string, def zapcore.Level) zap.AtomicLevel {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil || level == "" {
		return zap.NewAtomicLevelAt(def)
	}
	return lvl
}
