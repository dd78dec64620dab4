// Package logging provides configurable zap logger creation for the
// gradewise service.
package logging

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Style selects the log output format.
type Style string

const (
	StyleTerminal Style = "terminal"
	StyleJson     Style = "json"
	StyleNoop     Style = "noop"
)

// NewLogger creates a zap logger for the given style and level. Empty
// values default to terminal style at info level.
func NewLogger(style Style, level string) *zap.Logger {
	var err error
	var logger *zap.Logger

	if style == "" {
		style = StyleTerminal
	}
	logLevel := zapcore.InfoLevel
	if level != "" {
		if lvl, parseErr := zapcore.ParseLevel(level); parseErr == nil {
			logLevel = lvl
		}
	}

	switch style {
	case StyleNoop:
		logger = zap.NewNop()
	case StyleJson:
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(logLevel)
		logger, err = cfg.Build(
			zap.AddCaller(),
			zap.AddStacktrace(zap.ErrorLevel),
		)
	case StyleTerminal:
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(logLevel)
		logger, err = cfg.Build(
			zap.AddCaller(),
			zap.AddStacktrace(zap.ErrorLevel),
		)
	default:
		log.Fatalf("invalid logging style '%s': must be one of: terminal, json, noop", style)
	}

	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	return logger
}
