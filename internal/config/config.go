// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with the level derived from the program flags.
func CreateLogger(flags options.Flags) *log.Logger {
	cfg := log.DefaultConfig()
	if debugLogging(flags) {
		cfg.Level = log.DebugLevel
	} else if flags.Quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// debugLogging returns whether debug messages are shown. Tracing logs every
// executed instruction at debug level, so it implies debug logging.
func debugLogging(flags options.Flags) bool {
	return flags.Debug || flags.Trace
}
