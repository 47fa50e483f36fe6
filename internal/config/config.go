// Package config handles the tclobjdump logging setup
package config

import (
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates the tclobjdump logger. Debug logging wins over quiet
// mode when both flags are set.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
