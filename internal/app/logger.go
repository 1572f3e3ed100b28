// Package app provides logger initialization.
package app

import (
	"github.com/guttosm/scoop-service/config"
	"github.com/guttosm/scoop-service/internal/logger"
)

// InitializeLogger initializes the global logger from configuration.
func InitializeLogger(cfg config.LogConfig) {
	logger.Init(cfg.Level, cfg.Pretty)
}
