package tui

import (
	"habitmap/internal/config"
)

var appConfig = config.Default()

// Configure applies file-based settings. Call before building models.
func Configure(cfg config.Config) {
	appConfig = cfg
}
