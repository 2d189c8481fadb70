// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/jopts/internal/adapters/config"
	_ "go.trai.ch/jopts/internal/adapters/fs"
	_ "go.trai.ch/jopts/internal/adapters/logger"
	_ "go.trai.ch/jopts/internal/adapters/telemetry"
	_ "go.trai.ch/jopts/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/jopts/internal/app"
	_ "go.trai.ch/jopts/internal/engine/options"
)
