// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/psync/internal/adapters/config"
	_ "go.trai.ch/psync/internal/adapters/fs"
	_ "go.trai.ch/psync/internal/adapters/logger"
	_ "go.trai.ch/psync/internal/adapters/msbuild"
	_ "go.trai.ch/psync/internal/adapters/store"
	_ "go.trai.ch/psync/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/psync/internal/app"
)
