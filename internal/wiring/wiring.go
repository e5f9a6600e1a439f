// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/cid/internal/adapters/config"
	_ "go.trai.ch/cid/internal/adapters/console"
	_ "go.trai.ch/cid/internal/adapters/fs"
	_ "go.trai.ch/cid/internal/adapters/logger"
	_ "go.trai.ch/cid/internal/adapters/shell"
	_ "go.trai.ch/cid/internal/adapters/state"
	// Register app and engine nodes.
	_ "go.trai.ch/cid/internal/app"
	_ "go.trai.ch/cid/internal/engine/history"
	_ "go.trai.ch/cid/internal/engine/locker"
)
