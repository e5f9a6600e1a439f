package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cid/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/cid/internal/adapters/console" //nolint:depguard // Wired in app layer
	"go.trai.ch/cid/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/cid/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/cid/internal/adapters/shell"
	"go.trai.ch/cid/internal/adapters/state" //nolint:depguard // Wired in app layer
	"go.trai.ch/cid/internal/core/ports"
	"go.trai.ch/cid/internal/engine/history"
	"go.trai.ch/cid/internal/engine/locker"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the initialized application pieces the CLI layer needs:
// the App itself plus the concrete adapters whose runtime settings (paths,
// output, verbosity) the flags control.
type Components struct {
	App        *App
	Logger     *logger.Logger
	Messenger  *console.Messenger
	Repos      *config.Store
	Workspaces *fs.Manager
	State      *state.Store
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			console.NodeID,
			logger.NodeID,
			locker.NodeID,
			history.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			config.NodeID,
			console.NodeID,
			logger.NodeID,
			fs.NodeID,
			state.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	store, err := graft.Dep[*config.Store](ctx)
	if err != nil {
		return nil, err
	}
	executor, err := graft.Dep[ports.TaskExecutor](ctx)
	if err != nil {
		return nil, err
	}
	messenger, err := graft.Dep[*console.Messenger](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[*logger.Logger](ctx)
	if err != nil {
		return nil, err
	}
	locks, err := graft.Dep[*locker.Locker](ctx)
	if err != nil {
		return nil, err
	}
	rotator, err := graft.Dep[*history.Rotator](ctx)
	if err != nil {
		return nil, err
	}
	return New(store, executor, messenger, log, locks, rotator), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[*logger.Logger](ctx)
	if err != nil {
		return nil, err
	}
	messenger, err := graft.Dep[*console.Messenger](ctx)
	if err != nil {
		return nil, err
	}
	repos, err := graft.Dep[*config.Store](ctx)
	if err != nil {
		return nil, err
	}
	workspaces, err := graft.Dep[*fs.Manager](ctx)
	if err != nil {
		return nil, err
	}
	stateStore, err := graft.Dep[*state.Store](ctx)
	if err != nil {
		return nil, err
	}
	return &Components{
		App:        application,
		Logger:     log,
		Messenger:  messenger,
		Repos:      repos,
		Workspaces: workspaces,
		State:      stateStore,
	}, nil
}
