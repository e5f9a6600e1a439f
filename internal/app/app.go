// Package app implements the dispatch decision layer: it classifies incoming
// repository-update events and hands them to the orchestrator registered for
// the repository's build kind.
package app

import (
	"context"

	"go.trai.ch/cid/internal/core/domain"
	"go.trai.ch/cid/internal/core/ports"
	"go.trai.ch/cid/internal/engine/history"
	"go.trai.ch/cid/internal/engine/locker"
	"go.trai.ch/cid/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// Orchestrator handles one build event for a registered build kind.
type Orchestrator interface {
	Orchestrate(ctx context.Context, event domain.BuildEvent, config domain.RepositoryConfig) error
}

// OrchestratorFunc adapts a function to the Orchestrator interface.
type OrchestratorFunc func(ctx context.Context, event domain.BuildEvent, config domain.RepositoryConfig) error

// Orchestrate calls f.
func (f OrchestratorFunc) Orchestrate(ctx context.Context, event domain.BuildEvent, config domain.RepositoryConfig) error {
	return f(ctx, event, config)
}

// App is the dispatcher. It owns the build-kind registry and the shared
// per-key lock table and history rotation.
type App struct {
	store     ports.RepoStore
	executor  ports.TaskExecutor
	messenger ports.Messenger
	logger    ports.Logger
	locker    *locker.Locker
	history   *history.Rotator
	kinds     map[string]Orchestrator
}

// New creates an App with the two built-in build kinds registered: "build"
// for networked standard builds and "localtrusted" for trusted local ones.
func New(
	store ports.RepoStore,
	executor ports.TaskExecutor,
	messenger ports.Messenger,
	logger ports.Logger,
	locks *locker.Locker,
	rotator *history.Rotator,
) *App {
	a := &App{
		store:     store,
		executor:  executor,
		messenger: messenger,
		logger:    logger,
		locker:    locks,
		history:   rotator,
		kinds:     make(map[string]Orchestrator),
	}
	a.RegisterKind("build", OrchestratorFunc(func(ctx context.Context, event domain.BuildEvent, config domain.RepositoryConfig) error {
		return a.orchestrate(ctx, event, config, pipeline.KindStandard)
	}))
	a.RegisterKind("localtrusted", OrchestratorFunc(func(ctx context.Context, event domain.BuildEvent, config domain.RepositoryConfig) error {
		return a.orchestrate(ctx, event, config, pipeline.KindLocalTrusted)
	}))
	return a
}

// RegisterKind adds an orchestrator for a repository type. Later
// registrations replace earlier ones, so callers can override the built-ins.
func (a *App) RegisterKind(name string, o Orchestrator) {
	a.kinds[name] = o
}

// Dispatch decides whether and how to build for one repository-update event.
// Every branch is terminal for the event: declines and misconfiguration
// reports return nil, a build attempt returns whatever the task chain
// returned.
func (a *App) Dispatch(ctx context.Context, event domain.BuildEvent) error {
	config, listed, err := a.store.Get(event.Repository)
	if err != nil {
		return zerr.Wrap(err, "failed to look up repository configuration")
	}
	if !listed {
		a.logger.Debug("ignoring update on '" + event.Repository + "', not listed in repositories file")
		return nil
	}
	if config.Type == "" {
		a.messenger.Say("No 'type' specified for " + event.Repository)
		return nil
	}
	if config.Type == domain.BuildTypeNone {
		a.logger.Debug("ignoring update on '" + event.Repository + "', repository type is 'none'")
		return nil
	}
	kind, ok := a.kinds[config.Type]
	if !ok {
		a.messenger.Say("No build kind registered for type '" + config.Type + "' of " + event.Repository)
		return nil
	}
	return kind.Orchestrate(ctx, event, config)
}
