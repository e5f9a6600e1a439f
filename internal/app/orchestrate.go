package app

import (
	"context"

	"go.trai.ch/cid/internal/core/domain"
	"go.trai.ch/cid/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// orchestrate runs one build attempt: exclusivity, workspace rotation,
// transport classification, chain assembly and submission. Both built-in
// kinds share it; only the chain tail differs.
func (a *App) orchestrate(ctx context.Context, event domain.BuildEvent, config domain.RepositoryConfig, kind pipeline.Kind) error {
	if config.CloneURL == "" {
		a.messenger.Say("No 'clone_url' specified for '" + event.Repository + "' in the repositories file")
		return nil
	}

	key := event.Key()
	guard, acquired := a.locker.TryAcquire(key)
	if !acquired {
		// Expected under rapid successive triggers; the event is dropped and
		// a later trigger will pick the change up.
		a.logger.Warn("build of '" + key.String() + "' already in progress, dropping event")
		return nil
	}
	// The key stays held for the whole task chain; Submit is synchronous, so
	// returning from here is the end of the attempt.
	defer guard.Release()

	slot, err := a.history.Allocate(key, config.Retention())
	if err != nil {
		return zerr.Wrap(err, "failed to allocate history slot")
	}

	transport := domain.ClassifyTransport(config.CloneURL)
	tasks := pipeline.Build(transport, pipeline.SyncParams{
		CloneURL: config.CloneURL,
		Branch:   event.Branch,
		Key:      key,
	}, kind)

	attempt := domain.BuildAttempt{Event: event, Config: config, Slot: slot}
	if err := a.executor.Submit(ctx, attempt, tasks); err != nil {
		return zerr.With(zerr.Wrap(err, "build failed"), "key", key.String())
	}
	return nil
}
