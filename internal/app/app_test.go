package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cid/internal/app"
	"go.trai.ch/cid/internal/core/domain"
	"go.trai.ch/cid/internal/core/ports/mocks"
	"go.trai.ch/cid/internal/engine/history"
	"go.trai.ch/cid/internal/engine/locker"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	store      *mocks.MockRepoStore
	executor   *mocks.MockTaskExecutor
	messenger  *mocks.MockMessenger
	logger     *mocks.MockLogger
	workspaces *mocks.MockWorkspaces
	histStore  *mocks.MockHistoryStore
	locks      *locker.Locker
	app        *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		store:      mocks.NewMockRepoStore(ctrl),
		executor:   mocks.NewMockTaskExecutor(ctrl),
		messenger:  mocks.NewMockMessenger(ctrl),
		logger:     mocks.NewMockLogger(ctrl),
		workspaces: mocks.NewMockWorkspaces(ctrl),
		histStore:  mocks.NewMockHistoryStore(ctrl),
		locks:      locker.New(),
	}
	rotator := history.NewRotator(f.workspaces, f.histStore, f.logger)
	f.app = app.New(f.store, f.executor, f.messenger, f.logger, f.locks, rotator)
	return f
}

func (f *fixture) expectAllocation(key domain.LockKey, dir string) {
	f.histStore.EXPECT().Load().Return(nil, nil)
	f.workspaces.EXPECT().Allocate(key, 0).Return(dir, nil)
	f.histStore.EXPECT().Save(key, gomock.Any()).Return(nil)
}

func taskNames(tasks []domain.TaskDescriptor) []string {
	names := make([]string, len(tasks))
	for i, task := range tasks {
		names[i] = task.Name
	}
	return names
}

func TestDispatch_UnlistedRepositoryIsIgnored(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().Get("github.com/org/repo").Return(domain.RepositoryConfig{}, false, nil)
	f.logger.EXPECT().Debug(gomock.Any())

	err := f.app.Dispatch(context.Background(), domain.BuildEvent{Repository: "github.com/org/repo", Branch: "main"})
	assert.NoError(t, err)
}

func TestDispatch_MissingTypeIsReportedOnce(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().Get("github.com/org/repo").Return(
		domain.RepositoryConfig{ID: "github.com/org/repo", CloneURL: "https://host/repo.git"}, true, nil)
	f.messenger.EXPECT().Say("No 'type' specified for github.com/org/repo")

	err := f.app.Dispatch(context.Background(), domain.BuildEvent{Repository: "github.com/org/repo", Branch: "main"})
	assert.NoError(t, err)
}

func TestDispatch_TypeNoneIsSilentlySkipped(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().Get("github.com/org/repo").Return(
		domain.RepositoryConfig{ID: "github.com/org/repo", Type: domain.BuildTypeNone}, true, nil)
	f.logger.EXPECT().Debug(gomock.Any())

	err := f.app.Dispatch(context.Background(), domain.BuildEvent{Repository: "github.com/org/repo", Branch: "main"})
	assert.NoError(t, err)
}

func TestDispatch_UnknownTypeIsReportedOnce(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().Get("github.com/org/repo").Return(
		domain.RepositoryConfig{ID: "github.com/org/repo", Type: "mystery"}, true, nil)
	f.messenger.EXPECT().Say("No build kind registered for type 'mystery' of github.com/org/repo")

	err := f.app.Dispatch(context.Background(), domain.BuildEvent{Repository: "github.com/org/repo", Branch: "main"})
	assert.NoError(t, err)
}

func TestDispatch_MissingCloneURLNeverTakesTheLock(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().Get("github.com/org/repo").Return(
		domain.RepositoryConfig{ID: "github.com/org/repo", Type: "build"}, true, nil)
	f.messenger.EXPECT().Say("No 'clone_url' specified for 'github.com/org/repo' in the repositories file")

	event := domain.BuildEvent{Repository: "github.com/org/repo", Branch: "main"}
	err := f.app.Dispatch(context.Background(), event)
	require.NoError(t, err)
	assert.False(t, f.locks.Held(event.Key()))
}

func TestDispatch_StoreFailurePropagates(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().Get("github.com/org/repo").Return(domain.RepositoryConfig{}, false, errors.New("yaml exploded"))

	err := f.app.Dispatch(context.Background(), domain.BuildEvent{Repository: "github.com/org/repo", Branch: "main"})
	assert.ErrorContains(t, err, "failed to look up repository configuration")
}

func TestDispatch_StandardBuildOverHTTPS(t *testing.T) {
	f := newFixture(t)
	config := domain.RepositoryConfig{
		ID:          "github.com/org/repo",
		Type:        "build",
		CloneURL:    "https://host/repo.git",
		KeepHistory: 3,
	}
	event := domain.BuildEvent{Repository: "github.com/org/repo", Branch: "main"}
	key := event.Key()

	f.store.EXPECT().Get("github.com/org/repo").Return(config, true, nil)
	f.expectAllocation(key, "/work/slot-0")

	var submitted []domain.TaskDescriptor
	f.executor.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, attempt domain.BuildAttempt, tasks []domain.TaskDescriptor) error {
			assert.Equal(t, event, attempt.Event)
			assert.Equal(t, config, attempt.Config)
			assert.Equal(t, domain.HistorySlot{Key: key, Index: 0, Dir: "/work/slot-0"}, attempt.Slot)
			submitted = tasks
			return nil
		})

	err := f.app.Dispatch(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.TaskGitSync, domain.TaskRunPipeline, domain.TaskCleanup}, taskNames(submitted))
	assert.Equal(t, []string{"https://host/repo.git", "main", key.String(), "true"}, submitted[0].Args)
	assert.False(t, f.locks.Held(key), "the key must be free again after the attempt")
}

func TestDispatch_LocalTrustedBuildOverSSH(t *testing.T) {
	f := newFixture(t)
	config := domain.RepositoryConfig{
		ID:       "github.com/org/tool",
		Type:     "localtrusted",
		CloneURL: "git@host:tool.git",
	}
	event := domain.BuildEvent{Repository: "github.com/org/tool", Branch: "main"}

	f.store.EXPECT().Get("github.com/org/tool").Return(config, true, nil)
	f.expectAllocation(event.Key(), "/work/slot-0")

	var submitted []domain.TaskDescriptor
	f.executor.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.BuildAttempt, tasks []domain.TaskDescriptor) error {
			submitted = tasks
			return nil
		})

	err := f.app.Dispatch(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, []string{
		domain.TaskSSHInit,
		domain.TaskSSHScan,
		domain.TaskGitSync,
		domain.TaskLocalExec,
	}, taskNames(submitted))
	assert.Equal(t, []string{"host"}, submitted[1].Args)
}

func TestDispatch_SubmitFailureReleasesTheLock(t *testing.T) {
	f := newFixture(t)
	config := domain.RepositoryConfig{ID: "github.com/org/repo", Type: "build", CloneURL: "https://host/repo.git"}
	event := domain.BuildEvent{Repository: "github.com/org/repo", Branch: "main"}

	f.store.EXPECT().Get("github.com/org/repo").Return(config, true, nil)
	f.expectAllocation(event.Key(), "/work/slot-0")
	f.executor.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("exit status 1"))

	err := f.app.Dispatch(context.Background(), event)
	assert.ErrorContains(t, err, "build failed")
	assert.False(t, f.locks.Held(event.Key()))
}

func TestDispatch_ContendingEventIsDropped(t *testing.T) {
	f := newFixture(t)
	config := domain.RepositoryConfig{ID: "github.com/org/repo", Type: "build", CloneURL: "https://host/repo.git"}
	event := domain.BuildEvent{Repository: "github.com/org/repo", Branch: "main"}

	f.store.EXPECT().Get("github.com/org/repo").Return(config, true, nil).Times(2)
	f.expectAllocation(event.Key(), "/work/slot-0")
	f.logger.EXPECT().Warn(gomock.Any())

	started := make(chan struct{})
	proceed := make(chan struct{})
	f.executor.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, domain.BuildAttempt, []domain.TaskDescriptor) error {
			close(started)
			<-proceed
			return nil
		})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, f.app.Dispatch(context.Background(), event))
	}()

	<-started
	// The first attempt still holds the key, so this one must be dropped
	// without a second submission.
	assert.NoError(t, f.app.Dispatch(context.Background(), event))

	close(proceed)
	wg.Wait()
	assert.False(t, f.locks.Held(event.Key()))
}

func TestRegisterKind_OverridesBuiltIn(t *testing.T) {
	f := newFixture(t)
	config := domain.RepositoryConfig{ID: "github.com/org/repo", Type: "build", CloneURL: "https://host/repo.git"}
	f.store.EXPECT().Get("github.com/org/repo").Return(config, true, nil)

	var called bool
	f.app.RegisterKind("build", app.OrchestratorFunc(
		func(context.Context, domain.BuildEvent, domain.RepositoryConfig) error {
			called = true
			return nil
		}))

	err := f.app.Dispatch(context.Background(), domain.BuildEvent{Repository: "github.com/org/repo", Branch: "main"})
	require.NoError(t, err)
	assert.True(t, called)
}
