package history_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cid/internal/core/domain"
	"go.trai.ch/cid/internal/core/ports/mocks"
	"go.trai.ch/cid/internal/engine/history"
	"go.uber.org/mock/gomock"
)

const key = domain.LockKey("org/repo/main")

func TestAllocate_SequentialIndexes(t *testing.T) {
	ctrl := gomock.NewController(t)
	workspaces := mocks.NewMockWorkspaces(ctrl)
	store := mocks.NewMockHistoryStore(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	store.EXPECT().Load().Return(nil, nil)
	store.EXPECT().Save(key, gomock.Any()).Return(nil).Times(3)
	for i := range 3 {
		workspaces.EXPECT().Allocate(key, i).Return("/work/slot-"+strconv.Itoa(i), nil)
	}

	rotator := history.NewRotator(workspaces, store, logger)
	for i := range 3 {
		slot, err := rotator.Allocate(key, 7)
		require.NoError(t, err)
		assert.Equal(t, key, slot.Key)
		assert.Equal(t, i, slot.Index)
		assert.Equal(t, "/work/slot-"+strconv.Itoa(i), slot.Dir)
	}

	assert.Equal(t, []int{0, 1, 2}, rotator.Live(key))
}

func TestAllocate_EvictsOldestBeyondRetention(t *testing.T) {
	ctrl := gomock.NewController(t)
	workspaces := mocks.NewMockWorkspaces(ctrl)
	store := mocks.NewMockHistoryStore(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	store.EXPECT().Load().Return(nil, nil)
	store.EXPECT().Save(key, gomock.Any()).Return(nil).Times(4)
	workspaces.EXPECT().Allocate(key, gomock.Any()).Return("/work/slot", nil).Times(4)
	// Slot 0 is the oldest and the only one evicted by the fourth allocation.
	workspaces.EXPECT().Remove(key, 0).Return(nil)

	rotator := history.NewRotator(workspaces, store, logger)
	for range 4 {
		_, err := rotator.Allocate(key, 3)
		require.NoError(t, err)
	}

	assert.Equal(t, []int{1, 2, 3}, rotator.Live(key))
}

func TestAllocate_ResumesPersistedSeries(t *testing.T) {
	ctrl := gomock.NewController(t)
	workspaces := mocks.NewMockWorkspaces(ctrl)
	store := mocks.NewMockHistoryStore(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	store.EXPECT().Load().Return(map[domain.LockKey]domain.SeriesState{
		key: {NextIndex: 5, Live: []int{3, 4}},
	}, nil)
	workspaces.EXPECT().Remove(key, 3).Return(nil)
	workspaces.EXPECT().Allocate(key, 5).Return("/work/slot-5", nil)
	store.EXPECT().Save(key, domain.SeriesState{NextIndex: 6, Live: []int{4, 5}}).Return(nil)

	rotator := history.NewRotator(workspaces, store, logger)
	slot, err := rotator.Allocate(key, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, slot.Index)
	assert.Equal(t, []int{4, 5}, rotator.Live(key))
}

func TestAllocate_RetentionBelowOneKeepsNewSlot(t *testing.T) {
	ctrl := gomock.NewController(t)
	workspaces := mocks.NewMockWorkspaces(ctrl)
	store := mocks.NewMockHistoryStore(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	store.EXPECT().Load().Return(nil, nil)
	store.EXPECT().Save(key, gomock.Any()).Return(nil).Times(2)
	workspaces.EXPECT().Allocate(key, gomock.Any()).Return("/work/slot", nil).Times(2)
	workspaces.EXPECT().Remove(key, 0).Return(nil)

	rotator := history.NewRotator(workspaces, store, logger)
	_, err := rotator.Allocate(key, 0)
	require.NoError(t, err)
	_, err = rotator.Allocate(key, 0)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, rotator.Live(key))
}

func TestAllocate_EvictionFailureDoesNotBlockBuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	workspaces := mocks.NewMockWorkspaces(ctrl)
	store := mocks.NewMockHistoryStore(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	store.EXPECT().Load().Return(nil, nil)
	store.EXPECT().Save(key, gomock.Any()).Return(nil).Times(2)
	workspaces.EXPECT().Allocate(key, gomock.Any()).Return("/work/slot", nil).Times(2)
	workspaces.EXPECT().Remove(key, 0).Return(errors.New("device busy"))
	logger.EXPECT().Warn(gomock.Any())

	rotator := history.NewRotator(workspaces, store, logger)
	_, err := rotator.Allocate(key, 1)
	require.NoError(t, err)
	slot, err := rotator.Allocate(key, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, slot.Index)
}

func TestAllocate_WorkspaceFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	workspaces := mocks.NewMockWorkspaces(ctrl)
	store := mocks.NewMockHistoryStore(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	store.EXPECT().Load().Return(nil, nil)
	workspaces.EXPECT().Allocate(key, 0).Return("", errors.New("disk full"))

	rotator := history.NewRotator(workspaces, store, logger)
	_, err := rotator.Allocate(key, 7)
	assert.ErrorContains(t, err, "failed to allocate workspace slot")
}
