// Package history implements the bounded workspace rotation for lock keys:
// every build attempt gets a fresh numbered slot and the oldest slot is
// evicted once a key exceeds its retention.
package history

import (
	"strconv"
	"sync"

	"go.trai.ch/cid/internal/core/domain"
	"go.trai.ch/cid/internal/core/ports"
	"go.trai.ch/zerr"
)

// Rotator hands out history slots and keeps the per-key live count within
// the configured retention. Slot age is decided by allocation sequence, never
// by timestamps. Callers allocate only while holding the key's exclusivity
// lock, so rotation for one key never races with itself.
type Rotator struct {
	workspaces ports.Workspaces
	store      ports.HistoryStore
	logger     ports.Logger

	mu     sync.Mutex
	loaded bool
	series map[domain.LockKey]*domain.SeriesState
}

// NewRotator creates a Rotator backed by the given workspace manager and
// bookkeeping store.
func NewRotator(workspaces ports.Workspaces, store ports.HistoryStore, logger ports.Logger) *Rotator {
	return &Rotator{
		workspaces: workspaces,
		store:      store,
		logger:     logger,
		series:     make(map[domain.LockKey]*domain.SeriesState),
	}
}

// Allocate reserves the next slot for the key and evicts the oldest live
// slots until at most keepHistory remain, the new slot included. It returns
// the slot with its freshly created backing directory.
func (r *Rotator) Allocate(key domain.LockKey, keepHistory int) (domain.HistorySlot, error) {
	// The slot being allocated is always retained, whatever the configured
	// retention says.
	if keepHistory < 1 {
		keepHistory = 1
	}

	r.mu.Lock()
	if err := r.loadLocked(); err != nil {
		r.mu.Unlock()
		return domain.HistorySlot{}, err
	}
	s := r.series[key]
	if s == nil {
		s = &domain.SeriesState{}
		r.series[key] = s
	}
	index := s.NextIndex
	s.NextIndex++
	s.Live = append(s.Live, index)

	var evict []int
	for len(s.Live) > keepHistory {
		evict = append(evict, s.Live[0])
		s.Live = s.Live[1:]
	}
	state := *s
	r.mu.Unlock()

	for _, old := range evict {
		if err := r.workspaces.Remove(key, old); err != nil {
			// Reclaim is best effort; a leftover directory does not block the
			// new build.
			r.logger.Warn("failed to evict history slot " + strconv.Itoa(old) + " of '" + key.String() + "': " + err.Error())
		}
	}

	dir, err := r.workspaces.Allocate(key, index)
	if err != nil {
		return domain.HistorySlot{}, zerr.With(zerr.Wrap(err, "failed to allocate workspace slot"), "key", key.String())
	}

	if err := r.store.Save(key, state); err != nil {
		r.logger.Warn("failed to persist history state for '" + key.String() + "': " + err.Error())
	}

	return domain.HistorySlot{Key: key, Index: index, Dir: dir}, nil
}

// Live returns the live slot indexes for a key in allocation order.
func (r *Rotator) Live(key domain.LockKey) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.series[key]
	if s == nil {
		return nil
	}
	live := make([]int, len(s.Live))
	copy(live, s.Live)
	return live
}

func (r *Rotator) loadLocked() error {
	if r.loaded {
		return nil
	}
	stored, err := r.store.Load()
	if err != nil {
		return zerr.Wrap(err, "failed to load history state")
	}
	for key, state := range stored {
		s := state
		r.series[key] = &s
	}
	r.loaded = true
	return nil
}
