package ports

import "go.trai.ch/cid/internal/core/domain"

// HistoryStore persists rotation bookkeeping across dispatcher restarts so
// that workspace slots left on disk keep getting evicted in order.
//
//go:generate go run go.uber.org/mock/mockgen -source=history_store.go -destination=mocks/mock_history_store.go -package=mocks
type HistoryStore interface {
	// Load returns the stored series state keyed by lock key. A store that
	// has never been written returns an empty map.
	Load() (map[domain.LockKey]domain.SeriesState, error)
	// Save replaces the stored state for one lock key.
	Save(key domain.LockKey, state domain.SeriesState) error
}
