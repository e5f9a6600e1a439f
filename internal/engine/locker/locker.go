// Package locker implements non-blocking, key-scoped mutual exclusion for
// build attempts. An acquisition either succeeds immediately or reports the
// key as held; nothing ever queues or waits.
package locker

import (
	"sync"

	"go.trai.ch/cid/internal/core/domain"
)

// Locker tracks which lock keys currently have a build in flight. The lock
// table is local to one dispatcher instance.
type Locker struct {
	mu   sync.Mutex
	held map[domain.LockKey]struct{}
}

// New creates an empty Locker.
func New() *Locker {
	return &Locker{
		held: make(map[domain.LockKey]struct{}),
	}
}

// TryAcquire marks the key as held and returns a release guard if the key is
// currently free. It returns (nil, false) without waiting when another build
// holds the key.
func (l *Locker) TryAcquire(key domain.LockKey) (*Guard, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, held := l.held[key]; held {
		return nil, false
	}
	l.held[key] = struct{}{}
	return &Guard{locker: l, key: key}, true
}

// Held reports whether the key is currently locked.
func (l *Locker) Held(key domain.LockKey) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, held := l.held[key]
	return held
}

func (l *Locker) release(key domain.LockKey) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
}

// Guard represents one successful acquisition. Release frees the key; extra
// calls are no-ops, so the holder can release on every exit path without
// double-release hazards.
type Guard struct {
	locker *Locker
	key    domain.LockKey
	once   sync.Once
}

// Release frees the guarded key. Safe to call more than once.
func (g *Guard) Release() {
	g.once.Do(func() {
		g.locker.release(g.key)
	})
}
