package ports

import "go.trai.ch/cid/internal/core/domain"

// Workspaces manages the backing directories for history slots.
//
//go:generate go run go.uber.org/mock/mockgen -source=workspaces.go -destination=mocks/mock_workspaces.go -package=mocks
type Workspaces interface {
	// Allocate creates the backing directory for a slot and returns its path.
	Allocate(key domain.LockKey, index int) (string, error)
	// Remove reclaims the backing directory of an evicted slot.
	Remove(key domain.LockKey, index int) error
}
