// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/cid/internal/core/domain"

// RepoStore looks up repository build configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=repo_store.go -destination=mocks/mock_repo_store.go -package=mocks
type RepoStore interface {
	// Get returns the configuration for a repository and whether the
	// repository is listed at all. An absent repository is a normal outcome,
	// not an error; the error covers an unreadable or invalid store.
	Get(repository string) (domain.RepositoryConfig, bool, error)
}
