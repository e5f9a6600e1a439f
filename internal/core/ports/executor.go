package ports

import (
	"context"

	"go.trai.ch/cid/internal/core/domain"
)

// TaskExecutor runs an ordered task chain for one build attempt.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type TaskExecutor interface {
	// Submit executes the descriptors strictly in order, short-circuiting on
	// the first failure except that a trailing cleanup task still runs. The
	// attempt provides the workspace slot and the per-attempt environment.
	Submit(ctx context.Context, attempt domain.BuildAttempt, tasks []domain.TaskDescriptor) error
}
