package logger

import (
	"context"

	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[*Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Logger, error) {
			return New(), nil
		},
	})
}
