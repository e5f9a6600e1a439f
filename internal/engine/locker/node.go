package locker

import (
	"context"

	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "engine.locker"

func init() {
	graft.Register(graft.Node[*Locker]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Locker, error) {
			return New(), nil
		},
	})
}
