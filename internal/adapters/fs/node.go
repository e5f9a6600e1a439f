package fs

import (
	"context"

	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.workspaces"

func init() {
	graft.Register(graft.Node[*Manager]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Manager, error) {
			return NewManager(), nil
		},
	})
}
