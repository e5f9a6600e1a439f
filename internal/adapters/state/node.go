package state

import (
	"context"

	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.state"

func init() {
	graft.Register(graft.Node[*Store]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Store, error) {
			return NewStore(), nil
		},
	})
}
