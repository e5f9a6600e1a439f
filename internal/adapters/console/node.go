package console

import (
	"context"

	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.messenger"

func init() {
	graft.Register(graft.Node[*Messenger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Messenger, error) {
			return New(), nil
		},
	})
}
