package history

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cid/internal/adapters/fs"
	"go.trai.ch/cid/internal/adapters/logger"
	"go.trai.ch/cid/internal/adapters/state"
)

const NodeID graft.ID = "engine.history"

func init() {
	graft.Register(graft.Node[*Rotator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.NodeID, state.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Rotator, error) {
			workspaces, err := graft.Dep[*fs.Manager](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[*state.Store](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[*logger.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRotator(workspaces, store, log), nil
		},
	})
}
