package proxy

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/lorabridge/lorabridge/internal/adapters/config"
	"github.com/lorabridge/lorabridge/internal/adapters/events"
	"github.com/lorabridge/lorabridge/internal/adapters/logger"
	"github.com/lorabridge/lorabridge/internal/adapters/remote"
	"github.com/lorabridge/lorabridge/internal/core/ports"
)

// NodeID is the unique identifier for the proxy handler Graft node.
const NodeID graft.ID = "adapter.proxy"

func init() {
	graft.Register(graft.Node[*Handler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, events.NodeID, remote.ClientNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Handler, error) {
			store, err := graft.Dep[*config.Store](ctx)
			if err != nil {
				return nil, err
			}
			bus, err := graft.Dep[ports.EventBus](ctx)
			if err != nil {
				return nil, err
			}
			meta, err := graft.Dep[ports.MetadataClient](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(Options{
				RemoteURL: store.RemoteURL,
				Timeout:   store.Current().Timeout(),
				Bus:       bus,
				Metadata:  meta,
				Logger:    log,
			}), nil
		},
	})
}
