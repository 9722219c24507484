package remote

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/lorabridge/lorabridge/internal/adapters/config"
	"github.com/lorabridge/lorabridge/internal/adapters/logger"
	"github.com/lorabridge/lorabridge/internal/core/ports"
)

const (
	// CacheNodeID is the unique identifier for the list cache Graft node.
	CacheNodeID graft.ID = "adapter.metadata_cache"
	// ClientNodeID is the unique identifier for the metadata client Graft node.
	ClientNodeID graft.ID = "adapter.metadata_client"
)

func init() {
	graft.Register(graft.Node[*Cache]{
		ID:        CacheNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Cache, error) {
			return NewCache(), nil
		},
	})

	graft.Register(graft.Node[ports.MetadataClient]{
		ID:        ClientNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{CacheNodeID, config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.MetadataClient, error) {
			cache, err := graft.Dep[*Cache](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[*config.Store](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			cfg := store.Current()
			return NewClient(Options{
				BaseURL:    cfg.RemoteURL,
				Timeout:    cfg.Timeout(),
				CacheTTL:   cfg.CacheTTL(),
				AllowStale: cfg.AllowStale,
				// MapPath goes through the store so a config reload
				// takes effect on the next lookup.
				MapPath: store.MapPath,
			}, cache, log), nil
		},
	})
}
