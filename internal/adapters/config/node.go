package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/lorabridge/lorabridge/internal/adapters/logger"
	"github.com/lorabridge/lorabridge/internal/core/ports"
)

// NodeID is the unique identifier for the config store Graft node.
const NodeID graft.ID = "adapter.config_store"

// EnvConfigPath overrides where the config file is looked up.
const EnvConfigPath = "LORABRIDGE_CONFIG"

// DefaultConfigPath is resolved against the working directory.
const DefaultConfigPath = "lorabridge.yaml"

// Path returns the config file location.
func Path() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultConfigPath
}

func init() {
	graft.Register(graft.Node[*Store]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Store, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(NewLoader(log), Path(), log), nil
		},
	})
}
