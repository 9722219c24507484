package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/lorabridge/lorabridge/internal/adapters/config"
	"github.com/lorabridge/lorabridge/internal/adapters/events"
	"github.com/lorabridge/lorabridge/internal/adapters/logger"
	"github.com/lorabridge/lorabridge/internal/adapters/proxy"
	"github.com/lorabridge/lorabridge/internal/adapters/remote"
	"github.com/lorabridge/lorabridge/internal/adapters/telemetry"
	"github.com/lorabridge/lorabridge/internal/core/ports"
)

const (
	// RegistryNodeID is the unique identifier for the node registry Graft node.
	RegistryNodeID graft.ID = "app.registry"
	// ComponentsNodeID is the unique identifier for the assembled components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the wired application for the CLI layer.
type Components struct {
	App      *App
	Config   *config.Store
	Registry *Registry
	Bus      ports.EventBus
	Logger   ports.Logger
}

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        RegistryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{events.NodeID, remote.ClientNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Registry, error) {
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
			return NewRegistry(bus, meta, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			proxy.NodeID,
			RegistryNodeID,
			telemetry.NodeID,
			events.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			store, err := graft.Dep[*config.Store](ctx)
			if err != nil {
				return nil, err
			}
			handler, err := graft.Dep[*proxy.Handler](ctx)
			if err != nil {
				return nil, err
			}
			registry, err := graft.Dep[*Registry](ctx)
			if err != nil {
				return nil, err
			}
			provider, err := graft.Dep[*telemetry.Provider](ctx)
			if err != nil {
				return nil, err
			}
			bus, err := graft.Dep[ports.EventBus](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:      New(store, handler, registry, provider, log),
				Config:   store,
				Registry: registry,
				Bus:      bus,
				Logger:   log,
			}, nil
		},
	})
}
