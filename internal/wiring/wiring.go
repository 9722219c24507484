// Package wiring registers all Graft nodes for the application.
package wiring

import (
	_ "github.com/lorabridge/lorabridge/internal/adapters/config"
	_ "github.com/lorabridge/lorabridge/internal/adapters/events"
	_ "github.com/lorabridge/lorabridge/internal/adapters/logger"
	_ "github.com/lorabridge/lorabridge/internal/adapters/proxy"
	_ "github.com/lorabridge/lorabridge/internal/adapters/remote"
	_ "github.com/lorabridge/lorabridge/internal/adapters/telemetry"
	_ "github.com/lorabridge/lorabridge/internal/app"
)
