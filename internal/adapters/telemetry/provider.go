// Package telemetry wires the OpenTelemetry tracer provider.
package telemetry

import (
	"context"

	"github.com/lorabridge/lorabridge/internal/core/ports"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Provider owns the tracer provider lifecycle.
type Provider struct {
	tp *sdktrace.TracerProvider
}

// NewProvider installs a tracer provider whose spans are surfaced
// through the logger bridge, and registers it globally so the proxy
// and remote client tracers pick it up.
func NewProvider(logger ports.Logger) *Provider {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewBridge(logger)),
	)
	otel.SetTracerProvider(tp)
	return &Provider{tp: tp}
}

// Shutdown flushes and stops the provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.tp.Shutdown(ctx)
}
