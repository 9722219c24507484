package ports

// EventHandler receives a published event payload.
type EventHandler func(payload any)

// EventBus is the in-process broadcast channel between the gateway and
// the node layer. Publish dispatches synchronously to all handlers
// subscribed to the event name before returning, which matches the
// host's cooperative single-threaded event model.
//
//go:generate mockgen -source=bus.go -destination=mocks/mock_bus.go -package=mocks
type EventBus interface {
	// Publish delivers payload to every subscriber of event, in
	// registration order.
	Publish(event string, payload any)

	// Subscribe registers a handler for event and returns an
	// unsubscribe func. Unsubscribing twice is a no-op.
	Subscribe(event string, h EventHandler) (unsubscribe func())
}
