package domain

import "go.trai.ch/zerr"

var (
	// ErrNotConfigured is returned when a remote call is attempted
	// without a remote_url configured.
	ErrNotConfigured = zerr.New("no remote_url configured")

	// ErrRouteNotFound is returned when no route rule matches a request path.
	ErrRouteNotFound = zerr.New("no route for path")

	// ErrRemoteTimeout is returned when a remote call exceeds its deadline.
	ErrRemoteTimeout = zerr.New("remote call timed out")

	// ErrRemoteUnreachable is returned when the remote instance cannot be reached.
	ErrRemoteUnreachable = zerr.New("remote instance unreachable")

	// ErrRemoteStatus is returned when the remote answers with a non-2xx status.
	ErrRemoteStatus = zerr.New("remote returned error status")

	// ErrEntryNotFound is returned when a lora name is absent from the remote list.
	ErrEntryNotFound = zerr.New("entry not found in remote list")

	// ErrNodeNotFound is returned when an event addresses a node id that
	// is not registered.
	ErrNodeNotFound = zerr.New("node not registered")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrServerClosed is returned when the bridge server shuts down.
	ErrServerClosed = zerr.New("bridge server closed")
)
