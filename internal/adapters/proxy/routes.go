package proxy

import (
	"strings"

	"github.com/lorabridge/lorabridge/internal/core/domain"
)

// Disposition says what the proxy does with a matched request.
type Disposition int

const (
	// Forward relays the request to the remote instance.
	Forward Disposition = iota
	// ForwardWS relays a websocket upgrade to the remote instance.
	ForwardWS
	// LocalHandle keeps the request local and publishes its event, so
	// broadcasts reach the local front end instead of the remote's.
	LocalHandle
)

// Rule matches one path. Prefix rules match any path starting with
// Pattern; exact rules also accept a single trailing slash.
type Rule struct {
	Pattern     string
	Exact       bool
	Disposition Disposition
	Event       string
}

// Table is an ordered rule list, first match wins.
type Table []Rule

// Match returns the first rule covering path.
func (t Table) Match(path string) (Rule, bool) {
	for _, r := range t {
		if r.matches(path) {
			return r, true
		}
	}
	return Rule{}, false
}

func (r Rule) matches(path string) bool {
	if r.Exact {
		return path == r.Pattern || strings.TrimSuffix(path, "/") == r.Pattern
	}
	return strings.HasPrefix(path, r.Pattern)
}

// DefaultTable covers the remote manager's surface: its API and static
// asset prefixes, its web UI pages, and its progress websockets. The
// event-broadcasting endpoints stay local; they precede the /api/lm/
// prefix rule so they win the match.
func DefaultTable() Table {
	return Table{
		{Pattern: "/api/lm/loras/get_trigger_words", Exact: true, Disposition: LocalHandle, Event: domain.EventTriggerWords},
		{Pattern: "/api/lm/update-lora-code", Exact: true, Disposition: LocalHandle, Event: domain.EventLoraCode},
		{Pattern: "/api/lm/update-node-widget", Exact: true, Disposition: LocalHandle, Event: domain.EventWidgetUpdate},
		{Pattern: "/api/lm/register-nodes", Exact: true, Disposition: LocalHandle, Event: domain.EventRegistryRefresh},

		{Pattern: "/ws/fetch-progress", Exact: true, Disposition: ForwardWS},
		{Pattern: "/ws/download-progress", Exact: true, Disposition: ForwardWS},
		{Pattern: "/ws/init-progress", Exact: true, Disposition: ForwardWS},

		{Pattern: "/api/lm/", Disposition: Forward},
		{Pattern: "/loras_static/", Disposition: Forward},
		{Pattern: "/locales/", Disposition: Forward},
		{Pattern: "/example_images_static/", Disposition: Forward},

		{Pattern: "/loras", Exact: true, Disposition: Forward},
		{Pattern: "/checkpoints", Exact: true, Disposition: Forward},
		{Pattern: "/embeddings", Exact: true, Disposition: Forward},
		{Pattern: "/loras/recipes", Exact: true, Disposition: Forward},
		{Pattern: "/statistics", Exact: true, Disposition: Forward},
	}
}
