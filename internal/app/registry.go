// Package app implements the application layer for lorabridge.
package app

import (
	"context"
	"strings"
	"sync"

	"github.com/lorabridge/lorabridge/internal/core/domain"
	"github.com/lorabridge/lorabridge/internal/core/ports"
	"github.com/lorabridge/lorabridge/internal/engine/codec"
	"github.com/lorabridge/lorabridge/internal/engine/reconcile"
)

// NodeInstance is one live editor node bridged into the registry.
// Graph is optional; without one the node is standalone and takes no
// part in downstream propagation.
type NodeInstance struct {
	ID         domain.NodeID
	GraphID    string
	Text       ports.TextCell
	List       ports.ListCell
	Graph      ports.GraphHost
	Reconciler *reconcile.Reconciler
}

// Registry tracks live node instances and routes inbound bus events to
// them. It is the local stand-in for the remote manager's node
// broadcasts: a lora code update addressed to a node lands here and is
// applied through the node's reconciler.
type Registry struct {
	mu     sync.RWMutex
	nodes  map[domain.NodeID]*NodeInstance
	meta   ports.MetadataClient
	bus    ports.EventBus
	logger ports.Logger
	unsubs []func()
}

// NewRegistry subscribes to the inbound events and returns the empty
// registry.
func NewRegistry(bus ports.EventBus, meta ports.MetadataClient, logger ports.Logger) *Registry {
	r := &Registry{
		nodes:  make(map[domain.NodeID]*NodeInstance),
		meta:   meta,
		bus:    bus,
		logger: logger,
	}
	r.unsubs = append(r.unsubs,
		bus.Subscribe(domain.EventLoraCode, r.onLoraCode),
	)
	return r
}

// Register adds a node instance. Re-registering an id replaces the
// previous instance, which happens when the editor recreates a node.
func (r *Registry) Register(inst *NodeInstance) {
	r.mu.Lock()
	if prev, ok := r.nodes[inst.ID]; ok && prev.Reconciler != nil {
		prev.Reconciler.Close()
	}
	r.nodes[inst.ID] = inst
	r.mu.Unlock()
}

// Deregister removes a node and closes its reconciler.
func (r *Registry) Deregister(id domain.NodeID) {
	r.mu.Lock()
	inst, ok := r.nodes[id]
	delete(r.nodes, id)
	r.mu.Unlock()
	if ok && inst.Reconciler != nil {
		inst.Reconciler.Close()
	}
}

// Len reports the number of registered nodes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes)
}

// Flush forces every pending rewrite out, for shutdown.
func (r *Registry) Flush() {
	for _, inst := range r.snapshot() {
		if inst.Reconciler != nil {
			inst.Reconciler.Flush()
		}
	}
}

// Close unsubscribes from the bus and closes all reconcilers.
func (r *Registry) Close() {
	for _, unsub := range r.unsubs {
		unsub()
	}
	for _, inst := range r.snapshot() {
		if inst.Reconciler != nil {
			inst.Reconciler.Close()
		}
	}
}

// Propagate refreshes every node downstream of from, each at most once
// per call. It follows the snapshot's links breadth-first with a
// visited set, so diamond topologies still refresh each node once.
// Wire it into a node's reconciler with reconcile.WithPropagator.
func (r *Registry) Propagate(from domain.NodeID) {
	r.mu.RLock()
	origin, ok := r.nodes[from]
	r.mu.RUnlock()
	if !ok || origin.Graph == nil {
		return
	}
	snap := origin.Graph.Snapshot()

	visited := map[domain.NodeID]bool{from: true}
	queue := []domain.NodeID{from}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, link := range snap.Links {
			if link.From != id || visited[link.To] {
				continue
			}
			visited[link.To] = true
			queue = append(queue, link.To)

			r.mu.RLock()
			inst := r.nodes[link.To]
			r.mu.RUnlock()
			if inst != nil && inst.Reconciler != nil {
				inst.Reconciler.Refresh()
			}
		}
	}
}

func (r *Registry) snapshot() []*NodeInstance {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*NodeInstance, 0, len(r.nodes))
	for _, inst := range r.nodes {
		out = append(out, inst)
	}
	return out
}

// onLoraCode applies an inbound lora code payload to its target nodes.
func (r *Registry) onLoraCode(payload any) {
	p, ok := payload.(domain.LoraCodePayload)
	if !ok {
		return
	}

	for _, inst := range r.targets(p) {
		var text string
		if p.Mode == domain.CodeReplace {
			// A replace substitutes the whole text, so a merge that
			// preserves the node's current entries would be wrong.
			// The list cell is overwritten before the pass runs.
			text = p.Code
			inst.List.SetEntries(codec.Decode(text))
		} else {
			text = applyCode(inst.Text.Value(), p.Code)
		}
		// OnTextChanged expects the host cell to hold the new text,
		// as it would after a real editor keystroke.
		inst.Text.SetValue(text)
		inst.Reconciler.OnTextChanged(text)
		r.publishTriggerWords(context.Background(), inst.ID, text)
	}
}

// targets resolves the payload's addressees. BroadcastID fans out to
// every node, restricted to the payload's graph when one is named.
func (r *Registry) targets(p domain.LoraCodePayload) []*NodeInstance {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p.NodeID != domain.BroadcastID {
		if inst, ok := r.nodes[p.NodeID]; ok {
			return []*NodeInstance{inst}
		}
		r.logger.Warn("lora code update for unknown node")
		return nil
	}

	out := make([]*NodeInstance, 0, len(r.nodes))
	for _, inst := range r.nodes {
		if p.GraphID != "" && inst.GraphID != p.GraphID {
			continue
		}
		out = append(out, inst)
	}
	return out
}

// applyCode joins the payload onto the existing text with exactly one
// space between them.
func applyCode(existing, code string) string {
	if existing == "" {
		return code
	}
	if code == "" {
		return existing
	}
	return strings.TrimRight(existing, " ") + " " + code
}

// publishTriggerWords resolves the trigger words for the text's active
// entries and broadcasts them to the node. Resolution failures only
// warn; the code update already took effect.
func (r *Registry) publishTriggerWords(ctx context.Context, id domain.NodeID, text string) {
	entries := codec.Decode(text)

	seen := make(map[string]struct{})
	var words []string
	for _, entry := range entries {
		if !entry.Active {
			continue
		}
		resolved, err := r.meta.TriggerWords(ctx, entry.Name)
		if err != nil {
			r.logger.Warn("trigger words for " + entry.Name + ": " + err.Error())
			continue
		}
		for _, word := range resolved {
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			words = append(words, word)
		}
	}

	r.bus.Publish(domain.EventTriggerWords, domain.TriggerWordsPayload{NodeID: id, Words: words})
}
