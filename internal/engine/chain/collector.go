// Package chain computes the set of active entry names visible at a
// node by walking its upstream stack connections.
package chain

import "github.com/lorabridge/lorabridge/internal/core/domain"

// Collect traverses upstream links from start, depth-first, over an
// immutable graph snapshot and returns the union of active entry names.
// Only edges into nodes that accept a stack input are followed. A
// muted or bypassed node contributes nothing but is still traversed,
// since its upstream chain remains connected. Each node is visited at
// most once, so the walk terminates even on a graph the editor has
// temporarily wired into a cycle. Links to nodes missing from the
// snapshot contribute nothing.
func Collect(snap domain.Snapshot, start domain.NodeID) map[string]struct{} {
	active := make(map[string]struct{})
	visited := make(map[domain.NodeID]bool)
	visit(snap, start, active, visited)
	return active
}

func visit(snap domain.Snapshot, id domain.NodeID, active map[string]struct{}, visited map[domain.NodeID]bool) {
	if visited[id] {
		return
	}
	visited[id] = true

	node, ok := snap.Nodes[id]
	if !ok {
		return
	}

	if node.Mode.Contributes() {
		for _, name := range node.Entries.ActiveNames() {
			active[name] = struct{}{}
		}
	}

	if !node.AcceptsStack {
		return
	}
	for _, from := range snap.Upstream(id) {
		visit(snap, from, active, visited)
	}
}
