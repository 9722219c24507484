package domain

// NodeID identifies a node in the editor graph. BroadcastID addresses
// every registered node at once.
type NodeID int64

// BroadcastID is the sentinel node id used by inbound events that target
// all nodes of a graph.
const BroadcastID NodeID = -1

// NodeMode mirrors the editor's execution mode for a node.
type NodeMode uint8

const (
	// ModeEnabled means the node executes normally.
	ModeEnabled NodeMode = iota
	// ModeMuted means the node is muted and contributes nothing.
	ModeMuted
	// ModeBypassed means the node is bypassed and contributes nothing.
	ModeBypassed
)

// Contributes reports whether a node in this mode contributes its
// entries to the active set.
func (m NodeMode) Contributes() bool {
	return m == ModeEnabled
}

// Node is one node of an immutable graph snapshot.
type Node struct {
	ID   NodeID
	Kind string
	Mode NodeMode
	// AcceptsStack marks node kinds that expose a stack input slot.
	// Chain traversal only crosses edges into such nodes.
	AcceptsStack bool
	Entries      EntryList
}

// Link is a directed stack connection between two nodes.
type Link struct {
	From NodeID
	To   NodeID
}

// Snapshot is a point-in-time capture of the node graph. Traversals
// operate on snapshots only, never on live host objects, so they stay
// pure and testable. The graph is expected to be a DAG; consumers must
// still guard against cycles since the editor can produce transiently
// invalid states.
type Snapshot struct {
	Nodes map[NodeID]Node
	Links []Link
}

// Upstream returns the ids of nodes with a link into the given node.
func (s Snapshot) Upstream(id NodeID) []NodeID {
	var from []NodeID
	for _, l := range s.Links {
		if l.To == id {
			from = append(from, l.From)
		}
	}
	return from
}

// Downstream returns the ids of nodes the given node links into.
func (s Snapshot) Downstream(id NodeID) []NodeID {
	var to []NodeID
	for _, l := range s.Links {
		if l.From == id {
			to = append(to, l.To)
		}
	}
	return to
}
