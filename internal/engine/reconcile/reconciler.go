// Package reconcile keeps a node's free-text lora spec and its
// structured entry list mutually consistent, and propagates changes
// down the node chain exactly once per logical change.
package reconcile

import (
	"sync"
	"time"

	"github.com/lorabridge/lorabridge/internal/core/domain"
	"github.com/lorabridge/lorabridge/internal/core/ports"
	"github.com/lorabridge/lorabridge/internal/engine/chain"
	"github.com/lorabridge/lorabridge/internal/engine/codec"
)

// State is the reconciler's explicit state. A single enum value makes
// the illegal "updating while syncing input" combination
// unrepresentable; the host's cooperative event model means these are
// reentrancy guards, not concurrent states.
type State uint8

const (
	// StateIdle means no pass is in progress.
	StateIdle State = iota
	// StateUpdating means a normalization/propagation pass is running;
	// edits arriving now are dropped, not queued.
	StateUpdating
	// StateSyncingInput means a debounced text rewrite is writing back;
	// the write's own change notification is absorbed.
	StateSyncingInput
)

// String implements fmt.Stringer for log output.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateUpdating:
		return "updating"
	case StateSyncingInput:
		return "syncing-input"
	default:
		return "unknown"
	}
}

// DefaultWindow is the default quiescence delay for the debounced text
// rewrite. Bursts within the window (a strength slider drag, say)
// collapse into a single write.
const DefaultWindow = 500 * time.Millisecond

// ActiveSetListener is notified with the recomputed active-name set
// after each pass. Collaborators resolve trigger words from it.
type ActiveSetListener func(node domain.NodeID, active map[string]struct{})

// Propagator is invoked after a pass so the owner can refresh
// downstream nodes. The reconciler itself never touches other nodes.
type Propagator func(node domain.NodeID)

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithWindow overrides the debounce window.
func WithWindow(d time.Duration) Option {
	return func(r *Reconciler) { r.window = d }
}

// WithGraph attaches the graph host; without one the node is treated
// as standalone and the active set is its own list.
func WithGraph(g ports.GraphHost) Option {
	return func(r *Reconciler) { r.graph = g }
}

// WithActiveSetListener attaches the active-set collaborator.
func WithActiveSetListener(fn ActiveSetListener) Option {
	return func(r *Reconciler) { r.onActive = fn }
}

// WithPropagator attaches the downstream propagation hook.
func WithPropagator(fn Propagator) Option {
	return func(r *Reconciler) { r.propagate = fn }
}

// Reconciler owns the sync state machine for one node instance.
type Reconciler struct {
	node  domain.NodeID
	text  ports.TextCell
	list  ports.ListCell
	graph ports.GraphHost

	onActive  ActiveSetListener
	propagate Propagator
	window    time.Duration

	mu    sync.Mutex
	state State
	timer *time.Timer
}

// New creates a reconciler for the given node over its two cells.
func New(node domain.NodeID, text ports.TextCell, list ports.ListCell, opts ...Option) *Reconciler {
	r := &Reconciler{
		node:   node,
		text:   text,
		list:   list,
		window: DefaultWindow,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the current machine state.
func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// OnListChanged handles a structured-list edit from the widget host.
// The list cell already holds newList; the reconciler recomputes the
// active set, notifies collaborators and schedules the debounced text
// rewrite. If a pass is already in flight the edit is dropped: the
// most recent edit already in flight wins, and the rewrite re-derives
// the text from the final list state anyway.
func (r *Reconciler) OnListChanged(newList domain.EntryList) {
	if !r.begin() {
		return
	}
	r.recomputeAndNotify(newList)
	r.end()

	r.ScheduleRewrite()
}

// OnTextChanged handles a free-text edit. The text is decoded and
// merged into the current list so a textual edit never silently
// disables an entry; the merged list is written back to the widget
// cell, the active set recomputed, and a rewrite scheduled only when
// the text no longer matches the merged list.
func (r *Reconciler) OnTextChanged(newText string) {
	if !r.begin() {
		return
	}

	decoded := codec.Decode(newText)
	current := r.list.Entries()
	merged := codec.Merge(decoded, current)
	if !merged.Equal(current) {
		// May re-enter OnListChanged through the host; the state
		// guard absorbs it.
		r.list.SetEntries(merged)
	}
	r.recomputeAndNotify(merged)
	r.end()

	if codec.Encode(newText, merged) != newText {
		r.ScheduleRewrite()
	}
}

// Refresh recomputes the active set and notifies the active-set
// listener without consuming an edit. The owner's propagation walk
// calls it on downstream nodes when an upstream list changed; it does
// not propagate further, since the owner's walk already covers
// transitive downstream nodes.
func (r *Reconciler) Refresh() {
	if !r.begin() {
		return
	}
	active := r.activeSet(r.list.Entries())
	if r.onActive != nil {
		r.onActive(r.node, active)
	}
	r.end()
}

// ScheduleRewrite arms the trailing-edge rewrite timer. A newer
// schedule replaces the pending one, so at most one rewrite is pending
// per node at a time.
func (r *Reconciler) ScheduleRewrite() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.window, r.fireRewrite)
}

// Flush fires a pending rewrite synchronously. Used at shutdown so a
// queued write is not lost.
func (r *Reconciler) Flush() {
	r.mu.Lock()
	if r.timer == nil {
		r.mu.Unlock()
		return
	}
	if !r.timer.Stop() {
		// Timer already fired; let it complete rather than run twice.
		r.mu.Unlock()
		return
	}
	r.timer = nil
	r.mu.Unlock()

	r.fireRewrite()
}

// Close cancels any pending rewrite.
func (r *Reconciler) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// begin transitions Idle -> Updating, reporting false when the edit
// must be dropped.
func (r *Reconciler) begin() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateIdle {
		return false
	}
	r.state = StateUpdating
	return true
}

func (r *Reconciler) end() {
	r.mu.Lock()
	r.state = StateIdle
	r.mu.Unlock()
}

func (r *Reconciler) recomputeAndNotify(list domain.EntryList) {
	active := r.activeSet(list)
	if r.onActive != nil {
		r.onActive(r.node, active)
	}
	if r.propagate != nil {
		r.propagate(r.node)
	}
}

func (r *Reconciler) activeSet(list domain.EntryList) map[string]struct{} {
	if r.graph != nil {
		return chain.Collect(r.graph.Snapshot(), r.node)
	}
	active := make(map[string]struct{}, len(list))
	for _, name := range list.ActiveNames() {
		active[name] = struct{}{}
	}
	return active
}

// fireRewrite runs when the debounce window expires (or on Flush). It
// encodes the list into the previous text and writes back only when
// the result differs, avoiding spurious change notifications. The
// write happens under StateSyncingInput so the host's re-entrant
// change callback is dropped.
func (r *Reconciler) fireRewrite() {
	r.mu.Lock()
	r.timer = nil
	if r.state != StateIdle {
		// A pass or an earlier flush holds the machine; coalesce.
		r.mu.Unlock()
		return
	}
	r.state = StateSyncingInput
	r.mu.Unlock()

	prev := r.text.Value()
	next := codec.Encode(prev, r.list.Entries())
	if next != prev {
		r.text.SetValue(next)
	}

	r.mu.Lock()
	r.state = StateIdle
	r.mu.Unlock()
}
