package ports

import "github.com/lorabridge/lorabridge/internal/core/domain"

// TextCell is the widget host's mutable text cell for one node. The
// reconciler treats it as opaque storage with change notification
// wired back through Reconciler.OnTextChanged by the host.
//
//go:generate mockgen -source=host.go -destination=mocks/mock_host.go -package=mocks
type TextCell interface {
	// Value returns the current text.
	Value() string

	// SetValue writes new text. The host may re-enter the reconciler
	// from inside this call; the reconciler's state guard absorbs it.
	SetValue(text string)
}

// ListCell is the widget host's structured entry list for one node.
type ListCell interface {
	// Entries returns the current list.
	Entries() domain.EntryList

	// SetEntries replaces the list.
	SetEntries(list domain.EntryList)
}

// GraphHost provides read access to the node graph. Snapshot captures
// the graph at call time; traversals never touch live host objects.
type GraphHost interface {
	Snapshot() domain.Snapshot
}
