package reconcile_test

import (
	"testing"
	"testing/synctest"
	"time"

	"github.com/lorabridge/lorabridge/internal/core/domain"
	"github.com/lorabridge/lorabridge/internal/core/ports/mocks"
	"github.com/lorabridge/lorabridge/internal/engine/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeText mimics the widget host's text cell: SetValue fires the
// host's change callback re-entrantly, like the real editor does.
type fakeText struct {
	value    string
	writes   int
	onChange func(string)
}

func (c *fakeText) Value() string { return c.value }

func (c *fakeText) SetValue(text string) {
	c.value = text
	c.writes++
	if c.onChange != nil {
		c.onChange(text)
	}
}

// fakeList mimics the widget host's structured list cell.
type fakeList struct {
	entries  domain.EntryList
	sets     int
	onChange func(domain.EntryList)
}

func (c *fakeList) Entries() domain.EntryList { return c.entries }

func (c *fakeList) SetEntries(list domain.EntryList) {
	c.entries = list
	c.sets++
	if c.onChange != nil {
		c.onChange(list)
	}
}

const window = 100 * time.Millisecond

func TestListChangeSchedulesSingleRewrite(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		text := &fakeText{value: "a prompt"}
		list := &fakeList{}
		r := reconcile.New(1, text, list, reconcile.WithWindow(window))

		list.entries = domain.EntryList{{Name: "x", Strength: 0.8, ClipStrength: 0.8, Active: true}}
		r.OnListChanged(list.entries)

		// Nothing written before the window expires.
		time.Sleep(window / 2)
		synctest.Wait()
		assert.Equal(t, 0, text.writes)

		time.Sleep(window)
		synctest.Wait()
		require.Equal(t, 1, text.writes)
		assert.Equal(t, "a prompt <lora:x:0.8>", text.value)
	})
}

func TestRewriteBurstCoalesces(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		text := &fakeText{}
		list := &fakeList{}
		r := reconcile.New(1, text, list, reconcile.WithWindow(window))

		// A slider drag: several list edits inside one window.
		for _, s := range []float64{0.1, 0.2, 0.3, 0.4} {
			list.entries = domain.EntryList{{Name: "x", Strength: s, ClipStrength: s, Active: true}}
			r.OnListChanged(list.entries)
			time.Sleep(window / 4)
		}

		time.Sleep(2 * window)
		synctest.Wait()

		require.Equal(t, 1, text.writes, "trailing-edge debounce writes once")
		assert.Equal(t, "<lora:x:0.4>", text.value)
	})
}

func TestNoFeedbackLoop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		text := &fakeText{}
		list := &fakeList{}
		r := reconcile.New(1, text, list, reconcile.WithWindow(window))

		// Wire the host's change notifications back into the
		// reconciler, exactly as the editor would.
		text.onChange = r.OnTextChanged
		list.onChange = r.OnListChanged

		list.entries = domain.EntryList{{Name: "x", Strength: 1, ClipStrength: 1, Active: true}}
		r.OnListChanged(list.entries)

		time.Sleep(10 * window)
		synctest.Wait()

		assert.Equal(t, 1, text.writes, "one logical change, one text write")
		assert.Equal(t, "<lora:x:1>", text.value)
		assert.Equal(t, reconcile.StateIdle, r.State())
	})
}

func TestTextChangePreservesActiveFlag(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		text := &fakeText{value: "<lora:x:0.5>"}
		list := &fakeList{entries: domain.EntryList{
			{Name: "x", Strength: 0.5, ClipStrength: 0.5, Active: false},
		}}
		r := reconcile.New(1, text, list, reconcile.WithWindow(window))

		// The user edits the strength in the text. The entry's
		// disabled state must survive the merge.
		text.value = "<lora:x:0.9>"
		r.OnTextChanged(text.value)

		require.Equal(t, 1, list.sets)
		require.Len(t, list.entries, 1)
		assert.Equal(t, 0.9, list.entries[0].Strength)
		assert.False(t, list.entries[0].Active)
	})
}

func TestTextChangeRestoresRemovedToken(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		text := &fakeText{}
		list := &fakeList{entries: domain.EntryList{
			{Name: "keep", Strength: 1, ClipStrength: 1, Active: true},
		}}
		r := reconcile.New(1, text, list, reconcile.WithWindow(window))

		// The user deletes the token; the entry stays in the list and
		// the debounced rewrite brings the token back.
		text.value = "just a prompt"
		r.OnTextChanged(text.value)

		time.Sleep(2 * window)
		synctest.Wait()

		assert.Equal(t, "just a prompt <lora:keep:1>", text.value)
	})
}

func TestRewriteSkipsWhenTextUnchanged(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		text := &fakeText{value: "<lora:x:0.8>"}
		list := &fakeList{entries: domain.EntryList{
			{Name: "x", Strength: 0.8, ClipStrength: 0.8, Active: true},
		}}
		r := reconcile.New(1, text, list, reconcile.WithWindow(window))

		r.OnListChanged(list.entries)
		time.Sleep(2 * window)
		synctest.Wait()

		assert.Equal(t, 0, text.writes, "identical encode result must not write")
	})
}

func TestActiveSetUsesChainWhenGraphAttached(t *testing.T) {
	ctrl := gomock.NewController(t)
	graph := mocks.NewMockGraphHost(ctrl)

	snap := domain.Snapshot{
		Nodes: map[domain.NodeID]domain.Node{
			1: {ID: 1, Mode: domain.ModeEnabled, AcceptsStack: true,
				Entries: domain.EntryList{{Name: "upstream", Strength: 1, Active: true}}},
			2: {ID: 2, Mode: domain.ModeEnabled, AcceptsStack: true,
				Entries: domain.EntryList{{Name: "own", Strength: 1, Active: true}}},
		},
		Links: []domain.Link{{From: 1, To: 2}},
	}
	graph.EXPECT().Snapshot().Return(snap)

	var got map[string]struct{}
	text := &fakeText{}
	list := &fakeList{entries: snap.Nodes[2].Entries}
	r := reconcile.New(2, text, list,
		reconcile.WithWindow(window),
		reconcile.WithGraph(graph),
		reconcile.WithActiveSetListener(func(_ domain.NodeID, active map[string]struct{}) {
			got = active
		}),
	)

	r.Refresh()

	require.NotNil(t, got)
	assert.Contains(t, got, "own")
	assert.Contains(t, got, "upstream")
	r.Close()
}

func TestPropagatorInvokedOncePerPass(t *testing.T) {
	var calls int
	text := &fakeText{}
	list := &fakeList{entries: domain.EntryList{{Name: "x", Strength: 1, Active: true}}}
	r := reconcile.New(1, text, list,
		reconcile.WithWindow(window),
		reconcile.WithPropagator(func(domain.NodeID) { calls++ }),
	)

	r.OnListChanged(list.entries)
	assert.Equal(t, 1, calls)
	r.Close()
}

func TestRefreshDoesNotPropagate(t *testing.T) {
	var calls int
	text := &fakeText{}
	list := &fakeList{entries: domain.EntryList{{Name: "x", Strength: 1, Active: true}}}
	r := reconcile.New(1, text, list,
		reconcile.WithWindow(window),
		reconcile.WithPropagator(func(domain.NodeID) { calls++ }),
	)

	r.Refresh()
	assert.Equal(t, 0, calls, "a refresh is already part of the owner's walk")
	r.Close()
}

func TestFlushFiresPendingRewrite(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		text := &fakeText{}
		list := &fakeList{entries: domain.EntryList{{Name: "x", Strength: 1, ClipStrength: 1, Active: true}}}
		r := reconcile.New(1, text, list, reconcile.WithWindow(window))

		r.OnListChanged(list.entries)
		r.Flush()

		assert.Equal(t, "<lora:x:1>", text.value)

		// The cancelled timer must not fire a second write.
		time.Sleep(2 * window)
		synctest.Wait()
		assert.Equal(t, 1, text.writes)
	})
}

func TestCloseCancelsPendingRewrite(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		text := &fakeText{}
		list := &fakeList{entries: domain.EntryList{{Name: "x", Strength: 1, ClipStrength: 1, Active: true}}}
		r := reconcile.New(1, text, list, reconcile.WithWindow(window))

		r.OnListChanged(list.entries)
		r.Close()

		time.Sleep(2 * window)
		synctest.Wait()
		assert.Equal(t, 0, text.writes)
	})
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", reconcile.StateIdle.String())
	assert.Equal(t, "updating", reconcile.StateUpdating.String())
	assert.Equal(t, "syncing-input", reconcile.StateSyncingInput.String())
}
