package app

import (
	"io"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/lorabridge/lorabridge/internal/adapters/events"
	"github.com/lorabridge/lorabridge/internal/core/domain"
	"github.com/lorabridge/lorabridge/internal/core/ports/mocks"
	"github.com/lorabridge/lorabridge/internal/engine/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type nopLogger struct{}

func (nopLogger) Info(string)         {}
func (nopLogger) Warn(string)         {}
func (nopLogger) Error(error)         {}
func (nopLogger) SetOutput(io.Writer) {}
func (nopLogger) SetJSON(bool)        {}

type fakeText struct {
	mu    sync.Mutex
	value string
}

func (f *fakeText) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

func (f *fakeText) SetValue(text string) {
	f.mu.Lock()
	f.value = text
	f.mu.Unlock()
}

type fakeList struct {
	mu      sync.Mutex
	entries domain.EntryList
}

func (f *fakeList) Entries() domain.EntryList {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries.Clone()
}

func (f *fakeList) SetEntries(list domain.EntryList) {
	f.mu.Lock()
	f.entries = list.Clone()
	f.mu.Unlock()
}

func newTestNode(id domain.NodeID, text string) *NodeInstance {
	cell := &fakeText{value: text}
	list := &fakeList{}
	return &NodeInstance{
		ID:         id,
		Text:       cell,
		List:       list,
		Reconciler: reconcile.New(id, cell, list),
	}
}

func newTestRegistry(t *testing.T) (*Registry, *events.Bus, *mocks.MockMetadataClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	meta := mocks.NewMockMetadataClient(ctrl)
	bus := events.NewBus()
	reg := NewRegistry(bus, meta, nopLogger{})
	t.Cleanup(reg.Close)
	return reg, bus, meta
}

func TestAppendJoinsWithSingleSpace(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		reg, bus, meta := newTestRegistry(t)
		meta.EXPECT().TriggerWords(gomock.Any(), "bar").Return(nil, nil).AnyTimes()

		node := newTestNode(4, "foo")
		reg.Register(node)

		bus.Publish(domain.EventLoraCode, domain.LoraCodePayload{
			NodeID: 4,
			Code:   "<lora:bar:0.8>",
			Mode:   domain.CodeAppend,
		})

		time.Sleep(reconcile.DefaultWindow + time.Millisecond)
		synctest.Wait()

		assert.Equal(t, "foo <lora:bar:0.8>", node.Text.Value())
		require.Len(t, node.List.Entries(), 1)
		assert.Equal(t, "bar", node.List.Entries()[0].Name)
	})
}

func TestReplaceSubstitutesText(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		reg, bus, meta := newTestRegistry(t)
		meta.EXPECT().TriggerWords(gomock.Any(), "bar").Return(nil, nil).AnyTimes()

		node := newTestNode(4, "old prose <lora:x:1>")
		node.List.SetEntries(domain.EntryList{{Name: "x", Strength: 1, ClipStrength: 1, Active: true}})
		reg.Register(node)

		bus.Publish(domain.EventLoraCode, domain.LoraCodePayload{
			NodeID: 4,
			Code:   "<lora:bar:0.8>",
			Mode:   domain.CodeReplace,
		})

		time.Sleep(reconcile.DefaultWindow + time.Millisecond)
		synctest.Wait()

		assert.Equal(t, "<lora:bar:0.8>", node.Text.Value())
		entries := node.List.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, "bar", entries[0].Name)
	})
}

func TestBroadcastReachesAllNodes(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		reg, bus, meta := newTestRegistry(t)
		meta.EXPECT().TriggerWords(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

		a := newTestNode(1, "")
		b := newTestNode(2, "base")
		reg.Register(a)
		reg.Register(b)

		bus.Publish(domain.EventLoraCode, domain.LoraCodePayload{
			NodeID: domain.BroadcastID,
			Code:   "<lora:glow:0.5>",
			Mode:   domain.CodeAppend,
		})

		time.Sleep(reconcile.DefaultWindow + time.Millisecond)
		synctest.Wait()

		assert.Equal(t, "<lora:glow:0.5>", a.Text.Value())
		assert.Equal(t, "base <lora:glow:0.5>", b.Text.Value())
	})
}

func TestBroadcastFiltersByGraph(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		reg, bus, meta := newTestRegistry(t)
		meta.EXPECT().TriggerWords(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

		a := newTestNode(1, "")
		a.GraphID = "main"
		b := newTestNode(2, "")
		b.GraphID = "side"
		reg.Register(a)
		reg.Register(b)

		bus.Publish(domain.EventLoraCode, domain.LoraCodePayload{
			NodeID:  domain.BroadcastID,
			GraphID: "main",
			Code:    "<lora:glow:0.5>",
			Mode:    domain.CodeAppend,
		})

		time.Sleep(reconcile.DefaultWindow + time.Millisecond)
		synctest.Wait()

		assert.Equal(t, "<lora:glow:0.5>", a.Text.Value())
		assert.Equal(t, "", b.Text.Value())
	})
}

func TestUnknownNodeIsIgnored(t *testing.T) {
	_, bus, _ := newTestRegistry(t)

	assert.NotPanics(t, func() {
		bus.Publish(domain.EventLoraCode, domain.LoraCodePayload{NodeID: 99, Code: "<lora:x:1>"})
	})
}

func TestCodeUpdatePublishesTriggerWords(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		reg, bus, meta := newTestRegistry(t)
		meta.EXPECT().TriggerWords(gomock.Any(), "bar").Return([]string{"glowing"}, nil)

		var published []domain.TriggerWordsPayload
		bus.Subscribe(domain.EventTriggerWords, func(payload any) {
			published = append(published, payload.(domain.TriggerWordsPayload))
		})

		node := newTestNode(4, "")
		reg.Register(node)

		bus.Publish(domain.EventLoraCode, domain.LoraCodePayload{
			NodeID: 4,
			Code:   "<lora:bar:0.8>",
			Mode:   domain.CodeAppend,
		})
		synctest.Wait()

		require.Len(t, published, 1)
		assert.Equal(t, domain.NodeID(4), published[0].NodeID)
		assert.Equal(t, []string{"glowing"}, published[0].Words)
	})
}

func TestRegisterReplacesPreviousInstance(t *testing.T) {
	reg, _, _ := newTestRegistry(t)

	first := newTestNode(4, "")
	second := newTestNode(4, "")
	reg.Register(first)
	reg.Register(second)
	assert.Equal(t, 1, reg.Len())

	reg.Deregister(4)
	assert.Equal(t, 0, reg.Len())
}

type fakeGraph struct {
	snap domain.Snapshot
}

func (f fakeGraph) Snapshot() domain.Snapshot { return f.snap }

func TestPropagateRefreshesDownstreamOnce(t *testing.T) {
	reg, _, _ := newTestRegistry(t)

	// Diamond: 1 feeds 2 and 3, both feed 4.
	graph := fakeGraph{snap: domain.Snapshot{
		Nodes: map[domain.NodeID]domain.Node{
			1: {ID: 1, Mode: domain.ModeEnabled, AcceptsStack: true},
			2: {ID: 2, Mode: domain.ModeEnabled, AcceptsStack: true},
			3: {ID: 3, Mode: domain.ModeEnabled, AcceptsStack: true},
			4: {ID: 4, Mode: domain.ModeEnabled, AcceptsStack: true},
		},
		Links: []domain.Link{
			{From: 1, To: 2}, {From: 1, To: 3},
			{From: 2, To: 4}, {From: 3, To: 4},
		},
	}}

	refreshes := make(map[domain.NodeID]int)
	for _, id := range []domain.NodeID{1, 2, 3, 4} {
		cell := &fakeText{}
		list := &fakeList{}
		reg.Register(&NodeInstance{
			ID:    id,
			Text:  cell,
			List:  list,
			Graph: graph,
			Reconciler: reconcile.New(id, cell, list,
				reconcile.WithGraph(graph),
				reconcile.WithActiveSetListener(func(n domain.NodeID, _ map[string]struct{}) {
					refreshes[n]++
				}),
				reconcile.WithPropagator(reg.Propagate),
			),
		})
	}

	reg.Propagate(1)

	assert.Equal(t, 0, refreshes[1], "the origin already ran its own pass")
	assert.Equal(t, 1, refreshes[2])
	assert.Equal(t, 1, refreshes[3])
	assert.Equal(t, 1, refreshes[4], "diamond target must refresh once, not twice")
}

func TestPropagateUnknownOriginIsNoop(t *testing.T) {
	reg, _, _ := newTestRegistry(t)

	assert.NotPanics(t, func() { reg.Propagate(99) })
}

func TestApplyCode(t *testing.T) {
	assert.Equal(t, "foo <lora:bar:0.8>", applyCode("foo", "<lora:bar:0.8>"))
	assert.Equal(t, "<lora:bar:0.8>", applyCode("", "<lora:bar:0.8>"))
	assert.Equal(t, "foo", applyCode("foo", ""))
	assert.Equal(t, "foo <lora:bar:0.8>", applyCode("foo  ", "<lora:bar:0.8>"))
}
