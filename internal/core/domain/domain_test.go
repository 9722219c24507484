package domain_test

import (
	"testing"

	"github.com/lorabridge/lorabridge/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntrySplitStrength(t *testing.T) {
	tests := []struct {
		name  string
		entry domain.Entry
		want  bool
	}{
		{
			name:  "equal strengths",
			entry: domain.Entry{Name: "a", Strength: 0.8, ClipStrength: 0.8},
			want:  false,
		},
		{
			name:  "within epsilon",
			entry: domain.Entry{Name: "a", Strength: 0.8, ClipStrength: 0.8005},
			want:  false,
		},
		{
			name:  "split",
			entry: domain.Entry{Name: "a", Strength: 1.0, ClipStrength: 0.5},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.SplitStrength())
		})
	}
}

func TestEntryListIndex(t *testing.T) {
	list := domain.EntryList{
		{Name: "first", Strength: 1.0},
		{Name: "second", Strength: 0.5},
	}

	assert.Equal(t, 0, list.Index("first"))
	assert.Equal(t, 1, list.Index("second"))
	assert.Equal(t, -1, list.Index("missing"))
}

func TestEntryListClone(t *testing.T) {
	list := domain.EntryList{{Name: "a", Strength: 1.0, Active: true}}

	clone := list.Clone()
	require.True(t, list.Equal(clone))

	clone[0].Strength = 0.2
	assert.Equal(t, 1.0, list[0].Strength, "clone must not alias the original")

	assert.Nil(t, domain.EntryList(nil).Clone())
}

func TestEntryListActiveNames(t *testing.T) {
	list := domain.EntryList{
		{Name: "on", Active: true},
		{Name: "off", Active: false},
		{Name: "also-on", Active: true},
	}

	assert.Equal(t, []string{"on", "also-on"}, list.ActiveNames())
}

func TestNodeModeContributes(t *testing.T) {
	assert.True(t, domain.ModeEnabled.Contributes())
	assert.False(t, domain.ModeMuted.Contributes())
	assert.False(t, domain.ModeBypassed.Contributes())
}

func TestSnapshotNeighbors(t *testing.T) {
	snap := domain.Snapshot{
		Nodes: map[domain.NodeID]domain.Node{
			1: {ID: 1}, 2: {ID: 2}, 3: {ID: 3},
		},
		Links: []domain.Link{
			{From: 1, To: 2},
			{From: 2, To: 3},
			{From: 1, To: 3},
		},
	}

	assert.ElementsMatch(t, []domain.NodeID{1, 2}, snap.Upstream(3))
	assert.ElementsMatch(t, []domain.NodeID{2, 3}, snap.Downstream(1))
	assert.Empty(t, snap.Upstream(1))
	assert.Empty(t, snap.Downstream(3))
}
