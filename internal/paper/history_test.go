package paper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func elsOf(ids ...string) []Element {
	out := make([]Element, len(ids))
	for i, id := range ids {
		out[i] = &Stroke{ID: id}
	}
	return out
}

func TestHistoryPushAndIndex(t *testing.T) {
	h := newHistory(3, elsOf())
	require.Equal(t, 0, h.index)
	require.False(t, h.canUndo())

	h.push(elsOf("a"))
	h.push(elsOf("a", "b"))
	assert.Equal(t, 2, h.index)
	assert.Equal(t, 3, len(h.snapshots))

	// Full: eviction drops the oldest and holds the index.
	h.push(elsOf("a", "b", "c"))
	assert.Equal(t, 2, h.index)
	assert.Equal(t, 3, len(h.snapshots))
	assert.Equal(t, elsOf("a", "b", "c"), h.snapshots[h.index])
}

func TestHistoryUndoRedo(t *testing.T) {
	h := newHistory(10, elsOf())
	h.push(elsOf("a"))

	els, ok := h.undo()
	require.True(t, ok)
	assert.Empty(t, els)
	_, ok = h.undo()
	assert.False(t, ok)

	els, ok = h.redo()
	require.True(t, ok)
	assert.Equal(t, elsOf("a"), els)
	_, ok = h.redo()
	assert.False(t, ok)
}

func TestHistoryPushTruncatesFuture(t *testing.T) {
	h := newHistory(10, elsOf())
	h.push(elsOf("a"))
	h.push(elsOf("a", "b"))
	_, ok := h.undo()
	require.True(t, ok)

	h.push(elsOf("a", "x"))
	assert.False(t, h.canRedo())
	assert.Equal(t, elsOf("a", "x"), h.snapshots[h.index])
}

func TestHistorySnapshotsAreDeepCopies(t *testing.T) {
	live := elsOf("a")
	h := newHistory(10, live)
	live[0].(*Stroke).ID = "mutated"
	assert.Equal(t, "a", h.snapshots[0][0].(*Stroke).ID)
}
