package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemory()

	_, ok := s.Get("missing")
	assert.False(t, ok)

	require.NoError(t, s.Set("paper_a", "one"))
	require.NoError(t, s.Set("paper_b", "two"))
	require.NoError(t, s.Set("paper_a", "updated"))

	v, ok := s.Get("paper_a")
	require.True(t, ok)
	assert.Equal(t, "updated", v)
	assert.ElementsMatch(t, []string{"paper_a", "paper_b"}, s.Keys())

	require.NoError(t, s.Delete("paper_a"))
	_, ok = s.Get("paper_a")
	assert.False(t, ok)
}

func TestDirStore(t *testing.T) {
	s, err := OpenDir(t.TempDir() + "/papers")
	require.NoError(t, err)

	_, ok := s.Get("missing")
	assert.False(t, ok)

	require.NoError(t, s.Set("paper_a", `{"id":"a"}`))
	v, ok := s.Get("paper_a")
	require.True(t, ok)
	assert.Equal(t, `{"id":"a"}`, v)

	require.NoError(t, s.Set("paper_b", "x"))
	assert.ElementsMatch(t, []string{"paper_a", "paper_b"}, s.Keys())

	require.NoError(t, s.Delete("paper_a"))
	assert.Equal(t, []string{"paper_b"}, s.Keys())

	// Deleting an absent key is not an error.
	require.NoError(t, s.Delete("paper_a"))
}

func TestDirStoreRejectsUnsafeKeys(t *testing.T) {
	s, err := OpenDir(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "..", "a/b", `a\b`} {
		assert.Error(t, s.Set(key, "x"), key)
		_, ok := s.Get(key)
		assert.False(t, ok, key)
	}
}

func TestDirStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenDir(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("paper_a", "persisted"))

	s2, err := OpenDir(dir)
	require.NoError(t, err)
	v, ok := s2.Get("paper_a")
	require.True(t, ok)
	assert.Equal(t, "persisted", v)
}
