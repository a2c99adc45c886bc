package suggest

import (
	"testing"

	"github.com/bastiangx/wordrank/pkg/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHotCacheLimits(t *testing.T) {
	hc := NewHotCache(8)
	entries := []trie.Entry{{Word: "ab", Score: 3}, {Word: "ac", Score: 2}}

	hc.Put("a", 2, entries)

	got, ok := hc.Get("a", 1)
	require.True(t, ok)
	assert.Equal(t, entries[:1], got)

	_, ok = hc.Get("a", 5)
	assert.False(t, ok, "bounded entry cannot answer a larger limit")
	_, ok = hc.Get("a", 0)
	assert.False(t, ok)

	hc.Put("b", 5, entries)
	got, ok = hc.Get("b", 50)
	require.True(t, ok, "short result is exhaustive")
	assert.Equal(t, entries, got)
}

func TestHotCacheEmptyPrefix(t *testing.T) {
	hc := NewHotCache(8)
	hc.Put("", 0, []trie.Entry{{Word: "x", Score: 1}})
	hc.Put("xy", 0, nil)

	assert.Equal(t, 2, hc.Invalidate("xyz"))
	assert.Equal(t, 0, hc.Len())
}

func TestHotCacheInvalidate(t *testing.T) {
	hc := NewHotCache(8)
	for _, p := range []string{"f", "fo", "for", "fa", "b"} {
		hc.Put(p, 0, nil)
	}

	assert.Equal(t, 3, hc.Invalidate("fort"))
	for _, p := range []string{"f", "fo", "for"} {
		_, ok := hc.Get(p, 0)
		assert.False(t, ok, p)
	}
	for _, p := range []string{"fa", "b"} {
		_, ok := hc.Get(p, 0)
		assert.True(t, ok, p)
	}
}

func TestHotCacheEvictsLeastRecentlyUsed(t *testing.T) {
	hc := NewHotCache(2)
	hc.Put("a", 0, nil)
	hc.Put("b", 0, nil)
	hc.Get("a", 0)
	hc.Put("c", 0, nil)

	_, ok := hc.Get("b", 0)
	assert.False(t, ok)
	_, ok = hc.Get("a", 0)
	assert.True(t, ok)
	assert.Equal(t, 2, hc.Len())
	assert.Equal(t, 1, hc.Stats()["hotCacheEvictions"])
}
