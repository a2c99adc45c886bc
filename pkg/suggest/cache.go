package suggest

import (
	"math"
	"sync"

	"github.com/bastiangx/wordrank/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// keyMark is prepended to every key so the empty prefix is a regular key
// and a prefix of every other key.
const keyMark = "\x00"

type cacheEntry struct {
	entries []trie.Entry
	limit   int
	// exhaustive means entries holds every completion of the prefix.
	exhaustive bool
}

// HotCache memoizes ranked entries per lowercase prefix. Keys live in a
// patricia trie so inserting a word can drop every cached prefix of it in
// one walk.
type HotCache struct {
	prefixes    *patricia.Trie
	accessTime  map[string]int64
	accessCount int64
	maxPrefixes int
	hits        int
	misses      int
	evictions   int
	mu          sync.Mutex
}

func NewHotCache(maxPrefixes int) *HotCache {
	return &HotCache{
		prefixes:    patricia.NewTrie(),
		accessTime:  make(map[string]int64, maxPrefixes),
		maxPrefixes: maxPrefixes,
	}
}

// Get returns cached entries for prefix if they can answer a request for
// limit entries (0 meaning all).
func (hc *HotCache) Get(prefix string, limit int) ([]trie.Entry, bool) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	key := keyMark + prefix
	item := hc.prefixes.Get(patricia.Prefix(key))
	if item == nil {
		hc.misses++
		return nil, false
	}

	entry := item.(*cacheEntry)
	if !entry.exhaustive && (limit <= 0 || limit > entry.limit) {
		hc.misses++
		return nil, false
	}

	hc.hits++
	hc.accessTime[key] = hc.nextAccessTime()

	entries := entry.entries
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, true
}

// Put stores entries computed for prefix with the given limit.
func (hc *HotCache) Put(prefix string, limit int, entries []trie.Entry) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	key := keyMark + prefix
	entry := &cacheEntry{
		entries:    entries,
		limit:      limit,
		exhaustive: limit <= 0 || len(entries) < limit,
	}

	if _, exists := hc.accessTime[key]; !exists && len(hc.accessTime) >= hc.maxPrefixes {
		hc.evictLRU()
	}
	hc.prefixes.Set(patricia.Prefix(key), entry)
	hc.accessTime[key] = hc.nextAccessTime()
}

// Invalidate drops every cached prefix of word and returns how many were
// dropped.
func (hc *HotCache) Invalidate(word string) int {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	var stale []patricia.Prefix
	err := hc.prefixes.VisitPrefixes(patricia.Prefix(keyMark+word), func(p patricia.Prefix, _ patricia.Item) error {
		stale = append(stale, append(patricia.Prefix(nil), p...))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting cached prefixes: %v", err)
	}

	for _, p := range stale {
		hc.prefixes.Delete(p)
		delete(hc.accessTime, string(p))
	}
	if len(stale) > 0 {
		log.Debugf("Invalidated %d cached prefixes of '%s'", len(stale), word)
	}
	return len(stale)
}

func (hc *HotCache) Len() int {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	return len(hc.accessTime)
}

func (hc *HotCache) Stats() map[string]int {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	return map[string]int{
		"hotCachePrefixes":  len(hc.accessTime),
		"maxHotPrefixes":    hc.maxPrefixes,
		"hotCacheHits":      hc.hits,
		"hotCacheMisses":    hc.misses,
		"hotCacheEvictions": hc.evictions,
	}
}

func (hc *HotCache) nextAccessTime() int64 {
	hc.accessCount++
	return hc.accessCount
}

func (hc *HotCache) evictLRU() {
	var oldestKey string
	var oldestTime int64 = math.MaxInt64

	for key, accessTime := range hc.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldestKey = key
		}
	}

	if oldestTime != math.MaxInt64 {
		hc.prefixes.Delete(patricia.Prefix(oldestKey))
		delete(hc.accessTime, oldestKey)
		hc.evictions++
		log.Debugf("Evicted prefix '%s' from hot cache", oldestKey[len(keyMark):])
	}
}
