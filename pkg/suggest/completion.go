package suggest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bastiangx/wordrank/internal/utils"
	"github.com/bastiangx/wordrank/pkg/dictionary"
	"github.com/bastiangx/wordrank/pkg/trie"
	"github.com/charmbracelet/log"
)

type Suggestion struct {
	Word  string
	Score int64
}

// Completer answers completion requests from a ranked trie. Dictionary words
// are expected in lower case; the prefix is lowered for lookup and its
// capitalization is applied back onto every suggestion.
type Completer struct {
	trie     *trie.Trie
	hotCache *HotCache
	minScore int64
	dirPath  string
	maxWords int
	// mu orders inserts against cached reads: a read that started before an
	// insert cannot store its result after the insert invalidated it.
	mu sync.RWMutex
}

// NewCompleter creates an empty completer without cache.
func NewCompleter() *Completer {
	return &Completer{trie: trie.New()}
}

// NewDictCompleter creates a completer that loads dirPath on Initialize.
// cacheSize <= 0 disables the hot cache; maxWords 0 loads every word.
func NewDictCompleter(dirPath string, maxWords int, minScore int64, cacheSize int) *Completer {
	c := &Completer{
		trie:     trie.New(),
		minScore: minScore,
		dirPath:  dirPath,
		maxWords: maxWords,
	}
	if cacheSize > 0 {
		c.hotCache = NewHotCache(cacheSize)
	}
	return c
}

// Trie exposes the underlying index for exact lookups.
func (c *Completer) Trie() *trie.Trie {
	return c.trie
}

func (c *Completer) AddWord(word string, score int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.trie.InsertWithScore(word, score)
	if c.hotCache != nil {
		c.hotCache.Invalidate(word)
	}
}

// InsertWithScore lets the completer be fed by a dictionary.Loader.
func (c *Completer) InsertWithScore(word string, score int64) {
	c.AddWord(word, score)
}

func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	lowerPrefix := strings.ToLower(prefix)
	capitals := utils.CapitalPositions(prefix)

	entries, ok := c.ranked(lowerPrefix, limit)
	if !ok {
		log.Debugf("Prefix '%s' not in dictionary", lowerPrefix)
		return []Suggestion{}
	}

	filter := utils.NewSuggestionFilter(lowerPrefix)
	suggestions := make([]Suggestion, 0, len(entries))
	for _, e := range entries {
		// entries are sorted, nothing after this one passes either
		if e.Score < c.minScore {
			break
		}
		word := utils.ApplyCapitalization(e.Word, capitals)
		if !filter.ShouldInclude(word) {
			continue
		}
		suggestions = append(suggestions, Suggestion{Word: word, Score: e.Score})
	}
	return suggestions
}

func (c *Completer) ranked(lowerPrefix string, limit int) ([]trie.Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.hotCache != nil {
		if entries, ok := c.hotCache.Get(lowerPrefix, limit); ok {
			return entries, true
		}
	}

	entries, ok := c.trie.RankedEntries(lowerPrefix, limit)
	if !ok {
		return nil, false
	}
	if c.hotCache != nil {
		c.hotCache.Put(lowerPrefix, limit, entries)
	}
	return entries, true
}

func (c *Completer) Initialize() error {
	if c.dirPath == "" {
		log.Debug("No dictionary dir configured, starting empty")
		return nil
	}

	stats, err := dictionary.NewLoader(c, c.maxWords).LoadDir(c.dirPath)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}
	log.Debugf("Dictionary loaded: %d words from %d files (max score %d)", stats.Words, stats.Files, stats.MaxScore)
	if len(stats.Skipped) > 0 {
		log.Warnf("Skipped %d unreadable dictionary files", len(stats.Skipped))
	}
	return nil
}

func (c *Completer) Stats() map[string]int {
	stats := map[string]int{
		"totalWords": c.trie.Len(),
	}
	if maxScore, ok := c.trie.MaxScore(); ok {
		stats["maxScore"] = int(maxScore)
	}

	if c.hotCache != nil {
		for k, v := range c.hotCache.Stats() {
			stats[k] = v
		}
		stats["hotCache"] = 1
	} else {
		stats["hotCache"] = 0
	}
	return stats
}
