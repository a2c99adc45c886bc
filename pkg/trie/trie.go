/*
Package trie implements a ranked prefix index over scored words.

Every node carries the maximum score of all words inserted through it. That
aggregate is kept up to date on insert, so a ranked query can expand the most
promising branch first and stop as soon as no remaining branch can beat the
current top k.

	t := trie.New()
	t.InsertWithScore("foreign", 10)
	t.InsertWithScore("for", 8)
	t.Insert("foo")

	words, ok := t.KRankedResults("fo", 2) // ["foreign" "for"], true

Words with equal scores are returned in ascending lexicographic order.
A prefix that is not in the trie yields (nil, false); a prefix without any
completion yields an empty, non-nil slice and true.
*/
package trie

import (
	"container/heap"
	"sync"

	"github.com/charmbracelet/log"
)

// Entry is a ranked word and its score.
type Entry struct {
	Word  string
	Score int64
}

// Trie is safe for concurrent use. A single lock guards the whole tree:
// inserts are exclusive, queries share it for their full duration.
type Trie struct {
	mu    sync.RWMutex
	root  *Node
	words int
}

// New returns an empty trie.
func New() *Trie {
	return &Trie{root: newNode(0, false)}
}

// Insert adds word with a score of 0.
func (t *Trie) Insert(word string) {
	t.InsertWithScore(word, 0)
}

// InsertWithScore adds word, raising the aggregate score of every node on its
// path to at least score. Reinserting a word overwrites its own score but
// never lowers an aggregate. The empty string is ignored since the root is
// never a word.
func (t *Trie) InsertWithScore(word string, score int64) {
	if word == "" {
		log.Debug("Ignoring insert of empty word")
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	if t.words == 0 && len(node.Children) == 0 {
		node.NodeScore = score
	} else {
		node.NodeScore = max(node.NodeScore, score)
	}

	for _, r := range word {
		next, created := node.child(r)
		if created {
			next.NodeScore = score
		} else {
			next.NodeScore = max(next.NodeScore, score)
		}
		node = next
	}

	if !node.IsFinal() {
		t.words++
	}
	node.Kind = Final
	node.WordScore = score
}

// Search returns word if it was inserted as a complete word.
func (t *Trie) Search(word string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.walk(word)
	if node == nil || !node.IsFinal() {
		return "", false
	}
	return word, true
}

// StartsWith returns prefix if any inserted word starts with it.
func (t *Trie) StartsWith(prefix string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.walk(prefix) == nil {
		return "", false
	}
	return prefix, true
}

// RankedResults returns every word extending prefix, best score first.
func (t *Trie) RankedResults(prefix string) ([]string, bool) {
	return t.KRankedResults(prefix, 0)
}

// KRankedResults returns at most k words extending prefix, best score first.
// k <= 0 means no limit.
func (t *Trie) KRankedResults(prefix string, k int) ([]string, bool) {
	entries, ok := t.RankedEntries(prefix, k)
	if !ok {
		return nil, false
	}
	words := make([]string, len(entries))
	for i, e := range entries {
		words[i] = e.Word
	}
	return words, true
}

// RankedEntries is KRankedResults with the score of each word.
func (t *Trie) RankedEntries(prefix string, k int) ([]Entry, bool) {
	if k < 0 {
		k = 0
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	anchor := t.walk(prefix)
	if anchor == nil {
		return nil, false
	}
	return rank(anchor, prefix, k), true
}

// Score returns the score of an inserted word.
func (t *Trie) Score(word string) (int64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.walk(word)
	if node == nil {
		return 0, false
	}
	return node.Score()
}

// Bound returns the best score reachable through prefix.
func (t *Trie) Bound(prefix string) (int64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.walk(prefix)
	if node == nil || (node == t.root && t.words == 0) {
		return 0, false
	}
	return node.NodeScore, true
}

// Len returns the number of distinct words.
func (t *Trie) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.words
}

// MaxScore returns the highest score ever inserted.
func (t *Trie) MaxScore() (int64, bool) {
	return t.Bound("")
}

// walk follows prefix from the root. Callers must hold the lock.
func (t *Trie) walk(prefix string) *Node {
	node := t.root
	for _, r := range prefix {
		next, ok := node.Children[r]
		if !ok {
			return nil
		}
		node = next
	}
	return node
}

// rank runs a best-first traversal below anchor. In bounded mode the
// traversal stops once k words are found and the next branch's bound is
// strictly below the k-th best score: since a bound is the true maximum of
// its subtree, nothing left in the frontier can enter the top k.
func rank(anchor *Node, prefix string, k int) []Entry {
	frontier := newFrontier(len(anchor.Children))
	for _, child := range anchor.Children {
		frontier.items = append(frontier.items, cursor{path: []*Node{child}})
	}
	heap.Init(frontier)

	results := newResults()
	floor := &scoreFloor{}

	for frontier.Len() > 0 {
		cur := heap.Pop(frontier).(cursor)
		node := cur.last()

		if k > 0 && floor.Len() >= k && cur.bound() < (*floor)[0] {
			break
		}

		if node.IsFinal() {
			cur.word = prefix + cur.suffix()
			heap.Push(results, cur)
			if k > 0 {
				heap.Push(floor, node.WordScore)
				if floor.Len() > k {
					heap.Pop(floor)
				}
			}
		}

		// Final nodes keep expanding: "for" and "foreign" coexist.
		for _, child := range node.Children {
			heap.Push(frontier, cur.extend(child))
		}
	}

	n := results.Len()
	if k > 0 && k < n {
		n = k
	}
	entries := make([]Entry, 0, n)
	for len(entries) < n {
		cur := heap.Pop(results).(cursor)
		entries = append(entries, Entry{Word: cur.word, Score: cur.score()})
	}
	return entries
}
