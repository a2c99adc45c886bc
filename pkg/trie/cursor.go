package trie

import "strings"

// cursor records the nodes visited below a query anchor.
// The same value orders the frontier by the last node's bound and the
// results by the last node's word score; word is only joined once the
// cursor is emitted as a result.
type cursor struct {
	path []*Node
	word string
}

func (c cursor) last() *Node {
	return c.path[len(c.path)-1]
}

func (c cursor) bound() int64 {
	return c.last().NodeScore
}

func (c cursor) score() int64 {
	return c.last().WordScore
}

// extend returns a new cursor one node deeper. The path is copied since
// sibling cursors share the same parent path.
func (c cursor) extend(n *Node) cursor {
	path := make([]*Node, len(c.path), len(c.path)+1)
	copy(path, c.path)
	return cursor{path: append(path, n)}
}

// suffix joins the runes along the path.
func (c cursor) suffix() string {
	var sb strings.Builder
	sb.Grow(len(c.path))
	for _, n := range c.path {
		if n.HasValue {
			sb.WriteRune(n.Value)
		}
	}
	return sb.String()
}

// pathLess orders two paths of equal bound: shorter first, then by rune.
func pathLess(a, b []*Node) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	for i := range a {
		if a[i].Value != b[i].Value {
			return a[i].Value < b[i].Value
		}
	}
	return false
}

// cursorQueue is a container/heap max-queue over cursors with a pluggable
// ordering projection.
type cursorQueue struct {
	items  []cursor
	before func(a, b cursor) bool
}

func (q *cursorQueue) Len() int           { return len(q.items) }
func (q *cursorQueue) Less(i, j int) bool { return q.before(q.items[i], q.items[j]) }
func (q *cursorQueue) Swap(i, j int)      { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *cursorQueue) Push(x any) {
	q.items = append(q.items, x.(cursor))
}

func (q *cursorQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	old[n-1] = cursor{}
	q.items = old[:n-1]
	return item
}

// newFrontier orders cursors by the aggregate bound of their last node.
func newFrontier(capacity int) *cursorQueue {
	return &cursorQueue{
		items: make([]cursor, 0, capacity),
		before: func(a, b cursor) bool {
			if ab, bb := a.bound(), b.bound(); ab != bb {
				return ab > bb
			}
			return pathLess(a.path, b.path)
		},
	}
}

// newResults orders emitted cursors by word score, ties by word.
func newResults() *cursorQueue {
	return &cursorQueue{
		before: func(a, b cursor) bool {
			if as, bs := a.score(), b.score(); as != bs {
				return as > bs
			}
			return a.word < b.word
		},
	}
}

// scoreFloor is a min-heap over the best k scores found so far; its root is
// the lowest score a remaining branch has to beat.
type scoreFloor []int64

func (f scoreFloor) Len() int           { return len(f) }
func (f scoreFloor) Less(i, j int) bool { return f[i] < f[j] }
func (f scoreFloor) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }

func (f *scoreFloor) Push(x any) {
	*f = append(*f, x.(int64))
}

func (f *scoreFloor) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}
