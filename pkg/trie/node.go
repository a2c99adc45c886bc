package trie

// Kind marks whether a complete word ends at a node.
type Kind uint8

const (
	Intermediate Kind = iota
	Final
)

func (k Kind) String() string {
	if k == Final {
		return "final"
	}
	return "intermediate"
}

// Node is a single rune transition in the trie.
// A node owns its children exclusively; nothing outside a Trie call keeps a
// pointer to it.
type Node struct {
	Value    rune
	HasValue bool
	Children map[rune]*Node
	Kind     Kind

	// WordScore is only meaningful when Kind == Final.
	WordScore int64
	// NodeScore is the maximum score of every word inserted through this node.
	NodeScore int64
}

func newNode(value rune, hasValue bool) *Node {
	return &Node{
		Value:    value,
		HasValue: hasValue,
		Children: make(map[rune]*Node),
		Kind:     Intermediate,
	}
}

// IsFinal reports whether a word ends at n.
func (n *Node) IsFinal() bool {
	return n.Kind == Final
}

// Score returns the word score of a Final node.
func (n *Node) Score() (int64, bool) {
	if n.Kind != Final {
		return 0, false
	}
	return n.WordScore, true
}

// child returns the child keyed by r, creating it when absent.
// created is true when a new node was allocated.
func (n *Node) child(r rune) (next *Node, created bool) {
	if next, ok := n.Children[r]; ok {
		return next, false
	}
	next = newNode(r, true)
	n.Children[r] = next
	return next, true
}
