// Package suggest serves case-preserving completions from a ranked trie,
// with a prefix-keyed hot cache in front of it.
package suggest

// ICompleter defines the interface for word completion engines
type ICompleter interface {
	// Complete returns at most limit suggestions for prefix, best first.
	Complete(prefix string, limit int) []Suggestion

	// AddWord adds a word with its score to the completer
	AddWord(word string, score int64)

	// Initialize loads the configured dictionary, if any
	Initialize() error

	// Stats returns statistics about the loaded dictionary
	Stats() map[string]int
}
