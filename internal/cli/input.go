// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/wordrank/internal/utils"
	"github.com/bastiangx/wordrank/pkg/suggest"
	"github.com/bastiangx/wordrank/pkg/trie"
	"github.com/charmbracelet/log"
)

// InputHandler reads lines and answers them:
//
//	+word [score]   insert a word
//	?word           exact lookup
//	^prefix         prefix check
//	anything else   completion
type InputHandler struct {
	completer       suggest.ICompleter
	out             *log.Logger
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	noFilter        bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.ICompleter, out *log.Logger, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		completer:       completer,
		out:             out,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
	}
}

// Start runs the input loop until in is exhausted.
func (h *InputHandler) Start(in io.Reader) error {
	h.out.Print("wordrank CLI [BETA]")
	h.out.Print("type a prefix and press Enter (+word score inserts, ?word looks up, Ctrl+C exits):")

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h.HandleLine(line)
	}
	return scanner.Err()
}

// HandleLine dispatches a single trimmed input line.
func (h *InputHandler) HandleLine(line string) {
	switch line[0] {
	case '+':
		h.handleInsert(strings.Fields(line[1:]))
	case '?':
		h.handleLookup(strings.TrimSpace(line[1:]), false)
	case '^':
		h.handleLookup(strings.TrimSpace(line[1:]), true)
	default:
		h.handleInput(line)
	}
}

func (h *InputHandler) handleInsert(fields []string) {
	if len(fields) == 0 || len(fields) > 2 {
		h.out.Error("Usage: +word [score]")
		return
	}
	var score int64
	if len(fields) == 2 {
		s, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			h.out.Errorf("Invalid score '%s': %v", fields[1], err)
			return
		}
		score = s
	}
	h.completer.AddWord(fields[0], score)
	h.out.Printf("Added '%s' (score: %s)", fields[0], utils.FormatWithCommas(score))
}

func (h *InputHandler) handleLookup(word string, prefix bool) {
	indexed, ok := h.completer.(interface{ Trie() *trie.Trie })
	if !ok {
		h.out.Error("Lookups are not supported by this completer")
		return
	}
	t := indexed.Trie()

	if prefix {
		if _, found := t.StartsWith(word); found {
			h.out.Printf("'%s' is a prefix", word)
		} else {
			h.out.Printf("'%s' is not a prefix", word)
		}
		return
	}

	if _, found := t.Search(word); !found {
		h.out.Printf("'%s' not found", word)
		return
	}
	score, _ := t.Score(word)
	h.out.Printf("'%s' found (score: %s)", word, utils.FormatWithCommas(score))
}

// handleInput validates a prefix and prints its suggestions.
func (h *InputHandler) handleInput(prefix string) {
	if len(prefix) < h.minPrefixLength {
		h.out.Errorf("Prefix too short: %s", prefix)
		return
	}
	if len(prefix) > h.maxPrefixLength {
		h.out.Errorf("Prefix too long: %s", prefix)
		return
	}

	if !h.noFilter && !utils.IsValidInput(prefix) {
		h.out.Warnf("No suggestions found for prefix: '%s' (filtered out)", prefix)
		return
	}

	start := time.Now()
	suggestions := h.completer.Complete(prefix, h.suggestLimit)
	log.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)

	if len(suggestions) == 0 {
		h.out.Warnf("No suggestions found for prefix: '%s'", prefix)
		return
	}

	h.out.Printf("Found %d suggestions for prefix '%s':", len(suggestions), prefix)
	for i, s := range suggestions {
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", s.Word)
		h.out.Printf("%2d. %-40s (score: %8s)", i+1, clWord, utils.FormatWithCommas(s.Score))
	}
}
