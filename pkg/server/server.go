package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordrank/internal/logger"
	"github.com/bastiangx/wordrank/internal/utils"
	"github.com/bastiangx/wordrank/pkg/config"
	"github.com/bastiangx/wordrank/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

const defaultLimit = 10

// Server handles the IPC for word completions
type Server struct {
	completer    *suggest.Completer
	config       *config.Config
	logger       *log.Logger
	encoder      *msgpack.Encoder
	requestCount int
}

// NewServer creates a completion server. A nil config uses the defaults.
func NewServer(completer *suggest.Completer, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		completer: completer,
		config:    cfg,
		logger:    logger.New("server"),
	}
}

// Start serves stdin/stdout.
func (s *Server) Start() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve answers requests read from r on w until r is exhausted.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	s.logger.Debug("Starting Server.")

	decoder := msgpack.NewDecoder(bufio.NewReader(r))
	s.encoder = msgpack.NewEncoder(w)

	s.send(StatusResponse{Status: "ready"})

	for {
		var request Request
		if err := decoder.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			s.logger.Errorf("Decoding request: %v", err)
			s.sendError("", "Invalid msgpack request", 400)
			return fmt.Errorf("decoding request: %w", err)
		}
		s.requestCount++
		s.handleRequest(request)
	}
}

func (s *Server) handleRequest(request Request) {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}

	switch request.Op {
	case OpComplete:
		s.handleComplete(request)
	case OpInsert:
		s.handleInsert(request)
	case OpSearch:
		_, found := s.completer.Trie().Search(request.Prefix)
		s.sendLookup(request, found)
	case OpStartsWith:
		_, found := s.completer.Trie().StartsWith(request.Prefix)
		s.sendLookup(request, found)
	case OpRanked:
		s.handleRanked(request)
	case OpStats:
		stats := s.completer.Stats()
		stats["requests"] = s.requestCount
		s.send(StatsResponse{ID: request.ID, Stats: stats})
	case OpHealth:
		s.send(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown op: %s", request.Op), 400)
	}
}

// handleComplete validates the prefix against the server limits, asks the
// completer and ranks the suggestions from 1.
func (s *Server) handleComplete(request Request) {
	cfg := s.config.Server
	prefix := request.Prefix
	length := utf8.RuneCountInString(prefix)

	if prefix == "" {
		s.sendError(request.ID, "Missing 'p' parameter", 400)
		return
	}
	if length < cfg.MinPrefix {
		s.sendError(request.ID, fmt.Sprintf("Prefix must be at least %d characters", cfg.MinPrefix), 400)
		return
	}
	if length > cfg.MaxPrefix {
		s.sendError(request.ID, fmt.Sprintf("Prefix exceeds maximum length of %d characters", cfg.MaxPrefix), 400)
		return
	}

	limit := request.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	limit = min(limit, cfg.MaxLimit)

	start := time.Now()
	var suggestions []suggest.Suggestion
	if !cfg.EnableFilter || utils.IsValidInput(prefix) {
		suggestions = s.completer.Complete(prefix, limit)
	} else {
		s.logger.Debugf("Prefix '%s' filtered out", prefix)
	}
	elapsed := time.Since(start)

	ranks := utils.CreateRankList(len(suggestions))
	response := CompletionResponse{
		ID:          request.ID,
		Suggestions: make([]CompletionSuggestion, len(suggestions)),
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	}
	for i, sg := range suggestions {
		response.Suggestions[i] = CompletionSuggestion{Word: sg.Word, Rank: ranks[i], Score: sg.Score}
	}
	s.send(response)
}

func (s *Server) handleInsert(request Request) {
	if request.Prefix == "" {
		s.sendError(request.ID, "Missing 'p' parameter", 400)
		return
	}
	s.completer.AddWord(request.Prefix, request.Score)
	s.send(StatusResponse{ID: request.ID, Status: "ok"})
}

func (s *Server) handleRanked(request Request) {
	words, found := s.completer.Trie().KRankedResults(request.Prefix, request.Limit)
	if words == nil {
		words = []string{}
	}
	s.send(RankedResponse{ID: request.ID, Found: found, Words: words})
}

func (s *Server) sendLookup(request Request, found bool) {
	response := LookupResponse{ID: request.ID, Found: found}
	if found {
		response.Value = request.Prefix
	}
	s.send(response)
}

func (s *Server) send(response any) {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.logger.Debugf("Request %s failed: %s", id, message)
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
