/*
Package server implements msgpack IPC for ranked word completion.

Clients write a stream of msgpack maps to the server's input and read one
msgpack map back per request. The first value the server writes is a ready
status:

	{"id": "", "status": "ready"}

Every request carries an id (generated when empty), an op and op-specific
fields:

	{"id": "req_001", "op": "complete", "p": "Fo", "l": 5}
	{"id": "req_002", "op": "insert", "p": "foreign", "s": 10}
	{"id": "req_003", "op": "search", "p": "foreign"}
	{"id": "req_004", "op": "starts_with", "p": "fore"}
	{"id": "req_005", "op": "ranked", "p": "fo", "l": 0}
	{"id": "req_006", "op": "stats"}
	{"id": "req_007", "op": "health"}

Completion answers rank suggestions from 1 (best) and include the raw score
and the time taken in microseconds:

	{"id": "req_001", "s": [{"w": "Foreign", "r": 1, "f": 10}], "c": 1, "t": 12}

search and starts_with answer {"id", "found", "v"}; ranked answers
{"id", "found", "w"} where found is false only when the prefix is not in the
index, and w is empty when the prefix has no completions.

Errors are answered with {"id", "e", "c"} and do not stop the server. A
stream that cannot be decoded ends serving.
*/
package server

// Ops understood by the server.
const (
	OpComplete   = "complete"
	OpInsert     = "insert"
	OpSearch     = "search"
	OpStartsWith = "starts_with"
	OpRanked     = "ranked"
	OpStats      = "stats"
	OpHealth     = "health"
)

// Request is the envelope for every op.
type Request struct {
	ID     string `msgpack:"id"`
	Op     string `msgpack:"op"`
	Prefix string `msgpack:"p"`
	Score  int64  `msgpack:"s,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word  string `msgpack:"w"`
	Rank  uint16 `msgpack:"r"`
	Score int64  `msgpack:"f"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// LookupResponse answers search and starts_with.
type LookupResponse struct {
	ID    string `msgpack:"id"`
	Found bool   `msgpack:"found"`
	Value string `msgpack:"v,omitempty"`
}

// RankedResponse answers ranked.
type RankedResponse struct {
	ID    string   `msgpack:"id"`
	Found bool     `msgpack:"found"`
	Words []string `msgpack:"w"`
}

// StatsResponse answers stats.
type StatsResponse struct {
	ID    string         `msgpack:"id"`
	Stats map[string]int `msgpack:"stats"`
}

// StatusResponse answers insert and health, and announces readiness.
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
