// Package decision defines the closed set of resolution strategies.
package decision

import "strings"

// Decision selects which executor answers a query. Exactly two strategies
// exist; adding a third requires extending every switch over this type.
type Decision string

const (
	// RAG answers from the local document corpus.
	RAG Decision = "rag_search"
	// Web answers from live web search results.
	Web Decision = "web_search"
)

// Valid reports whether d is one of the enumerated strategies.
func (d Decision) Valid() bool {
	return d == RAG || d == Web
}

// String returns the wire label of the decision.
func (d Decision) String() string { return string(d) }

// Parse normalizes a raw classifier reply and matches it against the
// enumerated labels. The reply must reduce to exactly one label: verbose
// output, explanations, or text mentioning both labels does not parse.
// Callers are expected to apply their own fallback when ok is false.
func Parse(raw string) (Decision, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.Trim(s, "\"'`*.,:;!? \t\n")

	switch Decision(s) {
	case RAG:
		return RAG, true
	case Web:
		return Web, true
	default:
		return "", false
	}
}
