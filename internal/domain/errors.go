package domain

import "errors"

var (
	// ErrEmptyQuery signals a blank input query.
	ErrEmptyQuery = errors.New("query is empty")
	// ErrRoutingFailed signals that the classification step could not complete.
	ErrRoutingFailed = errors.New("routing failed")
	// ErrRetrievalFailed signals that the chosen retrieval backend errored.
	ErrRetrievalFailed = errors.New("retrieval failed")
	// ErrSynthesisFailed signals that answer generation errored after retrieval.
	ErrSynthesisFailed = errors.New("synthesis failed")
	// ErrGenerationUnavailable signals an unreachable or failing generation provider.
	ErrGenerationUnavailable = errors.New("generation unavailable")
	// ErrSearchUnavailable signals an unreachable or failing web search provider.
	ErrSearchUnavailable = errors.New("search unavailable")
)
