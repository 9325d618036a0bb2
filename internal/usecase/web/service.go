// Package web answers queries from live web search results.
package web

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/askroute/askroute/internal/domain"
)

const answerPrompt = `Answer the question using the web search results below.
Base the answer on the snippets; do not invent facts beyond them.

Search results:
%s

Question: %s`

const emptyResultsPrompt = `Web search returned no results for the question below.
Say that no results were found and suggest rephrasing the question.

Question: %s`

// Service executes the web search strategy: search, synthesize.
type Service struct {
	searcher Searcher
	gen      Generator
	logger   *zap.Logger
}

// New creates a web search executor.
func New(searcher Searcher, gen Generator, logger *zap.Logger) *Service {
	return &Service{searcher: searcher, gen: gen, logger: logger}
}

// Execute answers the query from web search. Sources are the result URLs in
// provider ranking order. An empty result set is not an error: the answer
// states that nothing was found.
func (s *Service) Execute(ctx context.Context, query string) (string, []string, error) {
	results, err := s.searcher.Search(ctx, query)
	if err != nil {
		return "", nil, fmt.Errorf("%w: web search: %w", domain.ErrRetrievalFailed, err)
	}

	prompt := buildPrompt(query, results)

	genResult, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", domain.ErrSynthesisFailed, err)
	}

	s.logger.Debug("Web execution complete",
		zap.Int("results", len(results)),
		zap.Int("total_tokens", genResult.TotalTokens))

	return genResult.Text, sourcesOf(results), nil
}

func buildPrompt(query string, results []domain.WebResult) string {
	if len(results) == 0 {
		return fmt.Sprintf(emptyResultsPrompt, query)
	}

	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%s]\n%s", r.URL, r.Snippet)
	}
	return fmt.Sprintf(answerPrompt, b.String(), query)
}

// sourcesOf returns distinct result URLs preserving ranking order.
func sourcesOf(results []domain.WebResult) []string {
	sources := make([]string, 0, len(results))
	seen := make(map[string]struct{}, len(results))
	for _, r := range results {
		if _, ok := seen[r.URL]; ok {
			continue
		}
		seen[r.URL] = struct{}{}
		sources = append(sources, r.URL)
	}
	return sources
}
