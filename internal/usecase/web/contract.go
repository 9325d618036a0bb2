package web

import (
	"context"

	"github.com/askroute/askroute/internal/domain"
)

// Searcher queries the external web search provider.
type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.WebResult, error)
}

// Generator synthesizes the answer from search snippets.
type Generator interface {
	Generate(ctx context.Context, prompt string) (domain.GenerationResult, error)
}
