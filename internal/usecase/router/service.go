// Package router classifies incoming queries into a retrieval strategy.
package router

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/askroute/askroute/internal/domain"
	"github.com/askroute/askroute/internal/domain/decision"
)

const routePrompt = `You are a routing agent. Classify the user query into exactly one category.

Categories:
- rag_search: the query asks about the internal knowledge base topics, such as
  Python, FastAPI, LangGraph, machine learning fundamentals, or ChromaDB.
- web_search: the query needs fresh or external information, such as news,
  current events, weather, prices, or anything outside the knowledge base.

Reply with exactly one word: rag_search or web_search. No explanation.

Query: %s`

// Service classifies queries with a single LLM call.
type Service struct {
	gen    Generator
	logger *zap.Logger
}

// New creates a router service.
func New(gen Generator, logger *zap.Logger) *Service {
	return &Service{gen: gen, logger: logger}
}

// Route returns the retrieval strategy for the query. An unparseable
// classifier reply falls back to web search deterministically; only a
// failed LLM call is an error.
func (s *Service) Route(ctx context.Context, query string) (decision.Decision, error) {
	result, err := s.gen.Generate(ctx, fmt.Sprintf(routePrompt, query))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrRoutingFailed, err)
	}

	d, ok := decision.Parse(result.Text)
	if !ok {
		s.logger.Warn("Unparseable routing reply, falling back to web search",
			zap.String("reply", result.Text))
		return decision.Web, nil
	}
	return d, nil
}
