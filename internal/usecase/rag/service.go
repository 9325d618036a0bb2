// Package rag answers queries from the internal document corpus.
package rag

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/askroute/askroute/internal/domain"
	"github.com/askroute/askroute/internal/domain/document"
)

const answerPrompt = `Answer the question using only the context below.
If the context does not contain the answer, say so honestly.

Context:
%s

Question: %s`

const emptyCorpusPrompt = `The internal knowledge base returned no relevant documents
for the question below. Say that no relevant internal information was found
and suggest rephrasing the question.

Question: %s`

// Service executes the RAG strategy: embed, retrieve, synthesize.
type Service struct {
	retriever Retriever
	embed     Embedder
	gen       Generator
	topK      int
	logger    *zap.Logger
}

// New creates a RAG executor.
func New(retriever Retriever, embed Embedder, gen Generator, topK int, logger *zap.Logger) *Service {
	return &Service{retriever: retriever, embed: embed, gen: gen, topK: topK, logger: logger}
}

// Execute answers the query from the corpus. Sources are the distinct document
// origins of the retrieved context, in retrieval order. An empty retrieval is
// not an error: the answer states that nothing relevant was found.
func (s *Service) Execute(ctx context.Context, query string) (string, []string, error) {
	embResult, err := s.embed.Embed(ctx, query)
	if err != nil {
		return "", nil, fmt.Errorf("%w: vectorize query: %w", domain.ErrRetrievalFailed, err)
	}

	docs, err := s.retriever.SearchKNN(ctx, embResult.Embedding, s.topK)
	if err != nil {
		return "", nil, fmt.Errorf("%w: search knn: %w", domain.ErrRetrievalFailed, err)
	}

	prompt := s.buildPrompt(query, docs)

	genResult, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", domain.ErrSynthesisFailed, err)
	}

	s.logger.Debug("RAG execution complete",
		zap.Int("retrieved", len(docs)),
		zap.Int("total_tokens", genResult.TotalTokens))

	return genResult.Text, sourcesOf(docs), nil
}

func (s *Service) buildPrompt(query string, docs []document.Document) string {
	if len(docs) == 0 {
		return fmt.Sprintf(emptyCorpusPrompt, query)
	}

	var b strings.Builder
	for i, doc := range docs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%s]\n%s", doc.Source(), doc.Content())
	}
	return fmt.Sprintf(answerPrompt, b.String(), query)
}

// sourcesOf returns distinct document sources preserving retrieval order.
func sourcesOf(docs []document.Document) []string {
	sources := make([]string, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		src := doc.Source()
		if _, ok := seen[src]; ok {
			continue
		}
		seen[src] = struct{}{}
		sources = append(sources, src)
	}
	return sources
}
