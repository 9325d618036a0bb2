package domain

import "context"

// GenerationResult holds generated text and provider-reported token usage.
type GenerationResult struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Generator produces text from a prompt via an external LLM provider.
type Generator interface {
	Generate(ctx context.Context, prompt string) (GenerationResult, error)
}

// EmbeddingResult holds an embedding vector and provider-reported token usage.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// WebResult is one ranked hit from the web search provider.
// It lives only for the duration of a single run and is never persisted.
type WebResult struct {
	Snippet string
	URL     string
}

// WebSearcher queries an external web search API.
type WebSearcher interface {
	Search(ctx context.Context, query string) ([]WebResult, error)
}

// HealthChecker is implemented by adapters that can probe their provider.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
