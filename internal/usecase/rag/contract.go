package rag

import (
	"context"

	"github.com/askroute/askroute/internal/domain"
	"github.com/askroute/askroute/internal/domain/document"
)

// Retriever searches the document corpus by vector similarity.
type Retriever interface {
	SearchKNN(ctx context.Context, vector []float32, k int) ([]document.Document, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Generator synthesizes the answer from the retrieved context.
type Generator interface {
	Generate(ctx context.Context, prompt string) (domain.GenerationResult, error)
}
