package corpus

import (
	"context"
	"fmt"

	"github.com/askroute/askroute/internal/domain"
	"github.com/askroute/askroute/internal/domain/document"
)

// SampleCorpus returns the built-in demo documents used when corpus
// seeding is enabled and the store is empty.
func SampleCorpus() []document.Document {
	samples := []struct {
		source  string
		content string
	}{
		{
			source: "python_intro.txt",
			content: "Python is a high-level, interpreted, general-purpose programming language. " +
				"It is known for its clear and readable syntax, which emphasizes code readability.",
		},
		{
			source: "fastapi_docs.txt",
			content: "FastAPI is a modern, fast web framework for building APIs with Python 3.7+. " +
				"It is based on standards such as OpenAPI and JSON Schema, and offers automatic data validation.",
		},
		{
			source: "langgraph_guide.txt",
			content: "LangGraph is a framework for building agents and multi-agent applications with LLMs. " +
				"It allows building stateful graphs with cycles, conditions, and state persistence.",
		},
		{
			source: "ml_basics.txt",
			content: "Machine learning is a field of artificial intelligence focused on building systems " +
				"that learn from data and improve their performance over time.",
		},
		{
			source: "chroma_overview.txt",
			content: "ChromaDB is an open-source vector database designed for AI applications. " +
				"It supports embeddings and similarity search, making it well suited for RAG systems.",
		},
	}

	docs := make([]document.Document, 0, len(samples))
	for _, s := range samples {
		doc, err := document.New(s.source, s.content, s.source, nil)
		if err != nil {
			// Built-in samples are static; a validation failure here is a bug.
			panic(fmt.Sprintf("invalid sample document %s: %v", s.source, err))
		}
		docs = append(docs, doc)
	}
	return docs
}

// Seed embeds and stores the given documents. Used at startup when the
// corpus is empty and seeding is enabled.
func (r *Repo) Seed(ctx context.Context, embedder domain.Embedder, docs []document.Document) error {
	for i := range docs {
		doc := &docs[i]
		emb, err := embedder.Embed(ctx, doc.Content())
		if err != nil {
			return fmt.Errorf("embed document %s: %w", doc.ID(), err)
		}
		if err := r.Put(ctx, doc, emb.Embedding); err != nil {
			return err
		}
	}
	return nil
}
