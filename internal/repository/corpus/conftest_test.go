package corpus

import (
	"context"
	"testing"

	"github.com/askroute/askroute/internal/db/memory"
	"github.com/askroute/askroute/internal/domain"
	"github.com/askroute/askroute/internal/domain/document"
)

const testDim = 4

// newTestRepo wires a repo over the in-memory store with its index created.
func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	repo := New(memory.NewStore(), "test:")
	if err := repo.EnsureIndex(context.Background(), testDim); err != nil {
		t.Fatalf("EnsureIndex: %v", err)
	}
	return repo
}

func mustDoc(t *testing.T, id, content, source string) document.Document {
	t.Helper()
	doc, err := document.New(id, content, source, nil)
	if err != nil {
		t.Fatalf("document.New: %v", err)
	}
	return doc
}

// fixedEmbedder returns preset vectors per input text.
type fixedEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fixedEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	f.calls++
	if f.err != nil {
		return domain.EmbeddingResult{}, f.err
	}
	if v, ok := f.vectors[text]; ok {
		return domain.EmbeddingResult{Embedding: v}, nil
	}
	return domain.EmbeddingResult{Embedding: []float32{1, 0, 0, 0}}, nil
}
