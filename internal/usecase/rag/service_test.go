package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/askroute/askroute/internal/domain"
	"github.com/askroute/askroute/internal/domain/document"
)

type mockRetriever struct {
	docs   []document.Document
	err    error
	called bool
	lastK  int
}

func (m *mockRetriever) SearchKNN(_ context.Context, _ []float32, k int) ([]document.Document, error) {
	m.called = true
	m.lastK = k
	if m.err != nil {
		return nil, m.err
	}
	return m.docs, nil
}

type mockEmbedder struct {
	err error
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: []float32{1, 0}}, nil
}

type mockGenerator struct {
	text       string
	err        error
	called     bool
	lastPrompt string
}

func (m *mockGenerator) Generate(_ context.Context, prompt string) (domain.GenerationResult, error) {
	m.called = true
	m.lastPrompt = prompt
	if m.err != nil {
		return domain.GenerationResult{}, m.err
	}
	return domain.GenerationResult{Text: m.text}, nil
}

func mustDoc(t *testing.T, id, content, source string) document.Document {
	t.Helper()
	doc, err := document.New(id, content, source, nil)
	if err != nil {
		t.Fatalf("document.New: %v", err)
	}
	return doc
}

func TestExecute(t *testing.T) {
	retr := &mockRetriever{docs: []document.Document{
		mustDoc(t, "a", "FastAPI is a web framework.", "fastapi_docs.txt"),
		mustDoc(t, "b", "Python is a language.", "python_intro.txt"),
	}}
	gen := &mockGenerator{text: "FastAPI is a modern web framework."}
	svc := New(retr, &mockEmbedder{}, gen, 3, zap.NewNop())

	result, sources, err := svc.Execute(context.Background(), "What is FastAPI?")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result != "FastAPI is a modern web framework." {
		t.Errorf("unexpected result: %q", result)
	}
	if len(sources) != 2 || sources[0] != "fastapi_docs.txt" || sources[1] != "python_intro.txt" {
		t.Errorf("unexpected sources: %v", sources)
	}
	if retr.lastK != 3 {
		t.Errorf("expected top-k 3, got %d", retr.lastK)
	}
	if !strings.Contains(gen.lastPrompt, "FastAPI is a web framework.") {
		t.Error("prompt does not contain retrieved context")
	}
	if !strings.Contains(gen.lastPrompt, "What is FastAPI?") {
		t.Error("prompt does not contain the query")
	}
}

func TestExecute_DeduplicatesSourcesInOrder(t *testing.T) {
	retr := &mockRetriever{docs: []document.Document{
		mustDoc(t, "a", "chunk one", "fastapi_docs.txt"),
		mustDoc(t, "b", "chunk two", "python_intro.txt"),
		mustDoc(t, "c", "chunk three", "fastapi_docs.txt"),
	}}
	svc := New(retr, &mockEmbedder{}, &mockGenerator{text: "answer"}, 3, zap.NewNop())

	_, sources, err := svc.Execute(context.Background(), "query")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(sources) != 2 || sources[0] != "fastapi_docs.txt" || sources[1] != "python_intro.txt" {
		t.Errorf("unexpected sources: %v", sources)
	}
}

func TestExecute_EmptyRetrievalIsSuccess(t *testing.T) {
	gen := &mockGenerator{text: "No relevant internal information was found."}
	svc := New(&mockRetriever{}, &mockEmbedder{}, gen, 3, zap.NewNop())

	result, sources, err := svc.Execute(context.Background(), "query")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result == "" {
		t.Error("expected an answer even with an empty corpus")
	}
	if len(sources) != 0 {
		t.Errorf("expected no sources, got %v", sources)
	}
	if !strings.Contains(gen.lastPrompt, "no relevant documents") {
		t.Error("expected the empty-corpus prompt variant")
	}
}

func TestExecute_EmbedError(t *testing.T) {
	retr := &mockRetriever{}
	gen := &mockGenerator{text: "answer"}
	svc := New(retr, &mockEmbedder{err: errors.New("provider down")}, gen, 3, zap.NewNop())

	_, _, err := svc.Execute(context.Background(), "query")
	if !errors.Is(err, domain.ErrRetrievalFailed) {
		t.Fatalf("expected ErrRetrievalFailed, got %v", err)
	}
	if retr.called {
		t.Error("retriever must not be called after embed failure")
	}
	if gen.called {
		t.Error("generator must not be called after embed failure")
	}
}

func TestExecute_RetrieverError(t *testing.T) {
	gen := &mockGenerator{text: "answer"}
	svc := New(&mockRetriever{err: errors.New("store down")}, &mockEmbedder{}, gen, 3, zap.NewNop())

	_, _, err := svc.Execute(context.Background(), "query")
	if !errors.Is(err, domain.ErrRetrievalFailed) {
		t.Fatalf("expected ErrRetrievalFailed, got %v", err)
	}
	if gen.called {
		t.Error("generator must not be called after retrieval failure")
	}
}

func TestExecute_SynthesisError(t *testing.T) {
	retr := &mockRetriever{docs: []document.Document{
		mustDoc(t, "a", "content", "src.txt"),
	}}
	svc := New(retr, &mockEmbedder{}, &mockGenerator{err: errors.New("provider down")}, 3, zap.NewNop())

	_, _, err := svc.Execute(context.Background(), "query")
	if !errors.Is(err, domain.ErrSynthesisFailed) {
		t.Fatalf("expected ErrSynthesisFailed, got %v", err)
	}
}
