package corpus

import (
	"context"
	"errors"
	"testing"
)

func TestPutAndSearchKNN_OrderedBySimilarity(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	docA := mustDoc(t, "a", "about python", "python_intro.txt")
	docB := mustDoc(t, "b", "about news", "news.txt")
	if err := repo.Put(ctx, &docA, []float32{1, 0, 0, 0}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := repo.Put(ctx, &docB, []float32{0, 1, 0, 0}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	docs, err := repo.SearchKNN(ctx, []float32{1, 0, 0, 0}, 2)
	if err != nil {
		t.Fatalf("SearchKNN: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}
	if docs[0].ID() != "a" {
		t.Errorf("expected doc a first, got %s", docs[0].ID())
	}
	if docs[0].Source() != "python_intro.txt" {
		t.Errorf("expected source hydrated, got %q", docs[0].Source())
	}
	if docs[0].Content() != "about python" {
		t.Errorf("expected content hydrated, got %q", docs[0].Content())
	}
}

func TestSearchKNN_EmptyCorpus(t *testing.T) {
	repo := newTestRepo(t)

	docs, err := repo.SearchKNN(context.Background(), []float32{1, 0, 0, 0}, 3)
	if err != nil {
		t.Fatalf("SearchKNN: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected no docs, got %d", len(docs))
	}
}

func TestPut_RequiresVector(t *testing.T) {
	repo := newTestRepo(t)

	doc := mustDoc(t, "a", "content", "src")
	if err := repo.Put(context.Background(), &doc, nil); err == nil {
		t.Fatal("expected error for missing vector")
	}
}

func TestEmpty(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	empty, err := repo.Empty(ctx)
	if err != nil {
		t.Fatalf("Empty: %v", err)
	}
	if !empty {
		t.Error("expected empty corpus")
	}

	doc := mustDoc(t, "a", "content", "src")
	if err := repo.Put(ctx, &doc, []float32{1, 0, 0, 0}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	empty, err = repo.Empty(ctx)
	if err != nil {
		t.Fatalf("Empty: %v", err)
	}
	if empty {
		t.Error("expected non-empty corpus")
	}
}

func TestSeed_EmbedsAndStoresAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	embed := &fixedEmbedder{}
	docs := SampleCorpus()

	if err := repo.Seed(ctx, embed, docs); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if embed.calls != len(docs) {
		t.Errorf("expected %d embed calls, got %d", len(docs), embed.calls)
	}

	empty, err := repo.Empty(ctx)
	if err != nil {
		t.Fatalf("Empty: %v", err)
	}
	if empty {
		t.Error("expected seeded corpus")
	}
}

func TestSeed_EmbedderError(t *testing.T) {
	repo := newTestRepo(t)

	embed := &fixedEmbedder{err: errors.New("provider down")}
	err := repo.Seed(context.Background(), embed, SampleCorpus())
	if err == nil {
		t.Fatal("expected error from embedding failure")
	}
}

func TestSampleCorpus_HasFiveDocuments(t *testing.T) {
	docs := SampleCorpus()
	if len(docs) != 5 {
		t.Fatalf("expected 5 sample documents, got %d", len(docs))
	}
	seen := map[string]bool{}
	for i := range docs {
		if docs[i].Source() == "" {
			t.Errorf("sample %d has no source", i)
		}
		if seen[docs[i].Source()] {
			t.Errorf("duplicate source %s", docs[i].Source())
		}
		seen[docs[i].Source()] = true
	}
	if !seen["fastapi_docs.txt"] {
		t.Error("expected fastapi_docs.txt in sample corpus")
	}
}
