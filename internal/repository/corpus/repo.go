// Package corpus stores and retrieves the local document corpus over the
// db facade: hash records with an HNSW vector index on top.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/askroute/askroute/internal/db"
	"github.com/askroute/askroute/internal/domain/document"
)

// store is the consumer interface for corpus operations (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// HNSWConfig holds vector index construction parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo implements similarity retrieval over the corpus store.
type Repo struct {
	store     store
	keyPrefix string
	hnsw      HNSWConfig
}

// New creates a corpus repository. keyPrefix namespaces all record keys.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// WithHNSW sets vector index construction parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	r.hnsw = cfg
	return r
}

func (r *Repo) docKey(id string) string { return r.keyPrefix + "doc:" + id }
func (r *Repo) docPrefix() string       { return r.keyPrefix + "doc:" }
func (r *Repo) indexName() string       { return r.keyPrefix + "doc_idx" }

// EnsureIndex creates the vector index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context, vectorDim int) error {
	exists, err := r.store.IndexExists(ctx, r.indexName())
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}

	err = r.store.CreateIndex(ctx, &db.IndexDefinition{
		Name:            r.indexName(),
		Prefix:          r.docPrefix(),
		VectorDim:       vectorDim,
		HNSWM:           r.hnsw.M,
		HNSWEFConstruct: r.hnsw.EFConstruct,
	})
	if err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Put stores a document with its embedding vector.
func (r *Repo) Put(ctx context.Context, doc *document.Document, vector []float32) error {
	if len(vector) == 0 {
		return fmt.Errorf("vector is required")
	}
	if err := r.store.HSet(ctx, r.docKey(doc.ID()), toFields(doc, vector)); err != nil {
		return fmt.Errorf("store document %s: %w", doc.ID(), err)
	}
	return nil
}

// Empty reports whether the corpus holds no documents.
func (r *Repo) Empty(ctx context.Context) (bool, error) {
	keys, err := r.store.Scan(ctx, r.docPrefix()+"*")
	if err != nil {
		return false, fmt.Errorf("scan corpus: %w", err)
	}
	return len(keys) == 0, nil
}

// SearchKNN returns the top-k documents nearest to the query vector,
// in descending similarity order. An empty result is not an error.
func (r *Repo) SearchKNN(ctx context.Context, vector []float32, k int) ([]document.Document, error) {
	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    r.indexName(),
		Vector:       vector,
		K:            k,
		ReturnFields: []string{fieldContent, fieldSource},
	})
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}
	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	docs := make([]document.Document, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, r.docPrefix())
		docs = append(docs, fromFields(id, entry.Fields))
	}
	return docs, nil
}
