// Package document defines the retrievable corpus unit.
package document

import (
	"fmt"
	"regexp"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// MaxContentSize is the maximum document content size in bytes.
const MaxContentSize = 163840 // 160KB

// Document is a retrievable corpus unit (immutable value object).
// The core never mutates or deletes documents; they are written once
// during corpus population and read back during retrieval.
type Document struct {
	id      string
	content string
	source  string
	tags    map[string]string
}

// New validates and creates a Document.
// ID: ^[a-zA-Z0-9._-]+$, 1-256 chars. Content and source are required.
func New(id, content, source string, tags map[string]string) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if len(id) > 256 {
		return Document{}, fmt.Errorf("document ID too long (max 256)")
	}
	if !idRegex.MatchString(id) {
		return Document{}, fmt.Errorf("document ID must be alphanumeric with dots, underscores and hyphens")
	}
	if content == "" {
		return Document{}, fmt.Errorf("content is required")
	}
	if len(content) > MaxContentSize {
		return Document{}, fmt.Errorf("content too large (max %d bytes)", MaxContentSize)
	}
	if source == "" {
		return Document{}, fmt.Errorf("source is required")
	}

	return Document{id: id, content: content, source: source, tags: cloneStringMap(tags)}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(id, content, source string, tags map[string]string) Document {
	return Document{id: id, content: content, source: source, tags: tags}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Content returns the document text content.
func (d *Document) Content() string { return d.content }

// Source returns the provenance identifier reported to callers.
func (d *Document) Source() string { return d.source }

// Tags returns the free-form metadata fields.
func (d *Document) Tags() map[string]string { return d.tags }

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
