// Package rag holds the retrieval side of the toolkit: the document model,
// the store and loader interfaces, relevance filtering and idempotent
// ingestion. Concrete loaders, splitters and stores live in subpackages.
package rag

import (
	"context"
	"errors"
)

var (
	// ErrEmptyCorpus is returned when retrieval is attempted with no
	// indexed documents.
	ErrEmptyCorpus = errors.New("no documents indexed in corpus")

	// ErrNoRelevantDocuments is returned when every retrieved document
	// scored below the relevance threshold.
	ErrNoRelevantDocuments = errors.New("no relevant documents found")
)

// Document represents a unit of retrievable content.
type Document struct {
	ID       string
	Content  string
	Metadata map[string]any
}

// SourceFile returns the source_file metadata entry, or "" when absent.
func (d Document) SourceFile() string {
	if d.Metadata == nil {
		return ""
	}
	if src, ok := d.Metadata["source_file"].(string); ok {
		return src
	}
	return ""
}

// SearchResult pairs a document with its relevance score for one query.
type SearchResult struct {
	Document Document
	Score    float64
}

// Embedder generates vector embeddings for texts.
type Embedder interface {
	EmbedDocument(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorStore indexes documents and retrieves them by similarity.
// ListIndexedTexts exposes the exact chunk texts already indexed so callers
// can add only the unseen subset.
type VectorStore interface {
	Add(ctx context.Context, documents []Document) error
	Search(ctx context.Context, query string, k int) ([]SearchResult, error)
	ListIndexedTexts(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
}

// TextSplitter splits documents into indexable chunks.
type TextSplitter interface {
	SplitText(text string) []string
	SplitDocuments(documents []Document) []Document
}

// DocumentLoader loads documents from a single source. Loaders are bound to
// their source at construction time.
type DocumentLoader interface {
	Load(ctx context.Context) ([]Document, error)
}
