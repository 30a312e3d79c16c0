// Package store provides vector store implementations and the mock
// embedder used throughout the tests.
package store

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/docuflow/docuflow/rag"
)

// InMemoryVectorStore keeps documents and embeddings in process memory.
// The embedder is applied at Add and Search time; no persistence. A mutex
// guards against callers sharing one store across goroutines.
type InMemoryVectorStore struct {
	mu         sync.RWMutex
	documents  []rag.Document
	embeddings [][]float32
	embedder   rag.Embedder
}

var _ rag.VectorStore = (*InMemoryVectorStore)(nil)

// NewInMemoryVectorStore creates an empty store using the given embedder.
func NewInMemoryVectorStore(embedder rag.Embedder) *InMemoryVectorStore {
	return &InMemoryVectorStore{embedder: embedder}
}

// Add embeds and indexes the documents.
func (s *InMemoryVectorStore) Add(ctx context.Context, documents []rag.Document) error {
	if len(documents) == 0 {
		return nil
	}

	texts := make([]string, len(documents))
	for i, doc := range documents {
		texts[i] = doc.Content
	}

	embeddings, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding documents: %w", err)
	}
	if len(embeddings) != len(documents) {
		return fmt.Errorf("embedder returned %d embeddings for %d documents", len(embeddings), len(documents))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = append(s.documents, documents...)
	s.embeddings = append(s.embeddings, embeddings...)
	return nil
}

// Search returns the k most similar documents to the query by cosine
// similarity, highest score first.
func (s *InMemoryVectorStore) Search(ctx context.Context, query string, k int) ([]rag.SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.documents) == 0 {
		return nil, rag.ErrEmptyCorpus
	}

	queryEmbedding, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results := make([]rag.SearchResult, len(s.documents))
	for i, docEmbedding := range s.embeddings {
		results[i] = rag.SearchResult{
			Document: s.documents[i],
			Score:    cosineSimilarity(queryEmbedding, docEmbedding),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// ListIndexedTexts returns the exact text of every indexed chunk.
func (s *InMemoryVectorStore) ListIndexedTexts(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	texts := make([]string, len(s.documents))
	for i, doc := range s.documents {
		texts[i] = doc.Content
	}
	return texts, nil
}

// Count returns the number of indexed chunks.
func (s *InMemoryVectorStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents), nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
