package store

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// MockEmbedder is a deterministic embedder for tests. It hashes content
// words into a fixed-size bag-of-words vector, so texts sharing topical
// terms score high on cosine similarity while unrelated texts score near
// zero. Stop words are dropped and a trailing "s" is stripped so simple
// plural forms match.
type MockEmbedder struct {
	Dimension int
}

// NewMockEmbedder creates a MockEmbedder with the given dimension.
func NewMockEmbedder(dimension int) *MockEmbedder {
	if dimension <= 0 {
		dimension = 128
	}
	return &MockEmbedder{Dimension: dimension}
}

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"what": {}, "how": {}, "why": {}, "who": {}, "which": {},
	"to": {}, "of": {}, "in": {}, "on": {}, "at": {}, "and": {}, "or": {},
	"do": {}, "does": {}, "did": {}, "according": {}, "per": {},
}

// EmbedDocument embeds a single text.
func (e *MockEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return e.embed(text), nil
}

// EmbedDocuments embeds a batch of texts.
func (e *MockEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = e.embed(text)
	}
	return embeddings, nil
}

// EmbedQuery embeds a query text the same way as documents.
func (e *MockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.embed(text), nil
}

func (e *MockEmbedder) embed(text string) []float32 {
	embedding := make([]float32, e.Dimension)

	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:!?\"'()[]")
		if len(word) > 3 {
			word = strings.TrimSuffix(word, "s")
		}
		if word == "" {
			continue
		}
		if _, ok := stopWords[word]; ok {
			continue
		}

		h := fnv.New32a()
		h.Write([]byte(word))
		embedding[int(h.Sum32())%e.Dimension]++
	}

	var norm float64
	for _, v := range embedding {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		n := float32(math.Sqrt(norm))
		for i := range embedding {
			embedding[i] /= n
		}
	}

	return embedding
}
