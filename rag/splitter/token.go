// Package splitter provides text splitters producing indexable chunks.
package splitter

import (
	"fmt"
	"maps"
	"strings"

	"github.com/google/uuid"

	"github.com/docuflow/docuflow/rag"
)

// Default chunking parameters.
const (
	DefaultChunkSize    = 800
	DefaultChunkOverlap = 100
)

// TokenTextSplitter splits text into overlapping windows of tokens. The
// default tokenizer treats whitespace-separated words as tokens.
type TokenTextSplitter struct {
	ChunkSize    int
	ChunkOverlap int
}

// NewTokenTextSplitter creates a TokenTextSplitter. Non-positive arguments
// fall back to the defaults, and the overlap is clamped below the chunk
// size so every step makes forward progress.
func NewTokenTextSplitter(chunkSize, chunkOverlap int) *TokenTextSplitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = DefaultChunkOverlap
	}
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize - 1
	}
	return &TokenTextSplitter{
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
	}
}

var _ rag.TextSplitter = (*TokenTextSplitter)(nil)

// SplitText splits text into token windows of ChunkSize with ChunkOverlap
// tokens shared between consecutive chunks.
func (s *TokenTextSplitter) SplitText(text string) []string {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil
	}
	if len(tokens) <= s.ChunkSize {
		return []string{strings.Join(tokens, " ")}
	}

	stride := s.ChunkSize - s.ChunkOverlap
	var chunks []string
	for start := 0; start < len(tokens); start += stride {
		end := start + s.ChunkSize
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, strings.Join(tokens[start:end], " "))
		if end == len(tokens) {
			break
		}
	}
	return chunks
}

// SplitDocuments splits each document into chunks. Every chunk inherits the
// parent's metadata, including source_file, and additionally carries
// chunk_index, chunk_total and parent_id entries.
func (s *TokenTextSplitter) SplitDocuments(documents []rag.Document) []rag.Document {
	var result []rag.Document

	for _, doc := range documents {
		parentID := doc.ID
		if parentID == "" {
			parentID = uuid.NewString()
		}

		chunks := s.SplitText(doc.Content)
		for i, chunk := range chunks {
			metadata := make(map[string]any, len(doc.Metadata)+3)
			maps.Copy(metadata, doc.Metadata)
			metadata["chunk_index"] = i
			metadata["chunk_total"] = len(chunks)
			metadata["parent_id"] = parentID

			result = append(result, rag.Document{
				ID:       fmt.Sprintf("%s_chunk_%d", parentID, i),
				Content:  chunk,
				Metadata: metadata,
			})
		}
	}

	return result
}
