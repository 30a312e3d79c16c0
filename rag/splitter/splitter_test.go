package splitter

import (
	"strings"
	"testing"

	"github.com/docuflow/docuflow/rag"
)

func TestSplitTextShortInput(t *testing.T) {
	s := NewTokenTextSplitter(10, 2)
	chunks := s.SplitText("only a few words here")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "only a few words here" {
		t.Errorf("unexpected chunk: %q", chunks[0])
	}
}

func TestSplitTextOverlap(t *testing.T) {
	words := make([]string, 25)
	for i := range words {
		words[i] = string(rune('a' + i%26))
	}
	text := strings.Join(words, " ")

	s := NewTokenTextSplitter(10, 3)
	chunks := s.SplitText(text)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		prev := strings.Fields(chunks[i-1])
		cur := strings.Fields(chunks[i])
		tail := strings.Join(prev[len(prev)-3:], " ")
		head := strings.Join(cur[:3], " ")
		if tail != head {
			t.Errorf("chunk %d does not overlap predecessor: tail %q vs head %q", i, tail, head)
		}
	}
}

func TestSplitTextEmptyInput(t *testing.T) {
	s := NewTokenTextSplitter(10, 2)
	if chunks := s.SplitText("   "); chunks != nil {
		t.Errorf("expected nil for blank input, got %v", chunks)
	}
}

func TestSplitDocumentsPreservesSourceMetadata(t *testing.T) {
	words := make([]string, 30)
	for i := range words {
		words[i] = "w"
	}

	s := NewTokenTextSplitter(10, 2)
	docs := s.SplitDocuments([]rag.Document{{
		ID:      "doc1",
		Content: strings.Join(words, " "),
		Metadata: map[string]any{
			"source_file": "notes.txt",
		},
	}})

	if len(docs) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(docs))
	}

	for i, chunk := range docs {
		if chunk.SourceFile() != "notes.txt" {
			t.Errorf("chunk %d lost source_file metadata: %v", i, chunk.Metadata)
		}
		if chunk.Metadata["chunk_index"] != i {
			t.Errorf("chunk %d has chunk_index %v", i, chunk.Metadata["chunk_index"])
		}
		if chunk.Metadata["chunk_total"] != len(docs) {
			t.Errorf("chunk %d has chunk_total %v, want %d", i, chunk.Metadata["chunk_total"], len(docs))
		}
		if chunk.ID != "doc1_chunk_"+string(rune('0'+i)) {
			t.Errorf("chunk %d has ID %q", i, chunk.ID)
		}
	}
}

func TestSplitDocumentsGeneratesParentID(t *testing.T) {
	s := NewTokenTextSplitter(10, 2)
	docs := s.SplitDocuments([]rag.Document{{Content: "some short text"}})
	if len(docs) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(docs))
	}
	if docs[0].ID == "" || docs[0].Metadata["parent_id"] == "" {
		t.Errorf("expected generated IDs, got %+v", docs[0])
	}
}

func TestOverlapClamped(t *testing.T) {
	s := NewTokenTextSplitter(5, 10)
	if s.ChunkOverlap >= s.ChunkSize {
		t.Errorf("overlap %d not clamped below chunk size %d", s.ChunkOverlap, s.ChunkSize)
	}
}
