// Package loader provides file-format specific document loaders. Each
// loader is bound to one file at construction and produces documents
// tagged with source_file metadata.
package loader

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/docuflow/docuflow/rag"
)

// TextLoader loads a plain-text or markdown file as a single document.
type TextLoader struct {
	filePath string
	metadata map[string]any
}

// TextLoaderOption configures the TextLoader.
type TextLoaderOption func(*TextLoader)

// WithMetadata adds extra metadata to every loaded document.
func WithMetadata(metadata map[string]any) TextLoaderOption {
	return func(l *TextLoader) {
		maps.Copy(l.metadata, metadata)
	}
}

// NewTextLoader creates a loader for the given file.
func NewTextLoader(filePath string, opts ...TextLoaderOption) rag.DocumentLoader {
	l := &TextLoader{
		filePath: filePath,
		metadata: make(map[string]any),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the whole file into one document.
func (l *TextLoader) Load(ctx context.Context) ([]rag.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", l.filePath, err)
	}

	metadata := make(map[string]any, len(l.metadata)+2)
	maps.Copy(metadata, l.metadata)
	metadata["source_file"] = filepath.Base(l.filePath)
	metadata["path"] = l.filePath

	return []rag.Document{{
		ID:       uuid.NewString(),
		Content:  string(content),
		Metadata: metadata,
	}}, nil
}
