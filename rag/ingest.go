package rag

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/docuflow/docuflow/log"
)

// LoaderFactory builds a DocumentLoader for one file path.
type LoaderFactory func(path string) DocumentLoader

// Ingestor turns heterogeneous source files into indexed chunks. Loaders are
// selected by file extension; files with an unregistered extension are
// skipped with a warning, never treated as failures. Indexing is idempotent:
// only chunk texts not already present in the store are added.
type Ingestor struct {
	loaders  map[string]LoaderFactory
	splitter TextSplitter
	store    VectorStore
	logger   log.Logger
}

// NewIngestor creates an ingestor writing chunks produced by the splitter
// into the given store. Register loaders with RegisterLoader before use.
func NewIngestor(splitter TextSplitter, store VectorStore) *Ingestor {
	return &Ingestor{
		loaders:  make(map[string]LoaderFactory),
		splitter: splitter,
		store:    store,
		logger:   &log.NoOpLogger{},
	}
}

// SetLogger sets the logger used for skip warnings and sync reporting.
func (in *Ingestor) SetLogger(logger log.Logger) {
	if logger != nil {
		in.logger = logger
	}
}

// RegisterLoader binds a loader factory to a file extension. The extension
// must include the leading dot and is matched case-insensitively.
func (in *Ingestor) RegisterLoader(ext string, factory LoaderFactory) {
	in.loaders[strings.ToLower(ext)] = factory
}

// LoadFile loads a single file through the loader registered for its
// extension. A nil slice with a nil error means the file was skipped.
func (in *Ingestor) LoadFile(ctx context.Context, path string) ([]Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	factory, ok := in.loaders[ext]
	if !ok {
		in.logger.Warn("skipping %s: no loader registered for extension %q", path, ext)
		return nil, nil
	}

	docs, err := factory(path).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return docs, nil
}

// LoadDirectory walks the directory tree and loads every file with a
// registered extension.
func (in *Ingestor) LoadDirectory(ctx context.Context, dir string) ([]Document, error) {
	var docs []Document

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		loaded, err := in.LoadFile(ctx, path)
		if err != nil {
			return err
		}
		docs = append(docs, loaded...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	return docs, nil
}

// Sync splits the documents into chunks and indexes only those whose exact
// text is not already in the store. It returns the number of chunks added,
// so calling Sync twice with the same input adds zero on the second call.
func (in *Ingestor) Sync(ctx context.Context, docs []Document) (int, error) {
	chunks := in.splitter.SplitDocuments(docs)
	if len(chunks) == 0 {
		return 0, nil
	}

	indexed, err := in.store.ListIndexedTexts(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing indexed texts: %w", err)
	}

	seen := make(map[string]struct{}, len(indexed))
	for _, text := range indexed {
		seen[text] = struct{}{}
	}

	fresh := make([]Document, 0, len(chunks))
	for _, chunk := range chunks {
		if _, ok := seen[chunk.Content]; ok {
			continue
		}
		// Guard against duplicate chunks within one batch too.
		seen[chunk.Content] = struct{}{}
		fresh = append(fresh, chunk)
	}

	if len(fresh) == 0 {
		in.logger.Info("sync: all %d chunks already indexed", len(chunks))
		return 0, nil
	}

	if err := in.store.Add(ctx, fresh); err != nil {
		return 0, fmt.Errorf("adding chunks: %w", err)
	}

	in.logger.Info("sync: indexed %d new chunks out of %d", len(fresh), len(chunks))
	return len(fresh), nil
}

// IngestDirectory loads a directory and syncs the result into the store.
func (in *Ingestor) IngestDirectory(ctx context.Context, dir string) (int, error) {
	docs, err := in.LoadDirectory(ctx, dir)
	if err != nil {
		return 0, err
	}
	return in.Sync(ctx, docs)
}
