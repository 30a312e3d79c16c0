package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/docuflow/docuflow/rag"
)

// HTMLLoader extracts the visible text of an HTML file as one document.
// Script and style elements are dropped before extraction.
type HTMLLoader struct {
	filePath string
}

// NewHTMLLoader creates a loader for the given HTML file.
func NewHTMLLoader(filePath string) rag.DocumentLoader {
	return &HTMLLoader{filePath: filePath}
}

// Load parses the HTML and returns its text content.
func (l *HTMLLoader) Load(ctx context.Context) ([]rag.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", l.filePath, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", l.filePath, err)
	}

	doc.Find("script, style, noscript").Remove()

	var parts []string
	doc.Find("body").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			parts = append(parts, text)
		}
	})
	if len(parts) == 0 {
		// Fragment without a body element.
		if text := strings.TrimSpace(doc.Text()); text != "" {
			parts = append(parts, text)
		}
	}

	content := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")

	metadata := map[string]any{
		"source_file": filepath.Base(l.filePath),
		"path":        l.filePath,
	}
	if title := strings.TrimSpace(doc.Find("title").Text()); title != "" {
		metadata["title"] = title
	}

	return []rag.Document{{
		ID:       uuid.NewString(),
		Content:  content,
		Metadata: metadata,
	}}, nil
}
