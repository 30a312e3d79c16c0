package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/docuflow/docuflow/rag"
)

// CSVLoader loads a CSV file, producing one document per data row. Row
// values are rendered as "header: value" lines so column names survive
// chunking and retrieval.
type CSVLoader struct {
	filePath string
}

// NewCSVLoader creates a loader for the given CSV file.
func NewCSVLoader(filePath string) rag.DocumentLoader {
	return &CSVLoader{filePath: filePath}
}

// Load parses the file and returns one document per row after the header.
func (l *CSVLoader) Load(ctx context.Context) ([]rag.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", l.filePath, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", l.filePath, err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := records[0]
	docs := make([]rag.Document, 0, len(records)-1)

	for rowNum, row := range records[1:] {
		var sb strings.Builder
		for i, value := range row {
			if i < len(header) {
				sb.WriteString(header[i])
				sb.WriteString(": ")
			}
			sb.WriteString(value)
			sb.WriteString("\n")
		}

		docs = append(docs, rag.Document{
			ID:      uuid.NewString(),
			Content: sb.String(),
			Metadata: map[string]any{
				"source_file": filepath.Base(l.filePath),
				"path":        l.filePath,
				"row":         rowNum + 1,
			},
		})
	}

	return docs, nil
}
