// Package index builds and serves the read-only in-memory indexes
// consumed by the statistical and semantic search strategies.
package index

import (
	"fmt"
	"strings"

	"github.com/loupe-search/loupe/internal/scanner"
)

// Chunk is the unit of indexing: a single line of a file.
type Chunk struct {
	ID         string
	FilePath   string
	LineNumber int // 1-based
	Content    string
}

// ChunkID builds the canonical chunk identifier.
func ChunkID(path string, line int) string {
	return fmt.Sprintf("%s:%d", path, line)
}

// Hit is a scored chunk returned by an index lookup.
type Hit struct {
	Chunk Chunk
	Score float64
}

// chunksFrom splits scanned files into per-line chunks, skipping
// blank lines.
func chunksFrom(files []scanner.File) []Chunk {
	var chunks []Chunk
	for _, f := range files {
		for i, line := range f.Lines {
			if strings.TrimSpace(line) == "" {
				continue
			}
			n := i + 1
			chunks = append(chunks, Chunk{
				ID:         ChunkID(f.Path, n),
				FilePath:   f.Path,
				LineNumber: n,
				Content:    line,
			})
		}
	}
	return chunks
}
