package index

import (
	"context"
	"log/slog"
	"time"

	"github.com/loupe-search/loupe/internal/embed"
	"github.com/loupe-search/loupe/internal/scanner"
)

// Build constructs the term index over the scanned files, and the
// vector index as well when an embedder is supplied. A nil embedder
// leaves the vector index nil, which disables the semantic strategy.
func Build(ctx context.Context, files []scanner.File, embedder embed.Embedder) (*TermIndex, *VectorIndex, error) {
	start := time.Now()
	chunks := chunksFrom(files)

	terms, err := NewTermIndex()
	if err != nil {
		return nil, nil, err
	}
	if err := terms.Index(chunks); err != nil {
		_ = terms.Close()
		return nil, nil, err
	}

	var vectors *VectorIndex
	if embedder != nil {
		vectors = NewVectorIndex(embedder)
		if err := vectors.Index(ctx, chunks); err != nil {
			_ = terms.Close()
			return nil, nil, err
		}
	}

	slog.Debug("indexes built",
		slog.Int("files", len(files)),
		slog.Int("chunks", len(chunks)),
		slog.Bool("vectors", vectors != nil),
		slog.Duration("elapsed", time.Since(start)))

	return terms, vectors, nil
}
