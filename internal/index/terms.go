package index

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
)

// termDocument is the document structure for bleve indexing.
type termDocument struct {
	Content string `json:"content"`
}

// TermIndex wraps an in-memory bleve index for statistical term
// scoring. It is immutable after Build and safe for concurrent
// searches.
type TermIndex struct {
	mu     sync.RWMutex
	index  bleve.Index
	chunks map[string]Chunk
	closed bool
}

// NewTermIndex creates an empty in-memory term index.
func NewTermIndex() (*TermIndex, error) {
	mapping := bleve.NewIndexMapping()
	idx, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, fmt.Errorf("failed to create term index: %w", err)
	}
	return &TermIndex{
		index:  idx,
		chunks: make(map[string]Chunk),
	}, nil
}

// Index adds chunks to the index in a single batch.
func (t *TermIndex) Index(chunks []Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("term index is closed")
	}

	batch := t.index.NewBatch()
	for _, c := range chunks {
		if err := batch.Index(c.ID, termDocument{Content: c.Content}); err != nil {
			return fmt.Errorf("failed to index chunk %s: %w", c.ID, err)
		}
		t.chunks[c.ID] = c
	}

	if err := t.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to execute batch: %w", err)
	}
	return nil
}

// Search returns chunks matching the query, scored by term relevance.
// An empty query matches nothing.
func (t *TermIndex) Search(ctx context.Context, queryStr string, limit int) ([]Hit, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.closed {
		return nil, fmt.Errorf("term index is closed")
	}

	if strings.TrimSpace(queryStr) == "" {
		return []Hit{}, nil
	}

	matchQuery := bleve.NewMatchQuery(queryStr)
	matchQuery.SetField("content")

	req := bleve.NewSearchRequest(matchQuery)
	req.Size = limit

	result, err := t.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("term search failed: %w", err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, hit := range result.Hits {
		chunk, ok := t.chunks[hit.ID]
		if !ok {
			continue
		}
		hits = append(hits, Hit{Chunk: chunk, Score: hit.Score})
	}
	return hits, nil
}

// Count returns the number of indexed chunks.
func (t *TermIndex) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.chunks)
}

// Close releases the underlying index.
func (t *TermIndex) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	return t.index.Close()
}
