package index

import (
	"context"
	"fmt"
	"sync"

	"github.com/coder/hnsw"

	"github.com/loupe-search/loupe/internal/embed"
)

// VectorIndex wraps an HNSW graph over chunk embeddings for
// approximate nearest-neighbor search.
type VectorIndex struct {
	mu       sync.RWMutex
	graph    *hnsw.Graph[string]
	chunks   map[string]Chunk
	embedder embed.Embedder
}

// NewVectorIndex creates an empty vector index backed by the given
// embedder.
func NewVectorIndex(embedder embed.Embedder) *VectorIndex {
	graph := hnsw.NewGraph[string]()
	graph.Distance = hnsw.CosineDistance
	graph.M = 16
	graph.EfSearch = 20
	graph.Ml = 0.25

	return &VectorIndex{
		graph:    graph,
		chunks:   make(map[string]Chunk),
		embedder: embedder,
	}
}

// Index embeds chunks and inserts them into the graph.
func (v *VectorIndex) Index(ctx context.Context, chunks []Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	vectors, err := v.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed chunks: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	for i, c := range chunks {
		v.graph.Add(hnsw.MakeNode(c.ID, vectors[i]))
		v.chunks[c.ID] = c
	}
	return nil
}

// Search embeds the query and returns the k nearest chunks with
// cosine-similarity scores.
func (v *VectorIndex) Search(ctx context.Context, query string, k int) ([]Hit, error) {
	vec, err := v.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.graph.Len() == 0 {
		return []Hit{}, nil
	}

	nodes := v.graph.Search(vec, k)

	hits := make([]Hit, 0, len(nodes))
	for _, node := range nodes {
		chunk, ok := v.chunks[node.Key]
		if !ok {
			continue
		}
		// Cosine distance is 1 - similarity.
		score := 1 - float64(v.graph.Distance(vec, node.Value))
		if score < 0 {
			score = 0
		}
		hits = append(hits, Hit{Chunk: chunk, Score: score})
	}
	return hits, nil
}

// Len returns the number of indexed chunks.
func (v *VectorIndex) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.graph.Len()
}
