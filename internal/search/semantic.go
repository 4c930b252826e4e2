package search

import (
	"context"
	"strings"

	"github.com/loupe-search/loupe/internal/index"
)

// SemanticStrategy ranks lines by embedding similarity against the
// precomputed vector index. Only eligible when neural capability is
// available.
type SemanticStrategy struct {
	vectors *index.VectorIndex
}

// NewSemanticStrategy builds a semantic strategy over the vector
// index.
func NewSemanticStrategy(vectors *index.VectorIndex) *SemanticStrategy {
	return &SemanticStrategy{vectors: vectors}
}

func (s *SemanticStrategy) Name() string { return "semantic" }

func (s *SemanticStrategy) RequiredResources() Resources {
	return Resources{
		MinMemoryMB:   500,
		RequiresML:    true,
		RequiresIndex: true,
		CPUIntensive:  true,
	}
}

func (s *SemanticStrategy) Search(ctx context.Context, query string, opts *Options) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return []Result{}, nil
	}

	hits, err := s.vectors.Search(ctx, query, opts.MaxResults)
	if err != nil {
		return nil, err
	}

	results := []Result{}
	for _, h := range hits {
		if h.Score < opts.MinScore {
			continue
		}
		content := strings.TrimSpace(h.Chunk.Content)
		results = append(results, Result{
			FilePath:   h.Chunk.FilePath,
			LineNumber: h.Chunk.LineNumber,
			Content:    content,
			Score:      h.Score,
			MatchType:  MatchSemantic,
			StartChar:  0,
			EndChar:    len(content),
		})
	}

	sortResults(results)
	return results, nil
}
