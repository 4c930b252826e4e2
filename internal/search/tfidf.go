package search

import (
	"context"
	"strings"

	"github.com/loupe-search/loupe/internal/index"
)

// TfIdfStrategy scores lines by term relevance against the
// precomputed term index.
type TfIdfStrategy struct {
	terms *index.TermIndex
}

// NewTfIdfStrategy builds a tf-idf strategy over the term index.
func NewTfIdfStrategy(terms *index.TermIndex) *TfIdfStrategy {
	return &TfIdfStrategy{terms: terms}
}

func (s *TfIdfStrategy) Name() string { return "tfidf" }

func (s *TfIdfStrategy) RequiredResources() Resources {
	return Resources{MinMemoryMB: 50, RequiresIndex: true, CPUIntensive: true}
}

func (s *TfIdfStrategy) Search(ctx context.Context, query string, opts *Options) ([]Result, error) {
	hits, err := s.terms.Search(ctx, query, opts.MaxResults)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return []Result{}, nil
	}

	// Index scores are unbounded; normalize against the best hit.
	maxScore := hits[0].Score
	for _, h := range hits {
		if h.Score > maxScore {
			maxScore = h.Score
		}
	}
	if maxScore <= 0 {
		return []Result{}, nil
	}

	firstToken := query
	if tokens := tokenize(query, opts.CaseSensitive); len(tokens) > 0 {
		firstToken = tokens[0]
	}

	results := []Result{}
	for _, h := range hits {
		score := h.Score / maxScore
		if score < opts.MinScore {
			continue
		}
		content := strings.TrimSpace(h.Chunk.Content)
		start, end := matchPosition(content, firstToken)
		results = append(results, Result{
			FilePath:   h.Chunk.FilePath,
			LineNumber: h.Chunk.LineNumber,
			Content:    content,
			Score:      score,
			MatchType:  MatchTfIdf,
			StartChar:  start,
			EndChar:    end,
		})
	}

	sortResults(results)
	return results, nil
}
