package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loupe-search/loupe/internal/index"
)

func buildTermIndex(t *testing.T) *index.TermIndex {
	t.Helper()
	terms, _, err := index.Build(context.Background(), engineFiles(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = terms.Close() })
	return terms
}

func TestTfIdfSearch_NormalizesScores(t *testing.T) {
	s := NewTfIdfStrategy(buildTermIndex(t))

	results, err := s.Search(context.Background(), "database", DefaultOptions())
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, 1.0, results[0].Score)
	for _, r := range results {
		assert.Equal(t, MatchTfIdf, r.MatchType)
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 1.0)
	}
}

func TestTfIdfSearch_ResolvesChunkPositions(t *testing.T) {
	s := NewTfIdfStrategy(buildTermIndex(t))

	results, err := s.Search(context.Background(), "pooling", DefaultOptions())
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, "src/db.go", results[0].FilePath)
	assert.Equal(t, 2, results[0].LineNumber)
	assert.Equal(t, "// database connection pooling", results[0].Content)
}

func TestTfIdfSearch_NoMatchIsEmptySuccess(t *testing.T) {
	s := NewTfIdfStrategy(buildTermIndex(t))

	results, err := s.Search(context.Background(), "zebra", DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestTfIdfSearch_RequiresIndex(t *testing.T) {
	s := NewTfIdfStrategy(nil)
	assert.True(t, s.RequiredResources().RequiresIndex)
	assert.False(t, s.RequiredResources().RequiresML)
}
