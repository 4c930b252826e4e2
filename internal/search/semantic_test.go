package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loupe-search/loupe/internal/embed"
	"github.com/loupe-search/loupe/internal/index"
)

func buildVectorIndex(t *testing.T) *index.VectorIndex {
	t.Helper()
	terms, vectors, err := index.Build(context.Background(),
		engineFiles(), embed.NewStaticEmbedder())
	require.NoError(t, err)
	t.Cleanup(func() { _ = terms.Close() })
	return vectors
}

func TestSemanticSearch_RanksSimilarContentFirst(t *testing.T) {
	s := NewSemanticStrategy(buildVectorIndex(t))

	results, err := s.Search(context.Background(),
		"database connection pooling", DefaultOptions())
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, "src/db.go", results[0].FilePath)
	assert.Equal(t, 2, results[0].LineNumber)
	assert.Equal(t, MatchSemantic, results[0].MatchType)
	assert.Greater(t, results[0].Score, 0.5)
}

func TestSemanticSearch_EmptyQuery(t *testing.T) {
	s := NewSemanticStrategy(buildVectorIndex(t))

	results, err := s.Search(context.Background(), "  ", DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSemanticSearch_DeclaresMLRequirement(t *testing.T) {
	s := NewSemanticStrategy(nil)
	res := s.RequiredResources()
	assert.True(t, res.RequiresML)
	assert.True(t, res.RequiresIndex)
}
