package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loupe-search/loupe/internal/scanner"
)

func TestFuzzySearch_ToleratesTypo(t *testing.T) {
	s := NewFuzzyStrategy(testCorpus())

	results, err := s.Search(context.Background(), "databse", DefaultOptions())
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, "src/db.go", results[0].FilePath)
	assert.Equal(t, 2, results[0].LineNumber)
	assert.Equal(t, MatchFuzzy, results[0].MatchType)
	assert.GreaterOrEqual(t, results[0].Score, DefaultMinScore)
}

func TestFuzzySearch_ExactSubstringScoresHigher(t *testing.T) {
	exact := fuzzyScore("database", "// database connection pooling", false)
	typo := fuzzyScore("databse", "// database connection pooling", false)

	assert.Greater(t, exact, typo)
	assert.LessOrEqual(t, exact, 1.0)
}

func TestFuzzySearch_EmptyQuery(t *testing.T) {
	s := NewFuzzyStrategy(testCorpus())

	results, err := s.Search(context.Background(), "   ", DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFuzzyTokenScore_EditDistance(t *testing.T) {
	// One edit away from an eight-letter token.
	score := fuzzyTokenScore([]string{"databse"}, []string{"database"})
	assert.GreaterOrEqual(t, score, 0.875)
	assert.LessOrEqual(t, score, 1.0)

	// Unrelated tokens score zero.
	assert.Equal(t, 0.0, fuzzyTokenScore([]string{"zzzzzz"}, []string{"qqkkww"}))
}

func TestFuzzySearch_SkipsUnrelatedLines(t *testing.T) {
	s := NewFuzzyStrategy(NewCorpus([]scanner.File{
		{Path: "a.txt", Lines: []string{"completely unrelated words"}},
	}))

	opts := DefaultOptions()
	opts.MinScore = 0.6

	results, err := s.Search(context.Background(), "xylophone", opts)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFuzzySearch_Cancellation(t *testing.T) {
	s := NewFuzzyStrategy(testCorpus())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Search(ctx, "database", DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}
