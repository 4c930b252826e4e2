package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loupe-search/loupe/internal/errors"
	"github.com/loupe-search/loupe/internal/scanner"
)

func TestRegexSearch_Pattern(t *testing.T) {
	s := NewRegexStrategy(testCorpus())

	results, err := s.Search(context.Background(), `func \w+\(`, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "src/db.go", results[0].FilePath)
	assert.Equal(t, 3, results[0].LineNumber)
	assert.Equal(t, MatchRegex, results[0].MatchType)
}

func TestRegexSearch_PlainTextIsEscaped(t *testing.T) {
	s := NewRegexStrategy(NewCorpus([]scanner.File{
		{Path: "a.txt", Lines: []string{"version 1.2 released", "version 1x2 beta"}},
	}))

	// Without regex metacharacters the query matches literally, so
	// the dot must not act as a wildcard.
	results, err := s.Search(context.Background(), "1,2", DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRegexSearch_CaseInsensitiveByDefault(t *testing.T) {
	s := NewRegexStrategy(testCorpus())

	results, err := s.Search(context.Background(), "todo item", DefaultOptions())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].LineNumber)
}

func TestRegexSearch_WholeWords(t *testing.T) {
	s := NewRegexStrategy(NewCorpus([]scanner.File{
		{Path: "a.txt", Lines: []string{"cat", "concatenate"}},
	}))

	opts := DefaultOptions()
	opts.WholeWords = true

	results, err := s.Search(context.Background(), "cat", opts)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].LineNumber)
}

func TestRegexSearch_InvalidPattern(t *testing.T) {
	s := NewRegexStrategy(testCorpus())

	_, err := s.Search(context.Background(), "[unclosed", DefaultOptions())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidPattern, errors.GetCode(err))
}

func TestRegexSearch_CachesCompiledPatterns(t *testing.T) {
	s := NewRegexStrategy(testCorpus())

	_, err := s.Search(context.Background(), `TODO.*`, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, s.cache.Len())

	_, err = s.Search(context.Background(), `TODO.*`, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, s.cache.Len())
}

func TestCodePatternToRegex(t *testing.T) {
	tests := []struct {
		keyword string
		want    string
	}{
		{"TODO", `TODO.*`},
		{"todo", `TODO.*`},
		{"FIXME", `FIXME.*`},
		{"function", `fn\s+\w+`},
		{"fn", `fn\s+\w+`},
		{"struct", `struct\s+\w+`},
		{"import", `import\s+.*`},
		{"async", `async\s+fn\s+\w+`},
		{"await", `await\s+.*`},
		{"something else", `something else.*`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CodePatternToRegex(tt.keyword), "keyword %q", tt.keyword)
	}
}

func TestRegexScore_Bounds(t *testing.T) {
	content := "TODO fix the parser"

	score := regexScore(content, 0, 4)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)

	// Line-start word-boundary matches rank above mid-line ones.
	mid := regexScore("see TODO fix", 4, 8)
	assert.Greater(t, score, mid)
}
