package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loupe-search/loupe/internal/capability"
	"github.com/loupe-search/loupe/internal/embed"
	"github.com/loupe-search/loupe/internal/errors"
	"github.com/loupe-search/loupe/internal/index"
	"github.com/loupe-search/loupe/internal/scanner"
)

func engineFiles() []scanner.File {
	return []scanner.File{
		{Path: "notes.txt", Lines: []string{
			"Shopping list",
			"This is a TODO item",
			"Nothing else here",
		}},
		{Path: "src/db.go", Lines: []string{
			"package db",
			"// database connection pooling",
			"func Connect() error {",
		}},
	}
}

func newTestEngine(t *testing.T, withVectors bool, neural capability.Capability) *Engine {
	t.Helper()

	files := engineFiles()
	var embedder embed.Embedder
	if withVectors {
		embedder = embed.NewStaticEmbedder()
	}
	terms, vectors, err := index.Build(context.Background(), files, embedder)
	require.NoError(t, err)
	t.Cleanup(func() { _ = terms.Close() })

	return NewEngine(NewCorpus(files), terms, vectors, neural)
}

func TestEngineSearch_KeywordMode(t *testing.T) {
	e := newTestEngine(t, false, unavailable())

	results, err := e.Search(context.Background(), "todo", DefaultOptions(), ModeKeyword)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "notes.txt", results[0].FilePath)
	assert.Equal(t, 2, results[0].LineNumber)
	assert.Equal(t, MatchKeyword, results[0].MatchType)
	assert.GreaterOrEqual(t, results[0].Score, DefaultMinScore)
}

func TestEngineSearch_AutoTypoEscalatesToFuzzy(t *testing.T) {
	e := newTestEngine(t, false, unavailable())

	results, err := e.Search(context.Background(), "databse", DefaultOptions(), ModeAuto)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	var sawFuzzy bool
	for _, r := range results {
		if r.MatchType == MatchFuzzy {
			sawFuzzy = true
		}
	}
	assert.True(t, sawFuzzy, "expected the fallback fuzzy pass to contribute results")
}

func TestEngineSearch_AutoCodePatternUsesRegex(t *testing.T) {
	e := newTestEngine(t, false, unavailable())

	results, err := e.Search(context.Background(), "TODO", DefaultOptions(), ModeAuto)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, MatchRegex, results[0].MatchType)
	assert.Equal(t, "notes.txt", results[0].FilePath)
	assert.Equal(t, 2, results[0].LineNumber)
}

func TestEngineSearch_ExplicitSemanticWithoutCapability(t *testing.T) {
	e := newTestEngine(t, false, unavailable())

	_, err := e.Search(context.Background(), "error handling", DefaultOptions(), ModeSemantic)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeIndexUnavailable, errors.GetCode(err))
}

func TestEngineSearch_ExplicitTfIdfWithoutIndex(t *testing.T) {
	e := NewEngine(NewCorpus(engineFiles()), nil, nil, unavailable())

	_, err := e.Search(context.Background(), "database", DefaultOptions(), ModeTfIdf)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeIndexUnavailable, errors.GetCode(err))
}

func TestEngineSearch_TfIdfMode(t *testing.T) {
	e := newTestEngine(t, false, unavailable())

	results, err := e.Search(context.Background(), "database", DefaultOptions(), ModeTfIdf)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, MatchTfIdf, results[0].MatchType)
	assert.Equal(t, 1.0, results[0].Score)
}

func TestEngineSearch_SemanticMode(t *testing.T) {
	e := newTestEngine(t, true, available())

	results, err := e.Search(context.Background(),
		"database connection pooling", DefaultOptions(), ModeSemantic)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, MatchSemantic, results[0].MatchType)
	assert.Equal(t, "src/db.go", results[0].FilePath)
	assert.Equal(t, 2, results[0].LineNumber)
}

func TestEngineSearch_HybridMode(t *testing.T) {
	e := newTestEngine(t, true, available())

	results, err := e.Search(context.Background(),
		"database connection", DefaultOptions(), ModeHybrid)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for _, r := range results {
		assert.Equal(t, MatchHybrid, r.MatchType)
	}
}

func TestEngineSearch_HybridEnforcesMinScore(t *testing.T) {
	e := newTestEngine(t, false, unavailable())

	// The keyword pass scores "Shopping list" at 0.5 for the single
	// token hit; once weighted, that falls under the floor and must
	// not surface.
	opts := DefaultOptions()
	results, err := e.Search(context.Background(), "shopping groceries", opts, ModeHybrid)
	require.NoError(t, err)

	for _, r := range results {
		assert.GreaterOrEqual(t, r.Score, opts.MinScore)
	}
}

func TestEngineSearch_UnknownMode(t *testing.T) {
	e := newTestEngine(t, false, unavailable())

	_, err := e.Search(context.Background(), "anything", DefaultOptions(), "quantum")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnknownStrategy, errors.GetCode(err))
}

func TestEngineSearch_EmptyQuery(t *testing.T) {
	e := newTestEngine(t, false, unavailable())

	_, err := e.Search(context.Background(), "   ", DefaultOptions(), ModeAuto)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeQueryEmpty, errors.GetCode(err))
}

func TestEngineSearch_InvalidOptions(t *testing.T) {
	e := newTestEngine(t, false, unavailable())

	opts := DefaultOptions()
	opts.MinScore = 3

	_, err := e.Search(context.Background(), "todo", opts, ModeKeyword)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidOptions, errors.GetCode(err))
}

func TestEngineSearch_NilOptionsUsesDefaults(t *testing.T) {
	e := newTestEngine(t, false, unavailable())

	results, err := e.Search(context.Background(), "todo", nil, ModeKeyword)
	require.NoError(t, err)
	assert.NotEmpty(t, results)
}

func TestEngineSearch_IncludeContext(t *testing.T) {
	e := newTestEngine(t, false, unavailable())

	opts := DefaultOptions()
	opts.IncludeContext = true
	opts.ContextLines = 1

	results, err := e.Search(context.Background(), "todo", opts, ModeKeyword)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, []string{"Shopping list"}, results[0].ContextBefore)
	assert.Equal(t, []string{"Nothing else here"}, results[0].ContextAfter)
}

func TestEngineSearch_MergedResultsHoldInvariants(t *testing.T) {
	e := newTestEngine(t, false, unavailable())

	opts := DefaultOptions()
	opts.MinScore = 0.1

	results, err := e.Search(context.Background(), "database connection", opts, ModeAuto)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(results), opts.MaxResults)
	seen := map[resultKey]bool{}
	for i, r := range results {
		if i > 0 {
			assert.LessOrEqual(t, r.Score, results[i-1].Score)
		}
		key := resultKey{r.FilePath, r.LineNumber}
		assert.False(t, seen[key])
		seen[key] = true
	}
}

func TestEngineSearch_Cancellation(t *testing.T) {
	e := newTestEngine(t, false, unavailable())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Search(ctx, "todo", DefaultOptions(), ModeKeyword)
	assert.Error(t, err)
}
