package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_OrdersByScoreThenPathThenLine(t *testing.T) {
	merged := Merge([][]Result{
		{
			{FilePath: "b.go", LineNumber: 5, Score: 0.8},
			{FilePath: "a.go", LineNumber: 9, Score: 0.8},
		},
		{
			{FilePath: "a.go", LineNumber: 2, Score: 0.9},
			{FilePath: "a.go", LineNumber: 1, Score: 0.8},
		},
	}, 100)

	require.Len(t, merged, 4)
	assert.Equal(t, "a.go", merged[0].FilePath)
	assert.Equal(t, 2, merged[0].LineNumber)
	assert.Equal(t, 1, merged[1].LineNumber)
	assert.Equal(t, 9, merged[2].LineNumber)
	assert.Equal(t, "b.go", merged[3].FilePath)
}

func TestMerge_ScoresNonIncreasing(t *testing.T) {
	merged := Merge([][]Result{
		{
			{FilePath: "x.go", LineNumber: 1, Score: 0.2},
			{FilePath: "x.go", LineNumber: 2, Score: 0.9},
		},
		{
			{FilePath: "y.go", LineNumber: 3, Score: 0.5},
		},
	}, 100)

	for i := 1; i < len(merged); i++ {
		assert.LessOrEqual(t, merged[i].Score, merged[i-1].Score)
	}
}

func TestMerge_DeduplicatesKeepingHighestScore(t *testing.T) {
	merged := Merge([][]Result{
		{{FilePath: "a.go", LineNumber: 7, Score: 0.6, MatchType: MatchKeyword}},
		{{FilePath: "a.go", LineNumber: 7, Score: 0.9, MatchType: MatchFuzzy}},
		{{FilePath: "a.go", LineNumber: 7, Score: 0.4, MatchType: MatchRegex}},
	}, 100)

	require.Len(t, merged, 1)
	assert.Equal(t, 0.9, merged[0].Score)
	assert.Equal(t, MatchFuzzy, merged[0].MatchType)
}

func TestMerge_NoDuplicatePositions(t *testing.T) {
	merged := Merge([][]Result{
		{
			{FilePath: "a.go", LineNumber: 1, Score: 0.5},
			{FilePath: "a.go", LineNumber: 2, Score: 0.5},
		},
		{
			{FilePath: "a.go", LineNumber: 1, Score: 0.7},
			{FilePath: "b.go", LineNumber: 1, Score: 0.3},
		},
	}, 100)

	seen := map[resultKey]bool{}
	for _, r := range merged {
		key := resultKey{r.FilePath, r.LineNumber}
		assert.False(t, seen[key], "duplicate position %s:%d", r.FilePath, r.LineNumber)
		seen[key] = true
	}
}

func TestMerge_Truncates(t *testing.T) {
	var partial []Result
	for i := 1; i <= 20; i++ {
		partial = append(partial, Result{FilePath: "a.go", LineNumber: i, Score: 0.5})
	}

	merged := Merge([][]Result{partial}, 5)
	assert.Len(t, merged, 5)
}

func TestMerge_Idempotent(t *testing.T) {
	once := Merge([][]Result{
		{
			{FilePath: "b.go", LineNumber: 3, Score: 0.7},
			{FilePath: "a.go", LineNumber: 1, Score: 0.9},
			{FilePath: "a.go", LineNumber: 1, Score: 0.5},
		},
	}, 10)

	twice := Merge([][]Result{once}, 10)
	assert.Equal(t, once, twice)
}

func TestMerge_Empty(t *testing.T) {
	assert.Empty(t, Merge(nil, 10))
	assert.Empty(t, Merge([][]Result{{}, {}}, 10))
}
