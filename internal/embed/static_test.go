package embed

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticEmbedder_Deterministic(t *testing.T) {
	e := NewStaticEmbedder()
	ctx := context.Background()

	a, err := e.Embed(ctx, "error handling in the search engine")
	require.NoError(t, err)
	b, err := e.Embed(ctx, "error handling in the search engine")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestStaticEmbedder_Dimensions(t *testing.T) {
	e := NewStaticEmbedder()

	v, err := e.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Len(t, v, StaticDimensions)
	assert.Equal(t, StaticDimensions, e.Dimensions())
}

func TestStaticEmbedder_UnitLength(t *testing.T) {
	e := NewStaticEmbedder()

	v, err := e.Embed(context.Background(), "database connection pooling")
	require.NoError(t, err)

	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-5)
}

func TestStaticEmbedder_EmptyText(t *testing.T) {
	e := NewStaticEmbedder()

	v, err := e.Embed(context.Background(), "   ")
	require.NoError(t, err)
	assert.Len(t, v, StaticDimensions)
	for _, x := range v {
		assert.Zero(t, x)
	}
}

func TestStaticEmbedder_SimilarTextsCloser(t *testing.T) {
	e := NewStaticEmbedder()
	ctx := context.Background()

	memMgmt, err := e.Embed(ctx, "memory management and allocation")
	require.NoError(t, err)
	memAlloc, err := e.Embed(ctx, "memory allocation strategies")
	require.NoError(t, err)
	unrelated, err := e.Embed(ctx, "banana smoothie recipe")
	require.NoError(t, err)

	related := CosineSimilarity(memMgmt, memAlloc)
	distant := CosineSimilarity(memMgmt, unrelated)
	assert.Greater(t, related, distant)
}

func TestStaticEmbedder_EmbedBatch(t *testing.T) {
	e := NewStaticEmbedder()
	ctx := context.Background()

	got, err := e.EmbedBatch(ctx, []string{"first", "second"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	single, err := e.Embed(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, single, got[0])
}

func TestStaticEmbedder_Close(t *testing.T) {
	e := NewStaticEmbedder()
	ctx := context.Background()

	assert.True(t, e.Available(ctx))
	require.NoError(t, e.Close())
	assert.False(t, e.Available(ctx))

	_, err := e.Embed(ctx, "text")
	assert.Error(t, err)
	_, err = e.EmbedBatch(ctx, []string{"text"})
	assert.Error(t, err)
}

func TestSplitCamelCase(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"camelCase", []string{"camel", "Case"}},
		{"HTTPServer", []string{"HTTP", "Server"}},
		{"simple", []string{"simple"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, splitCamelCase(tt.in))
		})
	}
}

func TestSplitCodeToken_SnakeCase(t *testing.T) {
	assert.Equal(t, []string{"parse", "query", "string"}, splitCodeToken("parse_query_string"))
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Zero(t, CosineSimilarity([]float32{1}, []float32{1, 2}))
	assert.Zero(t, CosineSimilarity([]float32{0, 0}, []float32{1, 2}))
}
