package embed

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"unicode"
)

// StaticEmbedder produces deterministic hash-based embeddings with no
// model or network dependency. Identifier tokens and character
// trigrams are folded into fixed buckets, which keeps related lines
// near each other without real semantic understanding.
type StaticEmbedder struct {
	mu     sync.RWMutex
	closed bool
}

// codeStopWords are keywords and declaration noise common in the
// code loupe indexes; they carry no signal for line similarity.
var codeStopWords = map[string]bool{
	"func": true, "function": true, "def": true, "fn": true,
	"class": true, "struct": true, "interface": true, "type": true,
	"return": true, "import": true, "package": true, "const": true,
	"var": true, "let": true, "int": true, "string": true,
	"bool": true, "void": true, "true": true, "false": true,
	"nil": true, "null": true, "this": true, "self": true, "new": true,
}

const (
	identifierWeight = 0.7
	trigramWeight    = 0.3
	trigramSize      = 3
)

// NewStaticEmbedder creates a static embedder.
func NewStaticEmbedder() *StaticEmbedder {
	return &StaticEmbedder{}
}

// Embed generates an embedding for a single text. Blank input maps to
// the zero vector.
func (e *StaticEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.mu.RLock()
	closed := e.closed
	e.mu.RUnlock()
	if closed {
		return nil, fmt.Errorf("embedder is closed")
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return make([]float32, StaticDimensions), nil
	}

	vector := make([]float32, StaticDimensions)
	for _, token := range identifierTokens(trimmed) {
		vector[bucket(token)] += identifierWeight
	}
	for _, gram := range trigrams(trimmed) {
		vector[bucket(gram)] += trigramWeight
	}
	return normalizeVector(vector), nil
}

// EmbedBatch embeds each text in order.
func (e *StaticEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := e.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embedding text %d: %w", i, err)
		}
		results[i] = v
	}
	return results, nil
}

// identifierTokens splits text into lowercase word tokens, breaking
// identifiers apart and dropping stop words.
func identifierTokens(text string) []string {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	var tokens []string
	for _, word := range words {
		for _, part := range splitCodeToken(word) {
			lower := strings.ToLower(part)
			if lower != "" && !codeStopWords[lower] {
				tokens = append(tokens, lower)
			}
		}
	}
	return tokens
}

// splitCodeToken breaks an identifier into its words: snake_case
// segments first, then camelCase runs inside each segment.
func splitCodeToken(token string) []string {
	if !strings.Contains(token, "_") {
		return splitCamelCase(token)
	}

	var parts []string
	for _, seg := range strings.Split(token, "_") {
		if seg != "" {
			parts = append(parts, splitCamelCase(seg)...)
		}
	}
	return parts
}

// splitCamelCase splits a camelCase run, keeping acronyms whole
// (HTTPServer -> HTTP, Server).
func splitCamelCase(s string) []string {
	runes := []rune(s)
	parts := []string{}

	start := 0
	for i := 1; i < len(runes); i++ {
		if !unicode.IsUpper(runes[i]) {
			continue
		}
		prevIsLower := unicode.IsLower(runes[i-1])
		nextIsLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
		if prevIsLower || nextIsLower {
			if i > start {
				parts = append(parts, string(runes[start:i]))
			}
			start = i
		}
	}
	if start < len(runes) {
		parts = append(parts, string(runes[start:]))
	}
	return parts
}

// trigrams yields sliding character windows over the lowercased
// letters and digits of text, ignoring everything else.
func trigrams(text string) []string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	flat := b.String()
	if len(flat) < trigramSize {
		return nil
	}
	grams := make([]string, 0, len(flat)-trigramSize+1)
	for i := 0; i+trigramSize <= len(flat); i++ {
		grams = append(grams, flat[i:i+trigramSize])
	}
	return grams
}

// bucket maps a string to a vector index with FNV-64.
func bucket(s string) int {
	h := fnv.New64()
	_, _ = h.Write([]byte(s))
	return int(h.Sum64() % StaticDimensions)
}

// Dimensions returns the embedding dimension.
func (e *StaticEmbedder) Dimensions() int {
	return StaticDimensions
}

// ModelName returns the model identifier.
func (e *StaticEmbedder) ModelName() string {
	return "static"
}

// Available reports whether the embedder is ready (true until closed).
func (e *StaticEmbedder) Available(_ context.Context) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return !e.closed
}

// Close releases resources.
func (e *StaticEmbedder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}
