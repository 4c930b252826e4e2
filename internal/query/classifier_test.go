package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Type
	}{
		{"quoted phrase", `"exact match"`, TypeExactPhrase},
		{"quoted with code keyword", `"TODO" fix`, TypeExactPhrase},
		{"regex dot star", "pattern.*matching", TypeRegexLike},
		{"regex digit class", `\d+`, TypeRegexLike},
		{"regex char class", "[a-z]", TypeRegexLike},
		{"regex group", "(group)", TypeRegexLike},
		{"file extension alone", ".rs", TypeFileExtension},
		{"file extension with words", "rust files .rs", TypeFileExtension},
		{"python files", "python code .py", TypeFileExtension},
		{"single code keyword", "TODO", TypeCodePattern},
		{"function keyword", "function", TypeCodePattern},
		{"two word code query", "async function", TypeCodePattern},
		{"code keyword in long query", "function validate user input", TypeCodePattern},
		{"conceptual three words", "error handling patterns", TypeConceptual},
		{"conceptual question", "how does memory allocation work", TypeConceptual},
		{"single word default", "hello", TypeExactPhrase},
		{"two plain words", "hello world", TypeExactPhrase},
		{"empty query", "", TypeExactPhrase},
	}

	c := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.query))
		})
	}
}

func TestClassify_QuotesWinOverEverything(t *testing.T) {
	// A quote anywhere forces exact-phrase, even when the rest of the
	// query would match a higher-information pattern.
	c := NewClassifier()
	assert.Equal(t, TypeExactPhrase, c.Classify(`"pattern.*matching"`))
	assert.Equal(t, TypeExactPhrase, c.Classify(`"rust .rs"`))
	assert.Equal(t, TypeExactPhrase, c.Classify(`"async function"`))
}

func TestClassify_Deterministic(t *testing.T) {
	c := NewClassifier()
	queries := []string{"TODO", "error handling patterns", ".py files", `"x"`, "a.*b"}
	for _, q := range queries {
		first := c.Classify(q)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, c.Classify(q), "query %q", q)
		}
	}
}

func TestClassify_LongQueryConservativeKeywords(t *testing.T) {
	c := NewClassifier()

	// "const" alone is permissive-set only; in a long query it should
	// not force a code-pattern classification.
	assert.Equal(t, TypeCodePattern, c.Classify("const"))
	assert.Equal(t, TypeConceptual, c.Classify("const values in configuration files work"))
}

func TestContainsCodeKeywords(t *testing.T) {
	assert.True(t, ContainsCodeKeywords("function"))
	assert.True(t, ContainsCodeKeywords("TODO"))
	assert.True(t, ContainsCodeKeywords("async function"))
	assert.True(t, ContainsCodeKeywords("export class"))
	assert.False(t, ContainsCodeKeywords("hello world"))
}

func TestLooksLikeRegex(t *testing.T) {
	assert.True(t, LooksLikeRegex(".*pattern"))
	assert.True(t, LooksLikeRegex(`\d+`))
	assert.True(t, LooksLikeRegex("[a-z]"))
	assert.True(t, LooksLikeRegex("(group)"))
	assert.False(t, LooksLikeRegex("hello world"))
}

func TestExtensionsIn(t *testing.T) {
	assert.Equal(t, []string{"rs"}, ExtensionsIn("rust files .rs"))
	assert.Equal(t, []string{"py", "md"}, ExtensionsIn(".py and .md files"))
	assert.Empty(t, ExtensionsIn("no extensions here"))
}

func TestSimplify(t *testing.T) {
	assert.Equal(t, "validateUserInput", Simplify("function validateUserInput"))
	assert.Equal(t, "quick brown fox", Simplify("the quick brown fox"))
	assert.Equal(t, "authentication", Simplify("async await authentication"))
	assert.Equal(t, "search term", Simplify("the a an"))
}
