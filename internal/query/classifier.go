// Package query analyzes raw query strings: classifying them into
// coarse shapes and scoring how much they would benefit from semantic
// search. Both analyses are deterministic and depend only on the query
// text.
package query

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Type is the coarse shape of a query.
type Type int

const (
	// TypeExactPhrase is a quoted or short literal query.
	TypeExactPhrase Type = iota
	// TypeConceptual is a multi-word natural-language query.
	TypeConceptual
	// TypeFileExtension is a query that filters by file extension.
	TypeFileExtension
	// TypeCodePattern is a query built around a code keyword.
	TypeCodePattern
	// TypeRegexLike is a query containing regex metacharacters.
	TypeRegexLike
)

// String returns the human-readable type name.
func (t Type) String() string {
	switch t {
	case TypeExactPhrase:
		return "exact-phrase"
	case TypeConceptual:
		return "conceptual"
	case TypeFileExtension:
		return "file-extension"
	case TypeCodePattern:
		return "code-pattern"
	case TypeRegexLike:
		return "regex-like"
	default:
		return "unknown"
	}
}

// DefaultClassifierCacheSize bounds the classification LRU cache.
const DefaultClassifierCacheSize = 1024

// Classifier assigns a Type to each query. Classification is total:
// every string maps to exactly one type.
type Classifier struct {
	cache *lru.Cache[string, Type]
}

// NewClassifier creates a classifier with an LRU result cache.
func NewClassifier() *Classifier {
	cache, _ := lru.New[string, Type](DefaultClassifierCacheSize)
	return &Classifier{cache: cache}
}

// Classify determines the query type. Checks run in priority order:
// quoted phrase, regex shape, file extension, code keyword, word
// count. The first match wins.
func (c *Classifier) Classify(query string) Type {
	if t, ok := c.cache.Get(query); ok {
		return t
	}

	t := classify(query)
	c.cache.Add(query, t)
	return t
}

func classify(query string) Type {
	// Quotes force exact matching no matter what else the query holds.
	if strings.Contains(query, `"`) {
		return TypeExactPhrase
	}

	if LooksLikeRegex(query) {
		return TypeRegexLike
	}

	if ContainsFileExtensions(query) {
		return TypeFileExtension
	}

	if ContainsCodeKeywords(query) {
		return TypeCodePattern
	}

	if len(strings.Fields(query)) > 2 {
		return TypeConceptual
	}

	return TypeExactPhrase
}
