// Package search implements the adaptive search core: the strategy
// contract, the five concrete strategies, the selector that plans
// which strategies to run, and the engine that executes the plan and
// merges results.
package search

import "context"

// MatchType identifies which technique produced a result.
type MatchType string

const (
	MatchExact    MatchType = "exact"
	MatchKeyword  MatchType = "keyword"
	MatchFuzzy    MatchType = "fuzzy"
	MatchRegex    MatchType = "regex"
	MatchSemantic MatchType = "semantic"
	MatchTfIdf    MatchType = "tfidf"
	MatchHybrid   MatchType = "hybrid"
)

// Result is one matched line.
type Result struct {
	FilePath      string    `json:"file_path"`
	LineNumber    int       `json:"line_number"` // 1-based
	Content       string    `json:"content"`
	Score         float64   `json:"score"` // [0, 1]
	MatchType     MatchType `json:"match_type"`
	StartChar     int       `json:"start_char"` // byte offset into Content
	EndChar       int       `json:"end_char"`
	ContextBefore []string  `json:"context_before,omitempty"`
	ContextAfter  []string  `json:"context_after,omitempty"`
}

// Resources declares what a strategy needs to run. The selector
// prunes strategies whose requirements cannot be met instead of
// letting them fail at runtime.
type Resources struct {
	MinMemoryMB   int
	RequiresML    bool
	RequiresIndex bool
	CPUIntensive  bool
}

// Strategy is one concrete matching technique. Zero matches is
// success with an empty slice, never an error.
type Strategy interface {
	Name() string
	Search(ctx context.Context, query string, opts *Options) ([]Result, error)
	RequiredResources() Resources
}
