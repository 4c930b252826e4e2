package search

import "github.com/loupe-search/loupe/internal/errors"

// Default option values, applied by DefaultOptions and by the CLI
// when no config file overrides them.
const (
	DefaultMinScore     = 0.3
	DefaultMaxResults   = 100
	DefaultContextLines = 2
)

// Options controls filtering and presentation of search results.
// Shared inputs are read-only for the duration of a search.
type Options struct {
	// MinScore filters out results scoring below this value.
	MinScore float64
	// MaxResults caps the merged result list.
	MaxResults int
	// CaseSensitive disables the default case folding.
	CaseSensitive bool
	// WholeWords requires matches on word boundaries (regex paths).
	WholeWords bool
	// IncludeContext attaches ContextLines of surrounding lines.
	IncludeContext bool
	ContextLines   int
}

// DefaultOptions returns the standard option set.
func DefaultOptions() *Options {
	return &Options{
		MinScore:     DefaultMinScore,
		MaxResults:   DefaultMaxResults,
		ContextLines: DefaultContextLines,
	}
}

// Validate checks option ranges.
func (o *Options) Validate() error {
	if o.MinScore < 0 || o.MinScore > 1 {
		return errors.Newf(errors.ErrCodeInvalidOptions,
			"min score must be between 0 and 1, got %g", o.MinScore)
	}
	if o.MaxResults <= 0 {
		return errors.Newf(errors.ErrCodeInvalidOptions,
			"max results must be positive, got %d", o.MaxResults)
	}
	if o.ContextLines < 0 {
		return errors.Newf(errors.ErrCodeInvalidOptions,
			"context lines must not be negative, got %d", o.ContextLines)
	}
	return nil
}
