package search

import (
	"context"
	"strings"
)

const (
	phraseBonus = 0.3

	// Reverse containment only counts for content tokens of at least
	// this many bytes; articles and two-letter abbreviations sit
	// inside almost any query token.
	minReverseTokenLen = 3
)

// KeywordStrategy matches query tokens against line tokens with a
// partial-match bonus and a phrase bonus for consecutive tokens.
type KeywordStrategy struct {
	corpus *Corpus
}

// NewKeywordStrategy builds a keyword strategy over the corpus.
func NewKeywordStrategy(corpus *Corpus) *KeywordStrategy {
	return &KeywordStrategy{corpus: corpus}
}

func (s *KeywordStrategy) Name() string { return "keyword" }

func (s *KeywordStrategy) RequiredResources() Resources {
	return Resources{MinMemoryMB: 10}
}

func (s *KeywordStrategy) Search(ctx context.Context, query string, opts *Options) ([]Result, error) {
	queryTokens := tokenize(query, opts.CaseSensitive)
	if len(queryTokens) == 0 {
		return []Result{}, nil
	}

	results := []Result{}
	for _, f := range s.corpus.Files() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i, line := range f.Lines {
			content := strings.TrimSpace(line)
			contentTokens := tokenize(content, opts.CaseSensitive)
			score := keywordScore(queryTokens, contentTokens)
			if score <= 0 || score < opts.MinScore {
				continue
			}

			start, end := matchPosition(content, queryTokens[0])
			results = append(results, Result{
				FilePath:   f.Path,
				LineNumber: i + 1,
				Content:    content,
				Score:      score,
				MatchType:  MatchKeyword,
				StartChar:  start,
				EndChar:    end,
			})
		}
	}

	sortResults(results)
	if len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}
	return results, nil
}

// keywordScore awards each query token a full point for an exact
// token hit or half a point for a substring hit in either direction
// (reverse hits need a content token of minReverseTokenLen bytes),
// normalized by query length, plus a phrase bonus when the query
// tokens appear consecutively.
func keywordScore(queryTokens, contentTokens []string) float64 {
	if len(queryTokens) == 0 || len(contentTokens) == 0 {
		return 0
	}

	contentSet := make(map[string]bool, len(contentTokens))
	for _, t := range contentTokens {
		contentSet[t] = true
	}

	score := 0.0
	for _, qt := range queryTokens {
		if contentSet[qt] {
			score += 1.0
			continue
		}
		for _, ct := range contentTokens {
			if strings.Contains(ct, qt) ||
				(len(ct) >= minReverseTokenLen && strings.Contains(qt, ct)) {
				score += 0.5
				break
			}
		}
	}

	base := score / float64(len(queryTokens))
	bonus := consecutiveBonus(queryTokens, contentTokens)

	// A saturated base score still needs room to rank phrase matches
	// above scattered-token matches.
	if base >= 1.0 && bonus > 0 {
		return 0.95 + bonus*0.05
	}
	if s := base + bonus; s < 1.0 {
		return s
	}
	return 1.0
}

func consecutiveBonus(queryTokens, contentTokens []string) float64 {
	if len(queryTokens) < 2 || len(contentTokens) < len(queryTokens) {
		return 0
	}
	for i := 0; i <= len(contentTokens)-len(queryTokens); i++ {
		match := true
		for j, qt := range queryTokens {
			if contentTokens[i+j] != qt {
				match = false
				break
			}
		}
		if match {
			return phraseBonus
		}
	}
	return 0
}

// matchPosition locates the first occurrence of token in line,
// case-insensitively, as byte offsets.
func matchPosition(line, token string) (int, int) {
	if start := strings.Index(strings.ToLower(line), strings.ToLower(token)); start >= 0 {
		return start, start + len(token)
	}
	end := len(line)
	if end > 50 {
		end = 50
	}
	return 0, end
}
