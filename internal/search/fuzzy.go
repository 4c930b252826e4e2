package search

import (
	"context"
	"strings"

	"github.com/xrash/smetrics"
)

const (
	maxEditDistance = 4

	fuzzySimilarityWeight = 0.4
	fuzzyTokenWeight      = 0.3
	fuzzyEditWeight       = 0.2
	fuzzySubstringBonus   = 0.3
)

// FuzzyStrategy matches with typo tolerance by combining Jaro-Winkler
// similarity, per-token edit distance, and a substring bonus.
type FuzzyStrategy struct {
	corpus *Corpus
}

// NewFuzzyStrategy builds a fuzzy strategy over the corpus.
func NewFuzzyStrategy(corpus *Corpus) *FuzzyStrategy {
	return &FuzzyStrategy{corpus: corpus}
}

func (s *FuzzyStrategy) Name() string { return "fuzzy" }

func (s *FuzzyStrategy) RequiredResources() Resources {
	return Resources{MinMemoryMB: 20, CPUIntensive: true}
}

func (s *FuzzyStrategy) Search(ctx context.Context, query string, opts *Options) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return []Result{}, nil
	}

	results := []Result{}
	for _, f := range s.corpus.Files() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i, line := range f.Lines {
			content := strings.TrimSpace(line)
			if content == "" {
				continue
			}

			score := fuzzyScore(query, content, opts.CaseSensitive)
			if score <= 0 || score < opts.MinScore {
				continue
			}

			start, end := fuzzyMatchPosition(content, query)
			results = append(results, Result{
				FilePath:   f.Path,
				LineNumber: i + 1,
				Content:    content,
				Score:      score,
				MatchType:  MatchFuzzy,
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

// fuzzyScore combines whole-line similarity, per-token matching, a
// best-substring edit distance, and a literal substring bonus.
func fuzzyScore(query, content string, caseSensitive bool) float64 {
	q := fold(query, caseSensitive)
	c := fold(content, caseSensitive)

	similarity := smetrics.JaroWinkler(c, q, 0.7, 4)

	tokenScore := fuzzyTokenScore(tokenize(q, true), tokenize(c, true))

	editScore := bestSubstringEditScore(q, c)

	bonus := 0.0
	if strings.Contains(c, q) {
		bonus = fuzzySubstringBonus
	}

	combined := similarity*fuzzySimilarityWeight +
		tokenScore*fuzzyTokenWeight +
		editScore*fuzzyEditWeight +
		bonus
	if combined > 1.0 {
		return 1.0
	}
	return combined
}

// fuzzyTokenScore scores each query token by its best match among the
// content tokens, by similarity or by edit distance, and normalizes
// over the query token count.
func fuzzyTokenScore(queryTokens, contentTokens []string) float64 {
	if len(queryTokens) == 0 || len(contentTokens) == 0 {
		return 0
	}

	total := 0.0
	matched := 0
	for _, qt := range queryTokens {
		best := 0.0
		for _, ct := range contentTokens {
			if sim := smetrics.JaroWinkler(ct, qt, 0.7, 4); sim > best {
				best = sim
			}
			dist := smetrics.WagnerFischer(qt, ct, 1, 1, 1)
			if dist <= maxEditDistance {
				longer := len(qt)
				if len(ct) > longer {
					longer = len(ct)
				}
				if score := 1 - float64(dist)/float64(longer); score > best {
					best = score
				}
			}
		}
		if best > 0.1 {
			total += best
			matched++
		}
	}

	if matched == 0 {
		return 0
	}
	return total / float64(len(queryTokens))
}

// bestSubstringEditScore slides windows of roughly the query's length
// across the content and scores the closest substring.
func bestSubstringEditScore(query, content string) float64 {
	n := len(query)
	if n == 0 || len(content) < n {
		return 0
	}

	best := 0.0
	for _, size := range []int{n, n + 1, n + 2} {
		if size > len(content) {
			continue
		}
		for start := 0; start+size <= len(content); start++ {
			sub := content[start : start+size]
			dist := smetrics.WagnerFischer(query, sub, 1, 1, 1)
			if dist > maxEditDistance {
				continue
			}
			longer := n
			if size > longer {
				longer = size
			}
			if score := 1 - float64(dist)/float64(longer); score > best {
				best = score
			}
		}
	}
	return best
}

// fuzzyMatchPosition approximates the matched span: a literal
// substring hit when present, otherwise the start of the line.
func fuzzyMatchPosition(content, query string) (int, int) {
	lower := strings.ToLower(content)
	q := strings.ToLower(query)
	if start := strings.Index(lower, q); start >= 0 {
		return start, start + len(q)
	}
	end := len(content)
	if limit := 2 * len(query); end > limit {
		end = limit
	}
	return 0, end
}
