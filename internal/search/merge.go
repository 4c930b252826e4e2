package search

import "sort"

// Merge combines partial result lists from one or more strategies
// into a single ranked list: concatenate, sort by score descending
// with (path, line) tiebreaks, drop duplicate (path, line) entries
// keeping the highest-scoring one, and truncate to maxResults.
// Deterministic and idempotent.
func Merge(partials [][]Result, maxResults int) []Result {
	merged := []Result{}
	for _, p := range partials {
		merged = append(merged, p...)
	}

	sortResults(merged)
	merged = dedupeResults(merged)

	if maxResults > 0 && len(merged) > maxResults {
		merged = merged[:maxResults]
	}
	return merged
}

// sortResults orders by score descending, then file path ascending,
// then line number ascending.
func sortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].FilePath != results[j].FilePath {
			return results[i].FilePath < results[j].FilePath
		}
		return results[i].LineNumber < results[j].LineNumber
	})
}

type resultKey struct {
	path string
	line int
}

// dedupeResults removes entries sharing (path, line), keeping the
// first occurrence. Input must already be sorted, so the kept entry
// is the highest-scoring one.
func dedupeResults(results []Result) []Result {
	if len(results) < 2 {
		return results
	}
	seen := make(map[resultKey]bool, len(results))
	out := results[:0]
	for _, r := range results {
		key := resultKey{r.FilePath, r.LineNumber}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
