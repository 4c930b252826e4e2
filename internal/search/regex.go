package search

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/loupe-search/loupe/internal/errors"
	"github.com/loupe-search/loupe/internal/query"
)

// DefaultRegexCacheSize bounds the compiled-pattern cache.
const DefaultRegexCacheSize = 256

// RegexStrategy compiles the query as a pattern and matches per line.
// Plain-text queries are escaped first; recognized code keywords are
// translated through a fixed pattern table.
type RegexStrategy struct {
	corpus *Corpus
	cache  *lru.Cache[string, *regexp.Regexp]
}

// NewRegexStrategy builds a regex strategy over the corpus.
func NewRegexStrategy(corpus *Corpus) *RegexStrategy {
	cache, _ := lru.New[string, *regexp.Regexp](DefaultRegexCacheSize)
	return &RegexStrategy{corpus: corpus, cache: cache}
}

func (s *RegexStrategy) Name() string { return "regex" }

func (s *RegexStrategy) RequiredResources() Resources {
	return Resources{MinMemoryMB: 15, CPUIntensive: true}
}

func (s *RegexStrategy) Search(ctx context.Context, q string, opts *Options) ([]Result, error) {
	re, err := s.compile(q, opts)
	if err != nil {
		return nil, err
	}

	results := []Result{}
	for _, f := range s.corpus.Files() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i, line := range f.Lines {
			content := strings.TrimSpace(line)
			for _, loc := range re.FindAllStringIndex(content, -1) {
				score := regexScore(content, loc[0], loc[1])
				if score < opts.MinScore {
					continue
				}
				results = append(results, Result{
					FilePath:   f.Path,
					LineNumber: i + 1,
					Content:    content,
					Score:      score,
					MatchType:  MatchRegex,
					StartChar:  loc[0],
					EndChar:    loc[1],
				})
			}
		}
	}

	sortResults(results)
	results = dedupeResults(results)
	if len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}
	return results, nil
}

// compile builds or retrieves the cached pattern for the query.
func (s *RegexStrategy) compile(q string, opts *Options) (*regexp.Regexp, error) {
	key := fmt.Sprintf("%s:%t:%t", q, opts.CaseSensitive, opts.WholeWords)
	if re, ok := s.cache.Get(key); ok {
		return re, nil
	}

	var pattern string
	if query.LooksLikeRegex(q) {
		pattern = q
	} else {
		pattern = regexp.QuoteMeta(q)
		if opts.WholeWords {
			pattern = `\b` + pattern + `\b`
		}
	}
	if !opts.CaseSensitive {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.InvalidPattern(q, err)
	}
	s.cache.Add(key, re)
	return re, nil
}

// regexScore rates a match by coverage and position within the line.
func regexScore(content string, start, end int) float64 {
	matchLen := end - start
	if matchLen == 0 || len(content) == 0 {
		return 0
	}

	coverage := float64(matchLen) / float64(len(content))
	if coverage > 1 {
		coverage = 1
	}

	score := 0.7 + coverage*0.2
	if isWordBoundaryMatch(content, start, end) {
		score += 0.2
	}
	if start == 0 {
		score += 0.1
	}
	if matchLen < 3 {
		score -= 0.1
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func isWordBoundaryMatch(content string, start, end int) bool {
	startOK := start == 0 || !isWordByte(content[start-1])
	endOK := end >= len(content) || !isWordByte(content[end])
	return startOK && endOK
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// codePatternRegex maps recognized code keywords to search patterns.
var codePatternRegex = map[string]string{
	"TODO":     `TODO.*`,
	"FIXME":    `FIXME.*`,
	"HACK":     `HACK.*`,
	"NOTE":     `NOTE.*`,
	"WARNING":  `WARNING.*`,
	"ERROR":    `ERROR.*`,
	"BUG":      `BUG.*`,
	"FUNCTION": `fn\s+\w+`,
	"FN":       `fn\s+\w+`,
	"CLASS":    `class\s+\w+`,
	"STRUCT":   `struct\s+\w+`,
	"ENUM":     `enum\s+\w+`,
	"TRAIT":    `trait\s+\w+`,
	"IMPL":     `impl\s+\w+`,
	"IMPORT":   `import\s+.*`,
	"EXPORT":   `export\s+.*`,
	"ASYNC":    `async\s+fn\s+\w+`,
	"AWAIT":    `await\s+.*`,
}

// CodePatternToRegex translates a code keyword into its search
// pattern. Unrecognized input becomes an escaped prefix match.
func CodePatternToRegex(keyword string) string {
	if p, ok := codePatternRegex[strings.ToUpper(keyword)]; ok {
		return p
	}
	return regexp.QuoteMeta(keyword) + ".*"
}
