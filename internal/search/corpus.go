package search

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/loupe-search/loupe/internal/scanner"
)

// Corpus is the read-only set of scanned files the traversal-backed
// strategies match against.
type Corpus struct {
	files  []scanner.File
	byPath map[string][]string
}

// NewCorpus wraps scanned files for searching.
func NewCorpus(files []scanner.File) *Corpus {
	byPath := make(map[string][]string, len(files))
	for _, f := range files {
		byPath[f.Path] = f.Lines
	}
	return &Corpus{files: files, byPath: byPath}
}

// Files returns the underlying file list.
func (c *Corpus) Files() []scanner.File {
	return c.files
}

// NumFiles returns the number of files in the corpus.
func (c *Corpus) NumFiles() int {
	return len(c.files)
}

// FilterExtensions returns a corpus restricted to files whose
// extension is in exts (without the leading dot).
func (c *Corpus) FilterExtensions(exts []string) *Corpus {
	want := make(map[string]bool, len(exts))
	for _, e := range exts {
		want[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}

	var filtered []scanner.File
	for _, f := range c.files {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(f.Path), "."))
		if want[ext] {
			filtered = append(filtered, f)
		}
	}
	return NewCorpus(filtered)
}

// AttachContext fills ContextBefore/ContextAfter on each result with
// up to n surrounding lines from the result's file.
func (c *Corpus) AttachContext(results []Result, n int) {
	if n <= 0 {
		return
	}
	for i := range results {
		lines, ok := c.byPath[results[i].FilePath]
		if !ok {
			continue
		}
		idx := results[i].LineNumber - 1
		if idx < 0 || idx >= len(lines) {
			continue
		}

		start := idx - n
		if start < 0 {
			start = 0
		}
		if start < idx {
			results[i].ContextBefore = append([]string(nil), lines[start:idx]...)
		}

		end := idx + 1 + n
		if end > len(lines) {
			end = len(lines)
		}
		if end > idx+1 {
			results[i].ContextAfter = append([]string(nil), lines[idx+1:end]...)
		}
	}
}

// tokenize splits text into lowercase alphanumeric tokens. Case is
// preserved when caseSensitive is set.
func tokenize(text string, caseSensitive bool) []string {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	if !caseSensitive {
		for i, t := range tokens {
			tokens[i] = strings.ToLower(t)
		}
	}
	return tokens
}

// fold lowercases unless the search is case sensitive.
func fold(s string, caseSensitive bool) string {
	if caseSensitive {
		return s
	}
	return strings.ToLower(s)
}
