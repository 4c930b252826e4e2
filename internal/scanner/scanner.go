// Package scanner discovers and reads searchable text files under a
// project root.
package scanner

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/loupe-search/loupe/internal/errors"
)

// skipDirs are never descended into.
var skipDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"target":       {},
	"build":        {},
	"dist":         {},
	"__pycache__":  {},
	".cache":       {},
	".loupe":       {},
}

// Scanner walks a directory tree and streams readable text files.
type Scanner struct{}

// New creates a Scanner.
func New() *Scanner {
	return &Scanner{}
}

// Scan walks the tree rooted at opts.RootDir and streams results.
// Unreadable and binary files produce warning-level results rather
// than stopping the walk. The channel closes when the walk finishes
// or the context is cancelled.
func (s *Scanner) Scan(ctx context.Context, opts *Options) (<-chan Result, error) {
	if opts == nil {
		opts = &Options{}
	}

	rootDir := opts.RootDir
	if rootDir == "" {
		rootDir = "."
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, errors.New(errors.ErrCodePathNotFound,
			fmt.Sprintf("cannot scan %s", rootDir), err)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrCodePathNotFound,
			"root path is not a directory: %s", absRoot)
	}

	maxFileSize := opts.MaxFileSize
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}

	results := make(chan Result, 64)

	go func() {
		defer close(results)
		s.walk(ctx, absRoot, opts, maxFileSize, results)
	}()

	return results, nil
}

// Collect runs Scan and gathers all files into a slice, logging and
// dropping per-file errors.
func (s *Scanner) Collect(ctx context.Context, opts *Options) ([]File, error) {
	ch, err := s.Scan(ctx, opts)
	if err != nil {
		return nil, err
	}

	var files []File
	for res := range ch {
		if res.Err != nil {
			slog.Warn("skipping file", slog.String("error", res.Err.Error()))
			continue
		}
		files = append(files, res.File)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return files, nil
}

func (s *Scanner) walk(ctx context.Context, absRoot string, opts *Options, maxFileSize int64, results chan<- Result) {
	err := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// Report and keep walking the rest of the tree.
			send(ctx, results, Result{Err: errors.Wrap(errors.ErrCodeFilePermission, err)})
			return nil
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path == absRoot {
				return nil
			}
			if _, skip := skipDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
			if matchesAny(rel, d.Name(), opts.Exclude) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.wantFile(rel, d.Name(), opts) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			send(ctx, results, Result{Err: errors.Wrap(errors.ErrCodeFileNotFound, infoErr)})
			return nil
		}
		if info.Size() > maxFileSize {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			send(ctx, results, Result{Err: errors.New(errors.ErrCodeFilePermission,
				fmt.Sprintf("cannot read %s", rel), readErr)})
			return nil
		}
		if isBinary(data) {
			return nil
		}

		send(ctx, results, Result{File: File{
			Path:  rel,
			Lines: splitLines(data),
		}})
		return nil
	})
	if err != nil && err != ctx.Err() {
		send(ctx, results, Result{Err: err})
	}
}

// wantFile applies extension, include and exclude filters.
func (s *Scanner) wantFile(rel, base string, opts *Options) bool {
	if len(opts.Extensions) > 0 {
		ext := strings.TrimPrefix(filepath.Ext(base), ".")
		found := false
		for _, want := range opts.Extensions {
			if strings.EqualFold(ext, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if matchesAny(rel, base, opts.Exclude) {
		return false
	}

	if len(opts.Include) > 0 {
		return matchesAny(rel, base, opts.Include)
	}
	return true
}

// matchesAny checks a path against glob-style patterns. Patterns of
// the form "**/name/**" match any path containing that segment;
// otherwise the pattern is matched against the base name and the full
// relative path.
func matchesAny(rel, base string, patterns []string) bool {
	for _, p := range patterns {
		if segmentPattern(p) != "" {
			if pathHasSegment(rel, segmentPattern(p)) {
				return true
			}
			continue
		}
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
		if ok, _ := filepath.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// segmentPattern extracts the directory segment from "**/x/**"
// patterns, or returns empty for other shapes.
func segmentPattern(p string) string {
	if strings.HasPrefix(p, "**/") && strings.HasSuffix(p, "/**") {
		return strings.TrimSuffix(strings.TrimPrefix(p, "**/"), "/**")
	}
	return ""
}

func pathHasSegment(rel, segment string) bool {
	for _, part := range strings.Split(rel, "/") {
		if part == segment {
			return true
		}
	}
	return false
}

// isBinary checks the first 8KB for null bytes.
func isBinary(data []byte) bool {
	probe := data
	if len(probe) > 8192 {
		probe = probe[:8192]
	}
	return bytes.IndexByte(probe, 0) >= 0
}

// splitLines splits file content into lines without trailing newlines.
func splitLines(data []byte) []string {
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func send(ctx context.Context, results chan<- Result, r Result) {
	select {
	case results <- r:
	case <-ctx.Done():
	}
}
