package cmd

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/loupe-search/loupe/internal/errors"
	"github.com/loupe-search/loupe/internal/search"
	"github.com/loupe-search/loupe/internal/ui"
)

// renderResults writes search results grouped by file.
func renderResults(w io.Writer, styles ui.Styles, query string, results []search.Result) {
	if len(results) == 0 {
		fmt.Fprintf(w, "%s\n", styles.Dim.Render(fmt.Sprintf("No matches for %q", query)))
		return
	}

	lastFile := ""
	for _, r := range results {
		if r.FilePath != lastFile {
			if lastFile != "" {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, styles.Path.Render(r.FilePath))
			lastFile = r.FilePath
		}

		for _, line := range r.ContextBefore {
			fmt.Fprintf(w, "  %s\n", styles.Context.Render(line))
		}
		fmt.Fprintf(w, "  %s %s %s\n",
			styles.LineNum.Render(fmt.Sprintf("%d:", r.LineNumber)),
			highlightMatch(styles, r),
			styles.Score.Render(fmt.Sprintf("(%.2f %s)", r.Score, r.MatchType)))
		for _, line := range r.ContextAfter {
			fmt.Fprintf(w, "  %s\n", styles.Context.Render(line))
		}
	}

	fmt.Fprintf(w, "\n%s\n", styles.Dim.Render(fmt.Sprintf("%d results", len(results))))
}

// highlightMatch styles the matched span within the result content.
func highlightMatch(styles ui.Styles, r search.Result) string {
	content := r.Content
	start, end := r.StartChar, r.EndChar
	if start < 0 || end > len(content) || start >= end {
		return content
	}
	return content[:start] + styles.Match.Render(content[start:end]) + content[end:]
}

// renderError writes a classified error with its suggestion.
func renderError(w io.Writer, styles ui.Styles, err error) {
	var lerr *errors.LoupeError
	if stderrors.As(err, &lerr) {
		fmt.Fprintf(w, "%s %s\n", styles.Error.Render("error:"), lerr.Message)
		if lerr.Suggestion != "" {
			fmt.Fprintf(w, "%s\n", styles.Dim.Render(lerr.Suggestion))
		}
		return
	}
	fmt.Fprintf(w, "%s %v\n", styles.Error.Render("error:"), err)
}

// stderrStyles picks styles for stderr output.
func stderrStyles() ui.Styles {
	return ui.GetStyles(noColor || !ui.ShouldUseColor(os.Stderr))
}

// stdoutStyles picks styles for stdout output.
func stdoutStyles() ui.Styles {
	return ui.GetStyles(noColor || !ui.ShouldUseColor(os.Stdout))
}
