package cmd

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/loupe-search/loupe/internal/capability"
	"github.com/loupe-search/loupe/internal/config"
	"github.com/loupe-search/loupe/internal/embed"
	"github.com/loupe-search/loupe/internal/index"
	"github.com/loupe-search/loupe/internal/scanner"
	"github.com/loupe-search/loupe/internal/search"
)

// searchFlags holds CLI flags for search.
type searchFlags struct {
	mode          string
	minScore      float64
	limit         int
	context       int
	caseSensitive bool
	wholeWords    bool
	format        string
}

func newSearchCmd() *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search <query> [path]",
		Short: "Search file contents under a directory",
		Long: `Search file contents, picking the matching technique that fits
the query.

Examples:
  loupe search "TODO"
  loupe search "databse" src/
  loupe search "error handling patterns" --mode semantic
  loupe search 'fn\s+\w+' --mode regex --format json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 2 {
				root = args[1]
			}
			return runSearch(cmd, args[0], root, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.mode, "mode", "m", search.ModeAuto,
		"Strategy: auto, keyword, fuzzy, regex, tfidf, semantic, hybrid")
	cmd.Flags().Float64Var(&flags.minScore, "min-score", 0, "Minimum result score (0-1)")
	cmd.Flags().IntVarP(&flags.limit, "limit", "n", 0, "Maximum number of results")
	cmd.Flags().IntVarP(&flags.context, "context", "C", 0, "Lines of context around each match")
	cmd.Flags().BoolVar(&flags.caseSensitive, "case-sensitive", false, "Match case exactly")
	cmd.Flags().BoolVarP(&flags.wholeWords, "whole-words", "w", false, "Match whole words only")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func runSearch(cmd *cobra.Command, query, root string, flags searchFlags) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	opts := optionsFrom(cfg, flags)
	if err := opts.Validate(); err != nil {
		return err
	}

	files, err := scanner.New().Collect(ctx, &scanner.Options{
		RootDir:     root,
		Include:     cfg.Paths.Include,
		Exclude:     cfg.Paths.Exclude,
		MaxFileSize: int64(cfg.Paths.MaxFileSizeKB) * 1024,
	})
	if err != nil {
		return err
	}
	slog.Debug("corpus built", slog.Int("files", len(files)))

	detector := newDetector(cfg)
	neural := detector.Detect()
	slog.Debug("capability detected", slog.String("capability", neural.String()))

	terms, vectors, err := buildIndexes(ctx, files, flags.mode, neural)
	if err != nil {
		return err
	}
	if terms != nil {
		defer terms.Close()
	}

	engine := search.NewEngine(search.NewCorpus(files), terms, vectors, neural)
	results, err := engine.Search(ctx, query, opts, flags.mode)
	if err != nil {
		return err
	}

	if flags.format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	renderResults(cmd.OutOrStdout(), stdoutStyles(), query, results)
	return nil
}

// optionsFrom layers CLI flags over the configured defaults.
func optionsFrom(cfg *config.Config, flags searchFlags) *search.Options {
	opts := &search.Options{
		MinScore:       cfg.Search.MinScore,
		MaxResults:     cfg.Search.MaxResults,
		ContextLines:   cfg.Search.ContextLines,
		IncludeContext: cfg.Search.IncludeContext,
		CaseSensitive:  flags.caseSensitive,
		WholeWords:     flags.wholeWords,
	}
	if flags.minScore > 0 {
		opts.MinScore = flags.minScore
	}
	if flags.limit > 0 {
		opts.MaxResults = flags.limit
	}
	if flags.context > 0 {
		opts.IncludeContext = true
		opts.ContextLines = flags.context
	}
	return opts
}

func newDetector(cfg *config.Config) *capability.Detector {
	var opts []capability.Option
	if cfg.Model.Path != "" {
		opts = append(opts, capability.WithModelPath(cfg.Model.Path))
	}
	return capability.NewDetector(opts...)
}

// buildIndexes constructs only the indexes the requested mode can
// use. The term index backs tfidf; the vector index backs semantic
// and is skipped when capability is absent.
func buildIndexes(ctx context.Context, files []scanner.File, mode string, neural capability.Capability) (*index.TermIndex, *index.VectorIndex, error) {
	wantTerms := mode == search.ModeAuto || mode == "" ||
		mode == search.ModeTfIdf || mode == search.ModeHybrid
	wantVectors := neural.SemanticReady() &&
		(mode == search.ModeAuto || mode == "" ||
			mode == search.ModeSemantic || mode == search.ModeHybrid)

	if !wantTerms && !wantVectors {
		return nil, nil, nil
	}

	var embedder embed.Embedder
	if wantVectors {
		embedder = embed.NewStaticEmbedder()
	}

	terms, vectors, err := index.Build(ctx, files, embedder)
	if err != nil {
		return nil, nil, err
	}
	if !wantTerms {
		_ = terms.Close()
		terms = nil
	}
	return terms, vectors, nil
}
