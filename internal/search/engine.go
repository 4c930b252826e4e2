package search

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/loupe-search/loupe/internal/capability"
	"github.com/loupe-search/loupe/internal/errors"
	"github.com/loupe-search/loupe/internal/index"
	"github.com/loupe-search/loupe/internal/query"
)

// Mode names accepted by Engine.Search.
const (
	ModeAuto     = "auto"
	ModeKeyword  = "keyword"
	ModeFuzzy    = "fuzzy"
	ModeRegex    = "regex"
	ModeTfIdf    = "tfidf"
	ModeSemantic = "semantic"
	ModeHybrid   = "hybrid"
)

// Engine is the single entry point for searching: it analyzes the
// query, plans which strategies to run, executes the plan, and merges
// the partial results.
type Engine struct {
	corpus  *Corpus
	terms   *index.TermIndex
	vectors *index.VectorIndex
	neural  capability.Capability

	classifier *query.Classifier
	scorer     *query.Scorer

	keyword  *KeywordStrategy
	fuzzy    *FuzzyStrategy
	regex    *RegexStrategy
	tfidf    *TfIdfStrategy
	semantic *SemanticStrategy
}

// NewEngine builds an engine over the corpus and optional indexes.
// A nil terms index disables tfidf; a nil vectors index or a not
// Available capability disables semantic.
func NewEngine(corpus *Corpus, terms *index.TermIndex, vectors *index.VectorIndex, neural capability.Capability) *Engine {
	e := &Engine{
		corpus:     corpus,
		terms:      terms,
		vectors:    vectors,
		neural:     neural,
		classifier: query.NewClassifier(),
		scorer:     query.NewScorer(),
		keyword:    NewKeywordStrategy(corpus),
		fuzzy:      NewFuzzyStrategy(corpus),
		regex:      NewRegexStrategy(corpus),
	}
	if terms != nil {
		e.tfidf = NewTfIdfStrategy(terms)
	}
	if vectors != nil {
		e.semantic = NewSemanticStrategy(vectors)
	}
	return e
}

// Search runs a search in the given mode. Mode "auto" (or empty)
// plans strategies from query analysis; any other known mode forces
// one strategy. Zero matches is success with an empty slice.
func (e *Engine) Search(ctx context.Context, q string, opts *Options, mode string) ([]Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(q) == "" {
		return nil, errors.Newf(errors.ErrCodeQueryEmpty, "search query must not be empty").
			WithSuggestion("Provide a search term, e.g.: loupe search \"TODO\"")
	}

	plan, err := e.plan(q, mode)
	if err != nil {
		return nil, err
	}

	results, err := e.execute(ctx, plan, opts)
	if err != nil {
		return nil, err
	}

	if opts.IncludeContext {
		e.corpus.AttachContext(results, opts.ContextLines)
	}
	return results, nil
}

// plan resolves the mode into a strategy plan.
func (e *Engine) plan(q, mode string) (Plan, error) {
	switch mode {
	case "", ModeAuto:
		return e.planAuto(q), nil
	case ModeKeyword:
		return Plan{Kind: PlanSingle, Strategies: []Strategy{e.keyword}, Query: q}, nil
	case ModeFuzzy:
		return Plan{Kind: PlanSingle, Strategies: []Strategy{e.fuzzy}, Query: q}, nil
	case ModeRegex:
		return Plan{Kind: PlanSingle, Strategies: []Strategy{e.regex}, Query: q}, nil
	case ModeTfIdf:
		if e.tfidf == nil {
			return Plan{}, errors.IndexUnavailable(ModeTfIdf, "no term index was built")
		}
		return Plan{Kind: PlanSingle, Strategies: []Strategy{e.tfidf}, Query: q}, nil
	case ModeSemantic:
		if !e.neural.SemanticReady() {
			return Plan{}, errors.IndexUnavailable(ModeSemantic, e.neural.Reason)
		}
		if e.semantic == nil {
			return Plan{}, errors.IndexUnavailable(ModeSemantic, "no embedding index was built")
		}
		return Plan{Kind: PlanSingle, Strategies: []Strategy{e.semantic}, Query: q}, nil
	case ModeHybrid:
		return e.planHybrid(q), nil
	default:
		return Plan{}, errors.UnknownStrategy(mode)
	}
}

// planAuto selects strategies from query classification, semantic
// need, and capability.
func (e *Engine) planAuto(q string) Plan {
	qt := e.classifier.Classify(q)
	need := e.scorer.Score(q)

	var tfidf, semantic Strategy
	if e.tfidf != nil {
		tfidf = e.tfidf
	}
	if e.semantic != nil {
		semantic = e.semantic
	}
	selector := NewSelector(e.keyword, e.fuzzy, e.regex, tfidf, semantic, e.neural)
	plan := selector.Plan(q, qt, need)

	// Extension queries narrow the corpus to the named file types.
	if qt == query.TypeFileExtension {
		if exts := query.ExtensionsIn(q); len(exts) > 0 {
			narrowed := e.corpus.FilterExtensions(exts)
			plan.Strategies = []Strategy{
				NewKeywordStrategy(narrowed),
				NewFuzzyStrategy(narrowed),
			}
		}
	}

	slog.Debug("search plan",
		slog.String("query", q),
		slog.String("type", qt.String()),
		slog.Float64("needs_semantic", need.NeedsSemantic),
		slog.String("plan", plan.Kind.String()),
		slog.Int("strategies", len(plan.Strategies)))
	return plan
}

// planHybrid forces a parallel keyword + meaning-based plan, using
// the best meaning-based strategy available.
func (e *Engine) planHybrid(q string) Plan {
	need := e.scorer.Score(q)
	w := need.NeedsSemantic

	var second Strategy
	switch {
	case e.semantic != nil && e.neural.SemanticReady():
		second = e.semantic
	case e.tfidf != nil:
		second = e.tfidf
	default:
		second = e.fuzzy
		w = 0.5
	}

	return Plan{
		Kind:       PlanHybrid,
		Strategies: []Strategy{e.keyword, second},
		Weights:    []float64{1 - w, w},
		Query:      q,
	}
}

// execute runs the plan and merges partial results once.
func (e *Engine) execute(ctx context.Context, plan Plan, opts *Options) ([]Result, error) {
	switch plan.Kind {
	case PlanSequential:
		return e.executeSequential(ctx, plan, opts)
	case PlanHybrid:
		return e.executeHybrid(ctx, plan, opts)
	default:
		results, err := plan.Strategies[0].Search(ctx, plan.Query, opts)
		if err != nil {
			return nil, err
		}
		return Merge([][]Result{results}, opts.MaxResults), nil
	}
}

// executeSequential runs the primary strategy and escalates to the
// fallback when the primary yields too few results.
func (e *Engine) executeSequential(ctx context.Context, plan Plan, opts *Options) ([]Result, error) {
	primary, err := plan.Strategies[0].Search(ctx, plan.Query, opts)
	if err != nil {
		return nil, err
	}
	if len(primary) >= QualityGate || len(plan.Strategies) < 2 {
		return Merge([][]Result{primary}, opts.MaxResults), nil
	}

	slog.Debug("quality gate not met, running fallback",
		slog.String("primary", plan.Strategies[0].Name()),
		slog.String("fallback", plan.Strategies[1].Name()),
		slog.Int("primary_results", len(primary)))

	fallback, err := plan.Strategies[1].Search(ctx, plan.Query, opts)
	if err != nil {
		return nil, err
	}
	return Merge([][]Result{primary, fallback}, opts.MaxResults), nil
}

// executeHybrid runs all planned strategies in parallel, scales each
// partial list by its weight, re-applies the score floor to the
// weighted scores, and merges once. The merge is the single join
// point; no partial list is returned on failure.
func (e *Engine) executeHybrid(ctx context.Context, plan Plan, opts *Options) ([]Result, error) {
	partials := make([][]Result, len(plan.Strategies))

	g, gctx := errgroup.WithContext(ctx)
	for i, st := range plan.Strategies {
		g.Go(func() error {
			results, err := st.Search(gctx, plan.Query, opts)
			if err != nil {
				return err
			}
			partials[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range partials {
		weight := 1.0
		if i < len(plan.Weights) {
			weight = plan.Weights[i]
		}
		kept := partials[i][:0]
		for _, r := range partials[i] {
			r.Score *= weight
			if r.Score < opts.MinScore {
				continue
			}
			r.MatchType = MatchHybrid
			kept = append(kept, r)
		}
		partials[i] = kept
	}
	return Merge(partials, opts.MaxResults), nil
}
