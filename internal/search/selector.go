package search

import (
	"strings"

	"github.com/loupe-search/loupe/internal/capability"
	"github.com/loupe-search/loupe/internal/query"
)

// QualityGate is the minimum primary result count below which a
// Sequential plan runs its fallback strategy.
const QualityGate = 3

// Borderline semantic-need band that selects a Hybrid plan.
const (
	hybridBandLow  = 0.4
	hybridBandHigh = 0.6
)

// PlanKind describes how the planned strategies are executed.
type PlanKind int

const (
	// PlanSingle runs one strategy.
	PlanSingle PlanKind = iota
	// PlanSequential runs the primary, then the fallback when the
	// primary yields fewer than QualityGate results.
	PlanSequential
	// PlanHybrid runs all strategies unconditionally and merges by
	// weighted score.
	PlanHybrid
)

func (k PlanKind) String() string {
	switch k {
	case PlanSingle:
		return "single"
	case PlanSequential:
		return "sequential"
	case PlanHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// Plan is an ordered strategy selection produced by the Selector.
type Plan struct {
	Kind       PlanKind
	Strategies []Strategy
	// Weights scales each strategy's scores in a Hybrid plan. Empty
	// for Single and Sequential plans.
	Weights []float64
	// Query is the effective query text, possibly rewritten (code
	// keywords become regex patterns, extension tokens are stripped).
	Query string
}

// Selector turns query analysis and capability into a strategy plan.
// Ineligible strategies are pruned before the policy runs, so a plan
// never names a strategy that cannot execute.
type Selector struct {
	keyword  Strategy
	fuzzy    Strategy
	regex    Strategy
	tfidf    Strategy
	semantic Strategy

	capability capability.Capability
}

// NewSelector builds a selector over the available strategies. The
// tfidf and semantic strategies may be nil when their index is
// absent.
func NewSelector(keyword, fuzzy, regex, tfidf, semantic Strategy, neural capability.Capability) *Selector {
	s := &Selector{
		keyword:    keyword,
		fuzzy:      fuzzy,
		regex:      regex,
		tfidf:      tfidf,
		semantic:   semantic,
		capability: neural,
	}
	if s.semantic != nil && !s.eligible(s.semantic) {
		s.semantic = nil
	}
	if s.tfidf != nil && !s.eligible(s.tfidf) {
		s.tfidf = nil
	}
	return s
}

// eligible reports whether the strategy's declared requirements can
// be met right now.
func (s *Selector) eligible(st Strategy) bool {
	res := st.RequiredResources()
	if res.RequiresML && !s.capability.SemanticReady() {
		return false
	}
	return true
}

// Plan applies the decision policy for an analyzed query.
func (s *Selector) Plan(q string, qt query.Type, need query.NeedScore) Plan {
	switch qt {
	case query.TypeRegexLike:
		return Plan{Kind: PlanSingle, Strategies: []Strategy{s.regex}, Query: q}

	case query.TypeCodePattern:
		// Code keywords translate to fixed regex patterns. Semantic
		// is never selected for these.
		return Plan{
			Kind:       PlanSingle,
			Strategies: []Strategy{s.regex},
			Query:      CodePatternToRegex(q),
		}

	case query.TypeFileExtension:
		return Plan{
			Kind:       PlanSequential,
			Strategies: []Strategy{s.keyword, s.fuzzy},
			Query:      stripExtensionTokens(q),
		}

	case query.TypeConceptual:
		return s.planConceptual(q, need)

	default: // ExactPhrase
		return Plan{
			Kind:       PlanSequential,
			Strategies: []Strategy{s.keyword, s.fuzzy},
			Query:      q,
		}
	}
}

func (s *Selector) planConceptual(q string, need query.NeedScore) Plan {
	borderline := need.NeedsSemantic >= hybridBandLow && need.NeedsSemantic <= hybridBandHigh

	if s.semantic != nil {
		if borderline {
			// Neither technique's results are discarded; weight is
			// split proportionally to the need score.
			return Plan{
				Kind:       PlanHybrid,
				Strategies: []Strategy{s.keyword, s.semantic},
				Weights:    []float64{1 - need.NeedsSemantic, need.NeedsSemantic},
				Query:      q,
			}
		}
		if need.NeedsSemantic > hybridBandHigh {
			return Plan{
				Kind:       PlanSequential,
				Strategies: []Strategy{s.semantic, s.keyword},
				Query:      q,
			}
		}
	}

	if need.NeedsSemantic > hybridBandHigh && s.tfidf != nil {
		return Plan{
			Kind:       PlanSequential,
			Strategies: []Strategy{s.tfidf, s.keyword},
			Query:      q,
		}
	}

	return Plan{
		Kind:       PlanSequential,
		Strategies: []Strategy{s.keyword, s.fuzzy},
		Query:      q,
	}
}

// stripExtensionTokens removes extension and filler tokens from a
// file-extension query so the remaining words drive the match.
func stripExtensionTokens(q string) string {
	exts := make(map[string]bool)
	for _, e := range query.ExtensionsIn(q) {
		exts[e] = true
	}

	var kept []string
	for _, tok := range tokenize(q, false) {
		if tok == "file" || tok == "files" {
			continue
		}
		if exts[tok] {
			continue
		}
		kept = append(kept, tok)
	}
	if len(kept) == 0 {
		return q
	}
	return strings.Join(kept, " ")
}
