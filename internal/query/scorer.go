package query

import (
	"strings"
	"unicode"
)

// NeedScore is the semantic-need assessment for a query.
type NeedScore struct {
	// NeedsSemantic estimates how much the query would benefit from
	// embedding-based search, in [0, 1].
	NeedsSemantic float64
	// Confidence is how reliable the assessment is, in [0, 1].
	Confidence float64
	// Explanation is a short human-readable justification.
	Explanation string
}

// Feature combination weights. Length contributes strongly so that
// longer operator-free queries skew toward semantic search.
const (
	wSemantic  = 0.5
	wCoherence = 0.1
	wConcepts  = 0.1
	wLength    = 0.2
	wQuestion  = 0.1

	baseBias        = 0.35
	questionBoost   = 0.3
	operatorPenalty = 0.4
)

// Scorer estimates semantic need from lexical features alone.
type Scorer struct{}

// NewScorer creates a semantic-need scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

type token struct {
	lower    string
	original string
}

// Score analyzes the query and returns its semantic-need assessment.
// The score is monotonic in token count for operator-free queries and
// always clamped to [0, 1].
func (s *Scorer) Score(query string) NeedScore {
	tokens := tokenize(query)

	semWeight, knownCount := semanticWeight(tokens)
	coherence := coherenceScore(tokens)
	concepts := conceptDensity(tokens)
	lengthFactor := lengthFactorFor(len(tokens))

	qBoost := 0.0
	lower := strings.ToLower(query)
	for _, w := range questionWords {
		if strings.HasPrefix(lower, w) {
			qBoost = questionBoost
			break
		}
	}

	score := wSemantic*semWeight +
		wCoherence*coherence +
		wConcepts*concepts +
		wLength*lengthFactor +
		wQuestion*qBoost +
		baseBias

	// Search operators are a strong exact-match signal and override
	// length no matter how long the query is.
	operators := hasOperators(query, tokens)
	if operators {
		score -= operatorPenalty
	}

	return NeedScore{
		NeedsSemantic: clamp01(score),
		Confidence:    confidence(tokens, knownCount),
		Explanation:   explain(semWeight, coherence, concepts, operators),
	}
}

// tokenize splits on whitespace, keeping the original casing for
// entity detection.
func tokenize(query string) []token {
	fields := strings.Fields(query)
	tokens := make([]token, len(fields))
	for i, f := range fields {
		tokens[i] = token{lower: strings.ToLower(f), original: f}
	}
	return tokens
}

// semanticWeight averages per-token weights. Known words use the
// vocabulary table; unknown words fall back to affix and entity
// heuristics with a generous base.
func semanticWeight(tokens []token) (weight float64, known int) {
	if len(tokens) == 0 {
		return 0, 0
	}

	var total float64
	for _, t := range tokens {
		if w, ok := semanticWords[t.lower]; ok {
			total += float64(w) / 255.0
			known++
			continue
		}
		total += oovWeight(t)*0.7 + 0.3
	}
	return total / float64(len(tokens)), known
}

// oovWeight scores an out-of-vocabulary token by concept affixes and
// entity shape.
func oovWeight(t token) float64 {
	var score float64
	for _, a := range conceptAffixes {
		if strings.HasPrefix(t.lower, a.affix) || strings.HasSuffix(t.lower, a.affix) {
			if w := float64(a.weight) / 255.0; w > score {
				score = w
			}
		}
	}
	for _, p := range entityPatterns {
		if p.MatchString(t.original) {
			if score < 0.7 {
				score = 0.7
			}
		}
	}
	if first := firstRune(t.original); unicode.IsUpper(first) {
		score += 0.05
	}
	return score
}

// coherenceScore averages bigram coherence over adjacent token pairs.
// Unknown bigrams score neutral.
func coherenceScore(tokens []token) float64 {
	if len(tokens) < 2 {
		return 0
	}

	var total float64
	for i := 0; i+1 < len(tokens); i++ {
		if w, ok := coherentBigrams[[2]string{tokens[i].lower, tokens[i+1].lower}]; ok {
			total += float64(w) / 255.0
		} else {
			total += 0.3
		}
	}
	return total / float64(len(tokens)-1)
}

// conceptDensity scores capitalized and mixed-case tokens, which tend
// to name entities and concepts.
func conceptDensity(tokens []token) float64 {
	if len(tokens) == 0 {
		return 0
	}

	var score float64
	for _, t := range tokens {
		if unicode.IsUpper(firstRune(t.original)) {
			score += 0.3
		}
		hasUpper := strings.IndexFunc(t.original, unicode.IsUpper) >= 0
		hasLower := strings.IndexFunc(t.original, unicode.IsLower) >= 0
		if hasUpper && hasLower {
			score += 0.4
		}
	}

	score /= float64(len(tokens))
	if score > 1 {
		score = 1
	}
	return score
}

// lengthFactorFor maps token count to a non-decreasing boost.
func lengthFactorFor(n int) float64 {
	switch {
	case n <= 1:
		return 0.0
	case n == 2:
		return 0.2
	case n == 3:
		return 0.4
	case n == 4:
		return 0.5
	default:
		return 0.6
	}
}

// hasOperators reports whether the query carries explicit search
// operators: quotes, wildcards, or +/- prefixed terms.
func hasOperators(query string, tokens []token) bool {
	if strings.ContainsAny(query, `"*`) {
		return true
	}
	for _, t := range tokens {
		if len(t.original) > 1 &&
			(t.original[0] == '+' || t.original[0] == '-') {
			return true
		}
	}
	return false
}

// confidence grows with the known-vocabulary ratio and token count.
func confidence(tokens []token, known int) float64 {
	n := len(tokens)
	if n == 0 {
		return 0
	}

	knownRatio := float64(known) / float64(n)
	lengthFactor := float64(n) / 10.0
	if lengthFactor > 1 {
		lengthFactor = 1
	}
	return knownRatio*0.7 + lengthFactor*0.3
}

func explain(semWeight, coherence, concepts float64, operators bool) string {
	if operators {
		return "Search operators favor exact matching"
	}

	var reasons []string
	if semWeight > 0.6 {
		reasons = append(reasons, "Contains semantically rich terms")
	}
	if coherence > 0.7 {
		reasons = append(reasons, "Terms show strong relationships")
	}
	if concepts > 0.5 {
		reasons = append(reasons, "Multiple concepts or entities detected")
	}

	if len(reasons) == 0 {
		return "Simple keyword query"
	}
	return strings.Join(reasons, ", ")
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
