package query

import (
	"regexp"
	"strings"
)

// codeKeywords is the permissive keyword set used for short queries.
var codeKeywords = map[string]struct{}{
	"function": {}, "class": {}, "todo": {}, "fixme": {},
	"import": {}, "export": {}, "async": {}, "await": {},
	"fn": {}, "pub": {}, "mod": {}, "struct": {}, "enum": {},
	"trait": {}, "impl": {}, "let": {}, "const": {}, "var": {},
	"def": {}, "method": {}, "constructor": {}, "abstract": {},
	"static": {}, "final": {}, "public": {}, "private": {},
	"protected": {}, "virtual": {}, "override": {}, "extends": {},
	"implements": {},
}

// codeSpecificKeywords is the conservative set used for longer queries,
// where incidental words like "const" should not force a code-pattern
// classification.
var codeSpecificKeywords = map[string]struct{}{
	"function": {}, "class": {}, "todo": {}, "fixme": {},
	"import": {}, "export": {}, "async": {}, "await": {},
	"fn": {}, "pub": {}, "mod": {}, "struct": {}, "enum": {},
	"trait": {}, "impl": {}, "def": {}, "method": {},
}

// fileExtensions are recognized extension tokens for file-filter queries.
var fileExtensions = map[string]struct{}{
	".rs": {}, ".py": {}, ".js": {}, ".ts": {}, ".go": {}, ".md": {},
	".txt": {}, ".json": {}, ".toml": {}, ".yaml": {}, ".yml": {},
	".xml": {}, ".html": {}, ".css": {}, ".scss": {}, ".sql": {},
	".sh": {}, ".bash": {}, ".exe": {}, ".dll": {}, ".so": {},
	".dylib": {}, ".bin": {}, ".obj": {}, ".o": {}, ".a": {},
	".lib": {}, ".zip": {}, ".tar": {}, ".gz": {}, ".bz2": {},
	".7z": {}, ".rar": {}, ".jpg": {}, ".jpeg": {}, ".png": {},
	".gif": {}, ".bmp": {}, ".tiff": {}, ".svg": {}, ".mp3": {},
	".mp4": {}, ".avi": {}, ".mov": {}, ".wav": {}, ".flac": {},
	".pdf": {}, ".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {},
	".ppt": {}, ".pptx": {},
}

// noiseWords are stripped during query simplification.
var noiseWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "will": {}, "would": {},
	"could": {}, "should": {}, "may": {}, "might": {}, "can": {},
	"this": {}, "that": {}, "these": {}, "those": {},
}

// programmingTerms are stripped during query simplification alongside
// noise words, leaving the distinctive part of the query.
var programmingTerms = map[string]struct{}{
	"function": {}, "class": {}, "method": {}, "async": {}, "await": {},
	"const": {}, "let": {}, "var": {}, "public": {}, "private": {},
	"protected": {}, "static": {}, "final": {}, "abstract": {},
	"interface": {}, "type": {}, "enum": {}, "struct": {}, "trait": {},
	"impl": {}, "mod": {}, "import": {}, "export": {}, "require": {},
	"include": {}, "using": {}, "namespace": {}, "try": {}, "catch": {},
	"throw": {}, "throws": {}, "error": {}, "exception": {},
	"handler": {}, "validate": {}, "validation": {}, "check": {},
	"verify": {}, "test": {}, "testing": {}, "config": {},
	"configuration": {}, "setup": {}, "initialize": {}, "init": {},
	"db": {}, "query": {}, "sql": {}, "api": {}, "endpoint": {},
	"route": {}, "controller": {}, "service": {}, "repository": {},
	"model": {}, "view": {}, "component": {}, "utils": {},
	"utility": {}, "helper": {}, "fn": {}, "pub": {}, "def": {},
	"return": {},
}

// regexMetacharacters mark a query as regex-like when present.
var regexMetacharacters = []string{
	".*", `\d+`, `\w+`, `\s+`, `\b`, `\B`, `\A`, `\Z`, `\z`,
	"[", "]", "(", ")", "{", "}", "|", "^", "$", "?", "*", "+",
}

// semanticWords maps vocabulary to a semantic weight in [0, 255].
// Higher weight means the word tends to appear in conceptual queries.
var semanticWords = map[string]uint16{
	"relationship": 200, "concept": 190, "theory": 185, "analysis": 180,
	"structure": 175, "pattern": 170, "framework": 180, "model": 175,
	"system": 170, "process": 165, "method": 160, "approach": 165,
	"understanding": 180, "meaning": 175, "context": 170,
	"interpretation": 185, "significance": 180, "implication": 175,
	"algorithm": 190, "implementation": 185, "architecture": 180,
	"optimization": 185, "evaluation": 175, "performance": 170,
	"between": 150, "among": 145, "through": 140, "within": 145,
	"across": 140, "regarding": 150,
	"object": 160, "entity": 165, "component": 170, "element": 155,
	"feature": 160, "attribute": 165, "property": 170,
	"characteristic": 175,
	"analyze": 180, "compare": 175, "evaluate": 170, "determine": 165,
	"identify": 160, "examine": 165, "investigate": 170, "explore": 165,
	"how": 140, "why": 145, "what": 135, "when": 130, "where": 130,
	"which": 135, "who": 125,
	"memory": 165, "cache": 160, "database": 170, "network": 165,
	"security": 170, "authentication": 175, "authorization": 175,
	"encryption": 170, "protocol": 165, "interface": 160,
	"function": 155, "class": 150, "inheritance": 170,
	"polymorphism": 180, "abstraction": 175,
	"management": 170, "handling": 165, "processing": 160,
	"execution": 165, "operation": 160, "transaction": 165,
	"synchronization": 180, "coordination": 175, "integration": 170,
	"difference": 175, "similarity": 170, "comparison": 175,
	"contrast": 170, "versus": 165, "alternative": 170, "option": 150,
	"choice": 155, "decision": 160,
	"impact": 170, "effect": 165, "influence": 170, "cause": 160,
	"result": 155, "consequence": 170, "outcome": 165, "affect": 165,
	"complexity": 175, "scalability": 180, "reliability": 175,
	"availability": 170, "consistency": 175, "concurrency": 180,
	"latency": 170, "throughput": 165, "bottleneck": 170,
	"design": 170, "principle": 175, "practice": 165, "strategy": 170,
	"technique": 165, "methodology": 175, "paradigm": 180,
	"philosophy": 175,
	"problem": 165, "solution": 160, "issue": 155, "challenge": 170,
	"difficulty": 165, "debugging": 170, "troubleshooting": 175,
	"resolving": 165,
	"data": 150, "information": 160, "storage": 155, "retrieval": 165,
	"query": 145, "search": 150, "index": 145, "organization": 165,
	"distributed": 180, "centralized": 175, "decentralized": 180,
	"asynchronous": 185, "synchronous": 180, "parallel": 175,
	"concurrent": 180, "sequential": 170, "reactive": 175,
	"does": 120, "can": 115, "should": 125, "would": 120, "could": 120,
	"might": 115, "must": 125, "will": 110,
	"programming": 160, "coding": 155, "development": 165,
	"software": 160, "hardware": 155, "application": 160,
	"program": 150, "code": 145, "script": 140, "language": 155,
	"syntax": 160, "semantics": 175,
	"fundamental": 170, "basic": 130, "advanced": 165,
	"intermediate": 155, "beginner": 140, "expert": 160,
	"professional": 155,
	"web": 140, "mobile": 145, "desktop": 140, "server": 145,
	"client": 140, "frontend": 150, "backend": 150, "fullstack": 155,
	"devops": 160,
	"causes": 160, "reasons": 165, "factors": 160,
	"considerations": 170, "implications": 175, "consequences": 170,
	"benefits": 155, "drawbacks": 160, "advantages": 155,
	"disadvantages": 160, "pros": 145, "cons": 145,
	"analyzing": 170, "evaluating": 170, "assessing": 165,
	"investigating": 170, "exploring": 165, "examining": 165,
	"reviewing": 160, "studying": 165, "researching": 170,
}

// coherentBigrams maps adjacent word pairs to a coherence score in
// [0, 255]. Known pairs suggest a deliberate conceptual phrase.
var coherentBigrams = map[[2]string]uint16{
	{"object", "oriented"}:   220,
	{"data", "structure"}:    215,
	{"machine", "learning"}:  220,
	{"neural", "network"}:    225,
	{"natural", "language"}:  220,
	{"user", "interface"}:    210,
	{"error", "handling"}:    205,
	{"memory", "management"}: 210,
	{"file", "system"}:       200,
	{"operating", "system"}:  205,
	{"design", "pattern"}:    215,
	{"best", "practice"}:     200,
	{"use", "case"}:          195,
	{"edge", "case"}:         190,
	{"high", "level"}:        185,
	{"low", "level"}:         185,
	{"open", "source"}:       190,
	{"real", "time"}:         195,
	{"time", "complexity"}:   200,
	{"space", "complexity"}:  200,
}

// conceptAffixes are prefixes/suffixes that suggest abstract concepts,
// used for words outside the semantic vocabulary.
var conceptAffixes = []struct {
	affix  string
	weight uint16
}{
	{"tion", 180}, {"ment", 170}, {"ness", 160}, {"able", 150},
	{"ize", 140}, {"ify", 140}, {"ology", 200}, {"graphy", 190},
	{"metry", 185}, {"ism", 160}, {"ist", 155}, {"ity", 150},
	{"ance", 145}, {"ence", 145}, {"ship", 155}, {"ful", 130},
	{"less", 130}, {"ward", 125},
}

// entityPatterns match tokens that look like named entities.
var entityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z][a-z]+$`),     // Capitalized words
	regexp.MustCompile(`^[A-Z]+[0-9]+$`),    // IDs like J345
	regexp.MustCompile(`^[A-Z]{2,}$`),       // Acronyms
	regexp.MustCompile(`^[A-Z][a-z]+[A-Z]`), // CamelCase
}

// questionWords mark natural-language questions when the query starts
// with one of them.
var questionWords = []string{
	"how", "what", "why", "when", "where", "which", "who",
	"does", "can", "should", "would",
}

// ContainsCodeKeywords reports whether the query contains code-related
// keywords. Longer queries use the conservative keyword set.
func ContainsCodeKeywords(q string) bool {
	words := strings.Fields(strings.ToLower(q))
	set := codeKeywords
	if len(words) > 2 {
		set = codeSpecificKeywords
	}
	for _, w := range words {
		if _, ok := set[w]; ok {
			return true
		}
	}
	return false
}

// ContainsFileExtensions reports whether the query mentions a
// recognized file extension.
func ContainsFileExtensions(q string) bool {
	for ext := range fileExtensions {
		if strings.Contains(q, ext) {
			return true
		}
	}
	return false
}

// ExtensionsIn returns the recognized extensions mentioned in the
// query, without the leading dot.
func ExtensionsIn(q string) []string {
	var exts []string
	for _, tok := range strings.Fields(q) {
		if _, ok := fileExtensions[tok]; ok {
			exts = append(exts, strings.TrimPrefix(tok, "."))
		}
	}
	return exts
}

// LooksLikeRegex reports whether the query contains regex
// metacharacters.
func LooksLikeRegex(q string) bool {
	for _, meta := range regexMetacharacters {
		if strings.Contains(q, meta) {
			return true
		}
	}
	return false
}

var simplifySplit = regexp.MustCompile(`[ \t\n\r.:(){}\[\],;]+`)

// Simplify strips noise words, programming terms and extension tokens
// from the query, keeping at most three distinctive tokens. Used for
// fallback suggestions when a search returns nothing.
func Simplify(q string) string {
	var tokens []string
	for _, tok := range simplifySplit.Split(q, -1) {
		if len(tok) <= 2 {
			continue
		}
		lower := strings.ToLower(tok)
		if _, ok := programmingTerms[lower]; ok {
			continue
		}
		if _, ok := fileExtensions[tok]; ok {
			continue
		}
		if _, ok := noiseWords[lower]; ok {
			continue
		}
		tokens = append(tokens, tok)
		if len(tokens) == 3 {
			break
		}
	}

	if len(tokens) == 0 {
		return "search term"
	}
	return strings.Join(tokens, " ")
}
