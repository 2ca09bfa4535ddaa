package extract

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// keep dots, hyphens, plus and hash signs so terms like node.js, c++ and
	// c# survive
	punctRe = regexp.MustCompile(`[^\w\s.\-+#]`)
	nameRe  = regexp.MustCompile(`^([A-Z][a-z]+(?: [A-Z][a-z]+){1,2})`)
)

// single-letter and two-letter tokens that carry meaning in tech text and must
// not be dropped by the short-token filter
var shortTechTerms = map[string]bool{
	"c": true, "r": true, "ai": true, "ml": true, "ui": true, "ux": true,
	"qa": true, "ci": true, "cd": true, "it": true, "bi": true, "etl": true,
}

// multiword phrases are collapsed to a single canonical token so that
// word-boundary matching treats them as one term. Order matters: longer
// phrases first.
var phraseCanon = [][2]string{
	{"natural language processing", "nlp"},
	{"machine learning", "machine_learning"},
	{"deep learning", "deep_learning"},
	{"computer vision", "computer_vision"},
	{"artificial intelligence", "ai"},
	{"data science", "data_science"},
	{"big data", "big_data"},
	{"cloud computing", "cloud_computing"},
	{"software engineering", "software_engineering"},
	{"web development", "web_development"},
	{"mobile development", "mobile_development"},
	{"database management", "database_management"},
	{"project management", "project_management"},
	{"quality assurance", "qa"},
	{"user experience", "ux"},
	{"user interface", "ui"},
}

var abbreviations = map[string]string{
	"js":    "javascript",
	"ts":    "typescript",
	"py":    "python",
	"db":    "database",
	"dl":    "deep_learning",
	"k8s":   "kubernetes",
	"rnn":   "recurrent neural network",
	"cnn":   "convolutional neural network",
	"api":   "application programming interface",
	"oop":   "object oriented programming",
	"tf":    "tensorflow",
	"pg":    "postgresql",
	"mongo": "mongodb",
}

// Normalize lowercases the text, strips punctuation that does not belong to
// tech terms, collapses whitespace, drops noise tokens and canonicalizes
// multiword phrases.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	text = punctRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")

	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) >= 2 || shortTechTerms[w] {
			filtered = append(filtered, w)
		}
	}
	text = strings.Join(filtered, " ")

	for _, pc := range phraseCanon {
		text = strings.ReplaceAll(text, pc[0], pc[1])
	}
	return strings.TrimSpace(text)
}

// ExpandAbbreviations rewrites well-known shorthand tokens into their full
// forms so that a resume saying "js" still matches a JD asking for javascript.
func ExpandAbbreviations(text string) string {
	words := strings.Fields(text)
	expanded := make([]string, 0, len(words))
	for _, w := range words {
		if full, ok := abbreviations[w]; ok {
			expanded = append(expanded, strings.Fields(full)...)
			continue
		}
		expanded = append(expanded, w)
	}
	return strings.Join(expanded, " ")
}

// Prepare is the full pipeline applied before any matching.
func Prepare(text string) string {
	return ExpandAbbreviations(Normalize(text))
}

// WordCount counts tokens of normalized text.
func WordCount(normalized string) int {
	return len(strings.Fields(normalized))
}

// CandidateName pulls a likely candidate name out of the first lines of raw
// resume text. Returns "" when nothing plausible is found.
func CandidateName(raw string) string {
	if raw == "" {
		return ""
	}
	lines := strings.Split(raw, "\n")
	checked := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		checked++
		if checked > 3 {
			break
		}
		lower := strings.ToLower(line)
		skip := false
		for _, marker := range []string{"resume", "cv", "curriculum", "@", "phone"} {
			if strings.Contains(lower, marker) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		if m := nameRe.FindStringSubmatch(line); m != nil {
			name := strings.TrimSpace(m[1])
			words := len(strings.Fields(name))
			if words >= 2 && words <= 3 && len(name) >= 4 && len(name) <= 30 {
				return name
			}
		}
	}
	return ""
}
