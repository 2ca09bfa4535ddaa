// Package skills matches a job description against a resume using a
// categorized skill dictionary and produces scores, verdicts and a
// per-missing-skill improvement plan.
package skills

import (
	"regexp"
	"strings"

	"resumecheck/internal/extract"
)

// Verdict thresholds on the 0-100 skill score.
const (
	ThresholdExcellent = 80
	ThresholdGood      = 60
	ThresholdAverage   = 40
)

const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
)

// PlanItem is one improvement suggestion for a missing skill.
type PlanItem struct {
	Skill      string `json:"skill"`
	Category   string `json:"category"`
	Suggestion string `json:"suggestion"`
	Priority   string `json:"priority"`
}

// Coverage summarizes how much of one category's required skills the resume hits.
type Coverage struct {
	Matched         int     `json:"matched"`
	Required        int     `json:"total_required"`
	CoveragePercent float64 `json:"coverage_percent"`
}

// Analysis is the full result of matching a resume against a JD.
type Analysis struct {
	Score             int
	Verdict           string
	Matched           []string
	Missing           []string
	Plan              []PlanItem
	Required          int
	Coverage          map[string]Coverage
	MissingByCategory map[string][]string
}

type skillPattern struct {
	name     string
	category string
	re       *regexp.Regexp
}

var patterns []skillPattern

func init() {
	for _, category := range Categories {
		for _, name := range Taxonomy[category] {
			patterns = append(patterns, skillPattern{
				name:     name,
				category: category,
				re:       boundaryPattern(name),
			})
		}
	}
}

// boundaryPattern builds a matcher for the canonical form of a skill name.
// Go's regexp has no lookarounds and \b misbehaves next to symbols like "+",
// so boundaries are expressed as explicit non-word groups.
func boundaryPattern(name string) *regexp.Regexp {
	canon := extract.Normalize(name)
	return regexp.MustCompile(`(?:^|[^\w])` + regexp.QuoteMeta(canon) + `(?:[^\w]|$)`)
}

// Analyze compares prepared (normalized) resume text against prepared JD text.
// A skill is required when it appears in the JD and matched when it also
// appears in the resume. The score is the matched/required percentage.
func Analyze(resumeText, jdText string) Analysis {
	a := Analysis{
		Coverage:          make(map[string]Coverage),
		MissingByCategory: make(map[string][]string),
	}

	for _, p := range patterns {
		if !p.re.MatchString(jdText) {
			continue
		}
		a.Required++
		cov := a.Coverage[p.category]
		cov.Required++
		if p.re.MatchString(resumeText) {
			a.Matched = append(a.Matched, p.name)
			cov.Matched++
		} else {
			a.Missing = append(a.Missing, p.name)
			a.MissingByCategory[p.category] = append(a.MissingByCategory[p.category], p.name)
			a.Plan = append(a.Plan, PlanItem{
				Skill:      titleCase(p.name),
				Category:   titleCase(strings.ReplaceAll(p.category, "_", " ")),
				Suggestion: suggestionFor(p.name, p.category),
				Priority:   priorityFor(p.category),
			})
		}
		a.Coverage[p.category] = cov
	}

	if a.Required > 0 {
		a.Score = len(a.Matched) * 100 / a.Required
	}
	a.Verdict = Verdict(a.Score)

	for category, cov := range a.Coverage {
		if cov.Required > 0 {
			cov.CoveragePercent = float64(cov.Matched) / float64(cov.Required) * 100
		}
		a.Coverage[category] = cov
	}
	return a
}

// Verdict labels a 0-100 score.
func Verdict(score int) string {
	switch {
	case score >= ThresholdExcellent:
		return "Excellent"
	case score >= ThresholdGood:
		return "Good"
	case score >= ThresholdAverage:
		return "Average"
	default:
		return "Needs Improvement"
	}
}

// Resume lists every taxonomy skill found in prepared resume text, used for
// frequency tracking regardless of what the JD asked for.
func Resume(resumeText string) []string {
	var found []string
	for _, p := range patterns {
		if p.re.MatchString(resumeText) {
			found = append(found, p.name)
		}
	}
	return found
}

// CategoryOf returns the taxonomy category of a skill name, or "unknown".
func CategoryOf(name string) string {
	for _, p := range patterns {
		if p.name == name {
			return p.category
		}
	}
	return "unknown"
}

func suggestionFor(skill, category string) string {
	tmpl, ok := suggestionTemplates[category]
	if !ok {
		return "Learn " + skill + " through courses, tutorials, and hands-on practice. Add relevant projects to your portfolio."
	}
	return strings.ReplaceAll(tmpl, "%s", skill)
}

func priorityFor(category string) string {
	if category == "programming_languages" || category == "data_science" {
		return PriorityHigh
	}
	return PriorityMedium
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
