package match

import (
	"fmt"
	"sort"
	"strings"

	"resumecheck/internal/skills"
)

const maxRecommendations = 5

// Recommendations turns scores and category gaps into short, user-facing
// advice lines.
func Recommendations(hard, semantic float64, a skills.Analysis) []string {
	var recs []string

	if hard < 0.3 {
		recs = append(recs, "Include more specific keywords from the job description in your resume")
	}
	if semantic < 0.4 {
		recs = append(recs, "Restructure your resume content to better align with the job requirements")
	}

	categories := make([]string, 0, len(a.MissingByCategory))
	for c := range a.MissingByCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, category := range categories {
		missing := a.MissingByCategory[category]
		if len(missing) == 0 {
			continue
		}
		label := strings.ReplaceAll(category, "_", " ")
		if category == "programming_languages" || category == "data_science" {
			n := len(missing)
			if n > 3 {
				n = 3
			}
			recs = append(recs, fmt.Sprintf("Consider gaining experience in %s skills: %s", label, strings.Join(missing[:n], ", ")))
		} else {
			n := len(missing)
			if n > 2 {
				n = 2
			}
			recs = append(recs, fmt.Sprintf("Highlight any experience with %s tools: %s", label, strings.Join(missing[:n], ", ")))
		}
	}

	for _, category := range categories {
		cov := a.Coverage[category]
		if cov.Required > 0 && cov.CoveragePercent < 30 {
			label := strings.ReplaceAll(category, "_", " ")
			recs = append(recs, fmt.Sprintf("Focus on developing %s skills as they are important for this role", label))
		}
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
