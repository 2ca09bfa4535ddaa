package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumecheck/internal/skills"
)

func TestHardScore(t *testing.T) {
	t.Run("identical documents", func(t *testing.T) {
		s := HardScore("python backend services", "python backend services")
		assert.InDelta(t, 1.0, s, 1e-9)
	})

	t.Run("disjoint documents", func(t *testing.T) {
		s := HardScore("golang systems engineer", "watercolor painting artist")
		assert.Equal(t, 0.0, s)
	})

	t.Run("partial overlap lands between", func(t *testing.T) {
		s := HardScore("python developer", "python developer docker kubernetes")
		assert.Greater(t, s, 0.0)
		assert.Less(t, s, 1.0)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, 0.0, HardScore("", "python"))
		assert.Equal(t, 0.0, HardScore("python", ""))
	})

	t.Run("trailing dots ignored", func(t *testing.T) {
		s := HardScore("python. docker.", "python docker")
		assert.InDelta(t, 1.0, s, 1e-9)
	})

	t.Run("stopwords ignored", func(t *testing.T) {
		s := HardScore("experienced with python", "python experienced")
		assert.Greater(t, s, 0.5)
	})
}

func TestTFIDFSemantic(t *testing.T) {
	assert.InDelta(t, 1.0, TFIDFSemantic("python data pipelines", "python data pipelines"), 1e-9)
	assert.Equal(t, 0.0, TFIDFSemantic("", "python"))
}

func TestCombined(t *testing.T) {
	assert.Equal(t, 100.0, Combined(1, 1))
	assert.Equal(t, 0.0, Combined(0, 0))
	assert.Equal(t, 40.0, Combined(1, 0))
	assert.Equal(t, 60.0, Combined(0, 1))
	assert.Equal(t, 50.0, Combined(0.5, 0.5))
}

func TestKeyPhrases(t *testing.T) {
	text := "machine learning models machine learning models machine learning"

	got := KeyPhrases(text, 5)
	require.NotEmpty(t, got)
	assert.Equal(t, "machine learning", got[0])

	got = KeyPhrases(text, 1)
	assert.Len(t, got, 1)

	// short JDs with no repeated phrase still surface ranked singletons
	got = KeyPhrases("every phrase occurs once here", 3)
	assert.Equal(t, []string{"every phrase", "every phrase occurs", "occurs once"}, got)

	assert.Empty(t, KeyPhrases("", 5))
}

func TestRecommendations(t *testing.T) {
	a := skills.Analysis{
		MissingByCategory: map[string][]string{
			"databases": {"sql", "mysql", "postgresql"},
		},
		Coverage: map[string]skills.Coverage{
			"databases": {Matched: 0, Required: 3, CoveragePercent: 0},
		},
	}

	recs := Recommendations(0.2, 0.3, a)
	require.Len(t, recs, 4)
	assert.Contains(t, recs[0], "keywords from the job description")
	assert.Contains(t, recs[1], "Restructure")
	assert.Equal(t, "Highlight any experience with databases tools: sql, mysql", recs[2])
	assert.Contains(t, recs[3], "Focus on developing databases skills")
}

func TestRecommendationsHighScores(t *testing.T) {
	recs := Recommendations(0.9, 0.9, skills.Analysis{})
	assert.Empty(t, recs)
}

func TestRecommendationsCapped(t *testing.T) {
	a := skills.Analysis{
		MissingByCategory: map[string][]string{
			"programming_languages": {"go"},
			"databases":             {"sql"},
			"cloud_platforms":       {"docker"},
			"web_technologies":      {"react"},
		},
	}
	recs := Recommendations(0.1, 0.1, a)
	assert.Len(t, recs, 5)
}
