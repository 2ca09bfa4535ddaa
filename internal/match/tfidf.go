// Package match computes relevance scores between a resume and a job
// description: a hard TF-IDF keyword score and a semantic score backed by
// Gemini embeddings with a pure TF-IDF fallback.
package match

import (
	"math"
	"sort"
	"strings"
)

// Combined-score weights, hard keyword overlap vs semantic similarity.
const (
	HardWeight     = 0.4
	SemanticWeight = 0.6
)

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "been": true, "but": true, "by": true, "for": true, "from": true,
	"had": true, "has": true, "have": true, "he": true, "her": true, "his": true,
	"if": true, "in": true, "into": true, "is": true, "it": true, "its": true,
	"no": true, "not": true, "of": true, "on": true, "or": true, "our": true,
	"she": true, "so": true, "that": true, "the": true, "their": true,
	"then": true, "there": true, "these": true, "they": true, "this": true,
	"to": true, "was": true, "we": true, "were": true, "will": true,
	"with": true, "you": true, "your": true,
}

func tokens(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".")
		if f == "" || stopwords[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// ngramTerms returns all n-grams of the token stream for n in [min, max].
func ngramTerms(toks []string, min, max int) []string {
	var terms []string
	for n := min; n <= max; n++ {
		for i := 0; i+n <= len(toks); i++ {
			terms = append(terms, strings.Join(toks[i:i+n], " "))
		}
	}
	return terms
}

func termFreq(terms []string) map[string]float64 {
	tf := make(map[string]float64, len(terms))
	for _, t := range terms {
		tf[t]++
	}
	return tf
}

// tfidfVectors weighs two documents against each other with smoothed inverse
// document frequency over the two-document corpus, the same weighting
// sklearn's TfidfVectorizer applies.
func tfidfVectors(a, b []string) (map[string]float64, map[string]float64) {
	tfA, tfB := termFreq(a), termFreq(b)
	const docs = 2.0

	idf := func(term string) float64 {
		df := 0.0
		if tfA[term] > 0 {
			df++
		}
		if tfB[term] > 0 {
			df++
		}
		return math.Log((1+docs)/(1+df)) + 1
	}

	va := make(map[string]float64, len(tfA))
	for t, f := range tfA {
		va[t] = f * idf(t)
	}
	vb := make(map[string]float64, len(tfB))
	for t, f := range tfB {
		vb[t] = f * idf(t)
	}
	return va, vb
}

func cosine(a, b map[string]float64) float64 {
	var dot, na, nb float64
	for t, w := range a {
		na += w * w
		if bw, ok := b[t]; ok {
			dot += w * bw
		}
	}
	for _, w := range b {
		nb += w * w
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// HardScore is the exact-keyword relevance of the resume to the JD: cosine
// similarity of TF-IDF vectors over unigrams and bigrams, in [0, 1].
func HardScore(resumeText, jdText string) float64 {
	jdToks, resToks := tokens(jdText), tokens(resumeText)
	if len(jdToks) == 0 || len(resToks) == 0 {
		return 0
	}
	va, vb := tfidfVectors(ngramTerms(jdToks, 1, 2), ngramTerms(resToks, 1, 2))
	return clamp01(cosine(va, vb))
}

// TFIDFSemantic is the fallback semantic score used when no embedding backend
// is configured: TF-IDF cosine over 1..3-grams.
func TFIDFSemantic(resumeText, jdText string) float64 {
	jdToks, resToks := tokens(jdText), tokens(resumeText)
	if len(jdToks) == 0 || len(resToks) == 0 {
		return 0
	}
	va, vb := tfidfVectors(ngramTerms(jdToks, 1, 3), ngramTerms(resToks, 1, 3))
	return clamp01(cosine(va, vb))
}

// Combined blends the two scores into a 0-100 percentage.
func Combined(hard, semantic float64) float64 {
	return math.Round((HardWeight*hard+SemanticWeight*semantic)*10000) / 100
}

// KeyPhrases extracts the top 2- and 3-gram phrases of the JD, ranked by
// occurrence count. Ties break lexicographically so the output is stable even
// for short JDs where every phrase occurs once.
func KeyPhrases(jdText string, topN int) []string {
	toks := tokens(jdText)
	tf := termFreq(ngramTerms(toks, 2, 3))

	type scored struct {
		phrase string
		count  float64
	}
	phrases := make([]scored, 0, len(tf))
	for p, c := range tf {
		phrases = append(phrases, scored{p, c})
	}
	sort.Slice(phrases, func(i, j int) bool {
		if phrases[i].count != phrases[j].count {
			return phrases[i].count > phrases[j].count
		}
		return phrases[i].phrase < phrases[j].phrase
	})

	if len(phrases) > topN {
		phrases = phrases[:topN]
	}
	out := make([]string, len(phrases))
	for i, p := range phrases {
		out[i] = p.phrase
	}
	return out
}
