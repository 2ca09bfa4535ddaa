package match

import (
	"context"
	"fmt"
	"log"
	"math"

	"google.golang.org/genai"
)

const embeddingModel = "gemini-embedding-001"

// Embedder scores semantic similarity with Gemini text embeddings.
type Embedder struct {
	client *genai.Client
	model  string
}

func NewEmbedder(ctx context.Context, apiKey string) (*Embedder, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Embedder{client: client, model: embeddingModel}, nil
}

// Score embeds both texts in one call and returns their cosine similarity in [0, 1].
func (e *Embedder) Score(ctx context.Context, resumeText, jdText string) (float64, error) {
	contents := []*genai.Content{
		{Parts: []*genai.Part{{Text: resumeText}}},
		{Parts: []*genai.Part{{Text: jdText}}},
	}
	resp, err := e.client.Models.EmbedContent(ctx, e.model, contents, nil)
	if err != nil {
		return 0, fmt.Errorf("embed content: %w", err)
	}
	if len(resp.Embeddings) < 2 {
		return 0, fmt.Errorf("expected 2 embeddings, got %d", len(resp.Embeddings))
	}
	return clamp01(cosineF32(resp.Embeddings[0].Values, resp.Embeddings[1].Values)), nil
}

// SemanticScore prefers the embedding backend and degrades to the TF-IDF
// fallback when the backend is absent or failing.
func SemanticScore(ctx context.Context, e *Embedder, resumeText, jdText string) float64 {
	if e == nil {
		return TFIDFSemantic(resumeText, jdText)
	}
	score, err := e.Score(ctx, resumeText, jdText)
	if err != nil {
		log.Printf("semantic embedding failed, using tf-idf fallback: %v", err)
		return TFIDFSemantic(resumeText, jdText)
	}
	return score
}

func cosineF32(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
