package main

import (
	"context"
	"fmt"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"
)

// GetReviewerAgent builds the LLM reviewer that writes the narrative summary
// and recommendation for each batch-analyzed resume. Scoring itself stays
// local; the agent only reviews.
func GetReviewerAgent(apiKey, agentName string) (agent.Agent, error) {
	ctx := context.Background()
	model, err := gemini.NewModel(ctx, "gemini-2.5-pro", &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %v", err)
	}

	reviewer, err := llmagent.New(llmagent.Config{
		Name:        agentName,
		Model:       model,
		Description: "Review resume fit",
		Instruction: reviewerPrompt(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %v", err)
	}

	return reviewer, err
}
