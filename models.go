package main

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"

	"resumecheck/internal/database"
	"resumecheck/internal/match"
	"resumecheck/internal/skills"
)

type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

// AppConfig wires every backend the service talks to. R2/Rabbit fields are nil
// when batch processing is disabled; the agent fields are nil when no Gemini
// key is configured.
type AppConfig struct {
	DB          *database.Queries
	Port        string
	Embedder    *match.Embedder
	R2          *R2Config
	AwsConfig   *aws.Config
	RabbitConn  *amqp.Connection
	RABBITMQUrl string

	AgentRunner         *runner.Runner
	AgentSessionService session.Service
	AgentName           string
}

func (app *AppConfig) batchEnabled() bool {
	return app.RabbitConn != nil && app.R2 != nil && app.AwsConfig != nil
}

func (app *AppConfig) reviewerEnabled() bool {
	return app.AgentRunner != nil && app.AgentSessionService != nil
}

type Session struct {
	ID             uuid.UUID `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Name           string    `json:"name"`
	UserID         uuid.UUID `json:"user_id"`
	Status         string    `json:"status"`
	JobTitle       string    `json:"job_title"`
	JobDescription string    `json:"job_description"`
}

// ResumeResult is one batch-analyzed resume inside a session.
type ResumeResult struct {
	ResumeID       uuid.UUID         `json:"resume_id"`
	Filename       string            `json:"filename"`
	CandidateName  string            `json:"candidate_name,omitempty"`
	MatchScore     int               `json:"match_score"`
	Verdict        string            `json:"verdict"`
	MatchedSkills  []string          `json:"matched_skills"`
	MissingSkills  []string          `json:"missing_skills"`
	Plan           []skills.PlanItem `json:"improvement_plan"`
	HardScore      float64           `json:"hard_match_score"`
	SemanticScore  float64           `json:"semantic_match_score"`
	Summary        string            `json:"summary,omitempty"`
	Recommendation string            `json:"recommendation,omitempty"`
	// Error result entry
	IsErrorResult bool   `json:"is_error_result"`
	Error         string `json:"error,omitempty"`
}

type SessionResults struct {
	SessionID uuid.UUID      `json:"session_id"`
	Results   []ResumeResult `json:"results"`
}

// matchResponse is the POST /match payload.
type matchResponse struct {
	ID                  uuid.UUID         `json:"id"`
	Score               int               `json:"score"`
	Verdict             string            `json:"verdict"`
	MatchedSkills       []string          `json:"matched_skills"`
	MissingSkills       []string          `json:"missing_skills"`
	ImprovementPlan     []skills.PlanItem `json:"improvement_plan"`
	TotalSkillsRequired int               `json:"total_skills_required"`
	SkillsMatched       int               `json:"skills_matched"`
	HardMatchScore      float64           `json:"hard_match_score"`
	SemanticMatchScore  float64           `json:"semantic_match_score"`
	KeyPhrases          []string          `json:"key_phrases,omitempty"`
	Recommendations     []string          `json:"recommendations,omitempty"`
	ResumeFilename      string            `json:"resume_filename"`
	JdFilename          string            `json:"jd_filename"`
	ResumeWordCount     int               `json:"resume_word_count"`
	JdWordCount         int               `json:"jd_word_count"`
	CandidateName       string            `json:"candidate_name,omitempty"`
	Timestamp           time.Time         `json:"timestamp"`
}
