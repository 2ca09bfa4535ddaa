package database

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Analysis struct {
	ID                 uuid.UUID
	CandidateName      string
	ResumeFilename     string
	JdFilename         string
	OverallScore       float64
	HardMatchScore     float64
	SemanticMatchScore float64
	Verdict            string
	MatchedSkills      json.RawMessage
	MissingSkills      json.RawMessage
	ImprovementPlan    json.RawMessage
	ResumeWordCount    int32
	JdWordCount        int32
	IsArchived         bool
	Notes              string
	CreatedAt          time.Time
}

type SkillsTracking struct {
	ID                 uuid.UUID
	SkillName          string
	SkillCategory      string
	FrequencyInJds     int32
	FrequencyInResumes int32
	LastSeen           time.Time
}

type Session struct {
	ID             uuid.UUID
	CreatedAt      time.Time
	Name           string
	UserID         uuid.UUID
	Status         string
	JobTitle       string
	JobDescription string
}

type Resume struct {
	ID               uuid.UUID
	OriginalFilename string
	Mime             string
	SizeBytes        int64
	StorageProvider  string
	ObjectKey        string
	StorageUrl       string
	UploadStatus     string
	CreatedAt        time.Time
	SessionID        uuid.UUID
}

type AnalysesResult struct {
	SessionID uuid.UUID
	Results   json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}
