package database

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

const createAnalysis = `-- name: CreateAnalysis :one
INSERT INTO analyses (
candidate_name, resume_filename, jd_filename, overall_score, hard_match_score, semantic_match_score, verdict, matched_skills, missing_skills, improvement_plan, resume_word_count, jd_word_count, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id, candidate_name, resume_filename, jd_filename, overall_score, hard_match_score, semantic_match_score, verdict, matched_skills, missing_skills, improvement_plan, resume_word_count, jd_word_count, is_archived, notes, created_at
`

type CreateAnalysisParams struct {
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
	Notes              string
}

func (q *Queries) CreateAnalysis(ctx context.Context, arg CreateAnalysisParams) (Analysis, error) {
	row := q.db.QueryRowContext(ctx, createAnalysis,
		arg.CandidateName,
		arg.ResumeFilename,
		arg.JdFilename,
		arg.OverallScore,
		arg.HardMatchScore,
		arg.SemanticMatchScore,
		arg.Verdict,
		arg.MatchedSkills,
		arg.MissingSkills,
		arg.ImprovementPlan,
		arg.ResumeWordCount,
		arg.JdWordCount,
		arg.Notes,
	)
	var i Analysis
	err := row.Scan(
		&i.ID,
		&i.CandidateName,
		&i.ResumeFilename,
		&i.JdFilename,
		&i.OverallScore,
		&i.HardMatchScore,
		&i.SemanticMatchScore,
		&i.Verdict,
		&i.MatchedSkills,
		&i.MissingSkills,
		&i.ImprovementPlan,
		&i.ResumeWordCount,
		&i.JdWordCount,
		&i.IsArchived,
		&i.Notes,
		&i.CreatedAt,
	)
	return i, err
}

const getAnalysisHistory = `-- name: GetAnalysisHistory :many
SELECT id, candidate_name, resume_filename, jd_filename, overall_score, hard_match_score, semantic_match_score, verdict, matched_skills, missing_skills, improvement_plan, resume_word_count, jd_word_count, is_archived, notes, created_at FROM analyses
WHERE is_archived = $1
ORDER BY created_at DESC
LIMIT $2
`

type GetAnalysisHistoryParams struct {
	IsArchived bool
	Limit      int32
}

func (q *Queries) GetAnalysisHistory(ctx context.Context, arg GetAnalysisHistoryParams) ([]Analysis, error) {
	rows, err := q.db.QueryContext(ctx, getAnalysisHistory, arg.IsArchived, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Analysis
	for rows.Next() {
		var i Analysis
		if err := rows.Scan(
			&i.ID,
			&i.CandidateName,
			&i.ResumeFilename,
			&i.JdFilename,
			&i.OverallScore,
			&i.HardMatchScore,
			&i.SemanticMatchScore,
			&i.Verdict,
			&i.MatchedSkills,
			&i.MissingSkills,
			&i.ImprovementPlan,
			&i.ResumeWordCount,
			&i.JdWordCount,
			&i.IsArchived,
			&i.Notes,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getAnalysisStats = `-- name: GetAnalysisStats :one
SELECT
    COUNT(id) AS total_analyses,
    COALESCE(AVG(overall_score), 0)::float8 AS avg_score,
    COALESCE(MAX(overall_score), 0)::float8 AS max_score,
    COALESCE(MIN(overall_score), 0)::float8 AS min_score
FROM analyses
WHERE is_archived = FALSE
`

type GetAnalysisStatsRow struct {
	TotalAnalyses int64
	AvgScore      float64
	MaxScore      float64
	MinScore      float64
}

func (q *Queries) GetAnalysisStats(ctx context.Context) (GetAnalysisStatsRow, error) {
	row := q.db.QueryRowContext(ctx, getAnalysisStats)
	var i GetAnalysisStatsRow
	err := row.Scan(
		&i.TotalAnalyses,
		&i.AvgScore,
		&i.MaxScore,
		&i.MinScore,
	)
	return i, err
}

const getAnalysisScores = `-- name: GetAnalysisScores :many
SELECT overall_score FROM analyses WHERE is_archived = FALSE
`

func (q *Queries) GetAnalysisScores(ctx context.Context) ([]float64, error) {
	rows, err := q.db.QueryContext(ctx, getAnalysisScores)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []float64
	for rows.Next() {
		var overall_score float64
		if err := rows.Scan(&overall_score); err != nil {
			return nil, err
		}
		items = append(items, overall_score)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const archiveAnalysis = `-- name: ArchiveAnalysis :execrows
UPDATE analyses
SET is_archived = TRUE
WHERE id = $1
`

func (q *Queries) ArchiveAnalysis(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.ExecContext(ctx, archiveAnalysis, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteAnalysis = `-- name: DeleteAnalysis :execrows
DELETE FROM analyses
WHERE id = $1
`

func (q *Queries) DeleteAnalysis(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteAnalysis, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const clearAnalyses = `-- name: ClearAnalyses :exec
DELETE FROM analyses
`

func (q *Queries) ClearAnalyses(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, clearAnalyses)
	return err
}
