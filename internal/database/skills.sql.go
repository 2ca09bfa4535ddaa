package database

import (
	"context"
)

const upsertSkillObservation = `-- name: UpsertSkillObservation :exec
INSERT INTO skills_tracking (
skill_name, skill_category, frequency_in_jds, frequency_in_resumes, last_seen)
VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
ON CONFLICT (skill_name)
DO UPDATE SET
    frequency_in_jds = skills_tracking.frequency_in_jds + EXCLUDED.frequency_in_jds,
    frequency_in_resumes = skills_tracking.frequency_in_resumes + EXCLUDED.frequency_in_resumes,
    last_seen = CURRENT_TIMESTAMP
`

type UpsertSkillObservationParams struct {
	SkillName          string
	SkillCategory      string
	FrequencyInJds     int32
	FrequencyInResumes int32
}

func (q *Queries) UpsertSkillObservation(ctx context.Context, arg UpsertSkillObservationParams) error {
	_, err := q.db.ExecContext(ctx, upsertSkillObservation,
		arg.SkillName,
		arg.SkillCategory,
		arg.FrequencyInJds,
		arg.FrequencyInResumes,
	)
	return err
}

const getTrendingSkills = `-- name: GetTrendingSkills :many
SELECT id, skill_name, skill_category, frequency_in_jds, frequency_in_resumes, last_seen FROM skills_tracking
ORDER BY frequency_in_jds DESC
LIMIT $1
`

func (q *Queries) GetTrendingSkills(ctx context.Context, limit int32) ([]SkillsTracking, error) {
	rows, err := q.db.QueryContext(ctx, getTrendingSkills, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SkillsTracking
	for rows.Next() {
		var i SkillsTracking
		if err := rows.Scan(
			&i.ID,
			&i.SkillName,
			&i.SkillCategory,
			&i.FrequencyInJds,
			&i.FrequencyInResumes,
			&i.LastSeen,
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

const clearSkillsTracking = `-- name: ClearSkillsTracking :exec
DELETE FROM skills_tracking
`

func (q *Queries) ClearSkillsTracking(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, clearSkillsTracking)
	return err
}
