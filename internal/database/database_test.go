package database

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var analysisColumns = []string{
	"id", "candidate_name", "resume_filename", "jd_filename", "overall_score",
	"hard_match_score", "semantic_match_score", "verdict", "matched_skills",
	"missing_skills", "improvement_plan", "resume_word_count", "jd_word_count",
	"is_archived", "notes", "created_at",
}

func newMock(t *testing.T) (*Queries, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestCreateAnalysis(t *testing.T) {
	q, mock := newMock(t)
	id := uuid.New()
	created := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO analyses")).
		WithArgs(
			"John Smith", "resume.pdf", "jd.txt", 66.0, 0.42, 0.61, "Good",
			[]byte(`["python","docker"]`), []byte(`["sql"]`), []byte(`[]`),
			int32(120), int32(80), "",
		).
		WillReturnRows(sqlmock.NewRows(analysisColumns).AddRow(
			id.String(), "John Smith", "resume.pdf", "jd.txt", 66.0, 0.42, 0.61,
			"Good", []byte(`["python","docker"]`), []byte(`["sql"]`), []byte(`[]`),
			int32(120), int32(80), false, "", created,
		))

	got, err := q.CreateAnalysis(context.Background(), CreateAnalysisParams{
		CandidateName:      "John Smith",
		ResumeFilename:     "resume.pdf",
		JdFilename:         "jd.txt",
		OverallScore:       66.0,
		HardMatchScore:     0.42,
		SemanticMatchScore: 0.61,
		Verdict:            "Good",
		MatchedSkills:      json.RawMessage(`["python","docker"]`),
		MissingSkills:      json.RawMessage(`["sql"]`),
		ImprovementPlan:    json.RawMessage(`[]`),
		ResumeWordCount:    120,
		JdWordCount:        80,
		Notes:              "",
	})
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Good", got.Verdict)
	assert.Equal(t, 66.0, got.OverallScore)
	assert.JSONEq(t, `["sql"]`, string(got.MissingSkills))
	assert.False(t, got.IsArchived)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAnalysisHistory(t *testing.T) {
	q, mock := newMock(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM analyses")).
		WithArgs(false, int32(50)).
		WillReturnRows(sqlmock.NewRows(analysisColumns).AddRow(
			id.String(), "Jane Doe", "cv.docx", "jd.pdf", 80.0, 0.7, 0.8,
			"Excellent", []byte(`["python"]`), []byte(`[]`), []byte(`[]`),
			int32(200), int32(90), false, "", time.Now(),
		))

	items, err := q.GetAnalysisHistory(context.Background(), GetAnalysisHistoryParams{
		IsArchived: false,
		Limit:      50,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Jane Doe", items[0].CandidateName)
	assert.Equal(t, "Excellent", items[0].Verdict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAnalysisStats(t *testing.T) {
	q, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("COUNT(id)")).
		WillReturnRows(sqlmock.NewRows([]string{"total_analyses", "avg_score", "max_score", "min_score"}).
			AddRow(int64(4), 62.5, 91.0, 33.0))

	stats, err := q.GetAnalysisStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalAnalyses)
	assert.Equal(t, 62.5, stats.AvgScore)
	assert.Equal(t, 91.0, stats.MaxScore)
	assert.Equal(t, 33.0, stats.MinScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAnalysisScores(t *testing.T) {
	q, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT overall_score FROM analyses")).
		WillReturnRows(sqlmock.NewRows([]string{"overall_score"}).AddRow(50.0).AddRow(75.0))

	scores, err := q.GetAnalysisScores(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []float64{50.0, 75.0}, scores)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveAnalysis(t *testing.T) {
	q, mock := newMock(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE analyses")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := q.ArchiveAnalysis(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAnalysisNotFound(t *testing.T) {
	q, mock := newMock(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM analyses")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rows, err := q.DeleteAnalysis(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearAnalyses(t *testing.T) {
	q, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM analyses")).
		WillReturnResult(sqlmock.NewResult(0, 7))

	require.NoError(t, q.ClearAnalyses(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearSkillsTracking(t *testing.T) {
	q, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM skills_tracking")).
		WillReturnResult(sqlmock.NewResult(0, 4))

	require.NoError(t, q.ClearSkillsTracking(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertSkillObservation(t *testing.T) {
	q, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO skills_tracking")).
		WithArgs("python", "programming_languages", int32(1), int32(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := q.UpsertSkillObservation(context.Background(), UpsertSkillObservationParams{
		SkillName:          "python",
		SkillCategory:      "programming_languages",
		FrequencyInJds:     1,
		FrequencyInResumes: 1,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTrendingSkills(t *testing.T) {
	q, mock := newMock(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM skills_tracking")).
		WithArgs(int32(20)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "skill_name", "skill_category", "frequency_in_jds", "frequency_in_resumes", "last_seen",
		}).AddRow(id.String(), "python", "programming_languages", int32(12), int32(9), time.Now()))

	items, err := q.GetTrendingSkills(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "python", items[0].SkillName)
	assert.Equal(t, int32(12), items[0].FrequencyInJds)
	assert.NoError(t, mock.ExpectationsWereMet())
}
