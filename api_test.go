package main

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumecheck/internal/database"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

var analysisColumns = []string{
	"id", "candidate_name", "resume_filename", "jd_filename", "overall_score",
	"hard_match_score", "semantic_match_score", "verdict", "matched_skills",
	"missing_skills", "improvement_plan", "resume_word_count", "jd_word_count",
	"is_archived", "notes", "created_at",
}

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	app := &AppConfig{DB: database.New(db), Port: "5000"}
	return app.newRouter(), mock
}

func matchRequest(t *testing.T, files map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for field, content := range map[string][2]string{
		"resume": {files["resume_name"], files["resume"]},
		"jd":     {files["jd_name"], files["jd"]},
	} {
		if content[0] == "" {
			continue
		}
		fw, err := w.CreateFormFile(field, content[0])
		require.NoError(t, err)
		_, err = fw.Write([]byte(content[1]))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, "/match", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHandleHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.NotEmpty(t, resp["timestamp"])
}

func TestHandleMatch(t *testing.T) {
	router, mock := newTestRouter(t)
	mock.MatchExpectationsInOrder(false)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO analyses")).
		WillReturnRows(sqlmock.NewRows(analysisColumns).AddRow(
			id.String(), "John Smith", "resume.txt", "jd.txt", 66.0, 0.3, 0.4,
			"Good", []byte(`["python","docker"]`), []byte(`["sql"]`), []byte(`[]`),
			int32(7), int32(8), false, "", time.Now(),
		))
	for i := 0; i < 3; i++ {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO skills_tracking")).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	req := matchRequest(t, map[string]string{
		"resume_name": "resume.txt",
		"resume":      "John Smith\nPython developer with Docker experience",
		"jd_name":     "jd.txt",
		"jd":          "We need Python and SQL and Docker skills",
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp matchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, id, resp.ID)
	assert.Equal(t, 66, resp.Score)
	assert.Equal(t, "Good", resp.Verdict)
	assert.Equal(t, []string{"python", "docker"}, resp.MatchedSkills)
	assert.Equal(t, []string{"sql"}, resp.MissingSkills)
	assert.Equal(t, 3, resp.TotalSkillsRequired)
	assert.Equal(t, 2, resp.SkillsMatched)
	assert.Equal(t, "John Smith", resp.CandidateName)
	assert.Greater(t, resp.HardMatchScore, 0.0)
	assert.Greater(t, resp.SemanticMatchScore, 0.0)
	require.Len(t, resp.ImprovementPlan, 1)
	assert.Equal(t, "Sql", resp.ImprovementPlan[0].Skill)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleMatchMissingFile(t *testing.T) {
	router, _ := newTestRouter(t)

	req := matchRequest(t, map[string]string{
		"resume_name": "resume.txt",
		"resume":      "python developer",
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "resume or jd file missing")
}

func TestHandleMatchUnsupportedFileType(t *testing.T) {
	router, _ := newTestRouter(t)

	req := matchRequest(t, map[string]string{
		"resume_name": "resume.png",
		"resume":      "python developer",
		"jd_name":     "jd.txt",
		"jd":          "python role",
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported file type")
}

func TestHandleHistory(t *testing.T) {
	router, mock := newTestRouter(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM analyses")).
		WithArgs(false, int32(50)).
		WillReturnRows(sqlmock.NewRows(analysisColumns).AddRow(
			id.String(), "Jane Doe", "cv.pdf", "jd.txt", 80.0, 0.7, 0.8,
			"Excellent", []byte(`["python"]`), []byte(`[]`), []byte(`[]`),
			int32(200), int32(90), false, "", time.Now(),
		))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		History []historyItem `json:"history"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.History, 1)
	assert.Equal(t, "Jane Doe", resp.History[0].CandidateName)
	assert.Equal(t, []string{"python"}, resp.History[0].MatchedSkills)
	assert.Empty(t, resp.History[0].MissingSkills)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleHistoryQueryParams(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM analyses")).
		WithArgs(true, int32(5)).
		WillReturnRows(sqlmock.NewRows(analysisColumns))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history?limit=5&archived=true", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleClearHistory(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM analyses")).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM skills_tracking")).
		WillReturnResult(sqlmock.NewResult(0, 5))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/history", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cleared":true`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleStats(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("COUNT(id)")).
		WillReturnRows(sqlmock.NewRows([]string{"total_analyses", "avg_score", "max_score", "min_score"}).
			AddRow(int64(4), 51.25, 85.0, 10.0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT overall_score FROM analyses")).
		WillReturnRows(sqlmock.NewRows([]string{"overall_score"}).
			AddRow(85.0).AddRow(65.0).AddRow(45.0).AddRow(10.0))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		TotalAnalyses     int64          `json:"total_analyses"`
		AvgScore          float64        `json:"avg_score"`
		ScoreDistribution map[string]int `json:"score_distribution"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(4), resp.TotalAnalyses)
	assert.Equal(t, 51.25, resp.AvgScore)
	assert.Equal(t, map[string]int{"excellent": 1, "good": 1, "average": 1, "poor": 1}, resp.ScoreDistribution)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleTrendingSkills(t *testing.T) {
	router, mock := newTestRouter(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM skills_tracking")).
		WithArgs(int32(20)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "skill_name", "skill_category", "frequency_in_jds", "frequency_in_resumes", "last_seen",
		}).AddRow(id.String(), "python", "programming_languages", int32(12), int32(9), time.Now()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/skills/trending", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		TrendingSkills []struct {
			SkillName      string `json:"skill_name"`
			FrequencyInJds int32  `json:"frequency_in_jds"`
		} `json:"trending_skills"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.TrendingSkills, 1)
	assert.Equal(t, "python", resp.TrendingSkills[0].SkillName)
	assert.Equal(t, int32(12), resp.TrendingSkills[0].FrequencyInJds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleArchiveAnalysis(t *testing.T) {
	router, mock := newTestRouter(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE analyses")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyses/"+id.String()+"/archive", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), id.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleArchiveAnalysisBadID(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyses/not-a-uuid/archive", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid analysis id")
}

func TestHandleDeleteAnalysisNotFound(t *testing.T) {
	router, mock := newTestRouter(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM analyses")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/analyses/"+id.String(), nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "analysis not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleExport(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM analyses")).
		WithArgs(false, int32(1000)).
		WillReturnRows(sqlmock.NewRows(analysisColumns))
	mock.ExpectQuery(regexp.QuoteMeta("COUNT(id)")).
		WillReturnRows(sqlmock.NewRows([]string{"total_analyses", "avg_score", "max_score", "min_score"}).
			AddRow(int64(0), 0.0, 0.0, 0.0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM skills_tracking")).
		WithArgs(int32(20)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "skill_name", "skill_category", "frequency_in_jds", "frequency_in_resumes", "last_seen",
		}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "analyses")
	assert.Contains(t, resp, "statistics")
	assert.Contains(t, resp, "trending_skills")
	assert.Contains(t, resp, "export_timestamp")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRoutesDisabledWithoutBatchStack(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewBufferString(`{}`)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
