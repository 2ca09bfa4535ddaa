package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resumecheck/internal/database"
	"resumecheck/internal/extract"
	"resumecheck/internal/match"
	"resumecheck/internal/skills"
)

const maxUploadBytes = 10 << 20 // 10MB

func (app *AppConfig) newRouter() *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = maxUploadBytes

	r.GET("/health", app.handleHealth)
	r.POST("/match", app.handleMatch)
	r.GET("/history", app.handleHistory)
	r.DELETE("/history", app.handleClearHistory)
	r.GET("/stats", app.handleStats)
	r.GET("/skills/trending", app.handleTrendingSkills)
	r.POST("/analyses/:id/archive", app.handleArchiveAnalysis)
	r.DELETE("/analyses/:id", app.handleDeleteAnalysis)
	r.GET("/export", app.handleExport)

	if app.batchEnabled() {
		r.POST("/sessions", app.handleCreateSession)
		r.GET("/sessions/:id", app.handleGetSession)
		r.POST("/sessions/:id/resumes", app.handleAddSessionResume)
		r.POST("/sessions/:id/start", app.handleStartSession)
		r.GET("/sessions/:id/results", app.handleSessionResults)
	}
	return r
}

func (app *AppConfig) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// readUpload validates one multipart file and returns its raw extracted text.
func readUpload(fh *multipart.FileHeader) (string, error) {
	if fh.Filename == "" {
		return "", errors.New("no files selected")
	}
	if fh.Size == 0 {
		return "", errors.New("empty upload")
	}
	if fh.Size > maxUploadBytes {
		return "", errors.New("file size too large (max 10MB)")
	}
	mime, err := extract.MimeForFilename(fh.Filename)
	if err != nil {
		return "", err
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	return extract.Text(mime, data)
}

func (app *AppConfig) handleMatch(c *gin.Context) {
	resumeFile, errResume := c.FormFile("resume")
	jdFile, errJd := c.FormFile("jd")
	if errResume != nil || errJd != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resume or jd file missing"})
		return
	}

	resumeRaw, err := readUpload(resumeFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	jdRaw, err := readUpload(jdFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resumeText := extract.Prepare(resumeRaw)
	jdText := extract.Prepare(jdRaw)
	if resumeText == "" || jdText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not extract text from files"})
		return
	}

	analysis := skills.Analyze(resumeText, jdText)
	hard := match.HardScore(resumeText, jdText)
	semantic := match.SemanticScore(c.Request.Context(), app.Embedder, resumeText, jdText)
	candidateName := extract.CandidateName(resumeRaw)

	row, err := app.DB.CreateAnalysis(c.Request.Context(), database.CreateAnalysisParams{
		CandidateName:      candidateName,
		ResumeFilename:     resumeFile.Filename,
		JdFilename:         jdFile.Filename,
		OverallScore:       float64(analysis.Score),
		HardMatchScore:     hard,
		SemanticMatchScore: semantic,
		Verdict:            analysis.Verdict,
		MatchedSkills:      jsonList(analysis.Matched),
		MissingSkills:      jsonList(analysis.Missing),
		ImprovementPlan:    jsonPlan(analysis.Plan),
		ResumeWordCount:    int32(extract.WordCount(resumeText)),
		JdWordCount:        int32(extract.WordCount(jdText)),
	})
	if err != nil {
		log.Printf("error saving analysis: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save analysis"})
		return
	}

	app.trackSkills(c.Request.Context(), analysis, resumeText)

	c.JSON(http.StatusOK, matchResponse{
		ID:                  row.ID,
		Score:               analysis.Score,
		Verdict:             analysis.Verdict,
		MatchedSkills:       orEmpty(analysis.Matched),
		MissingSkills:       orEmpty(analysis.Missing),
		ImprovementPlan:     analysis.Plan,
		TotalSkillsRequired: analysis.Required,
		SkillsMatched:       len(analysis.Matched),
		HardMatchScore:      hard,
		SemanticMatchScore:  semantic,
		KeyPhrases:          match.KeyPhrases(jdText, 10),
		Recommendations:     match.Recommendations(hard, semantic, analysis),
		ResumeFilename:      resumeFile.Filename,
		JdFilename:          jdFile.Filename,
		ResumeWordCount:     extract.WordCount(resumeText),
		JdWordCount:         extract.WordCount(jdText),
		CandidateName:       candidateName,
		Timestamp:           row.CreatedAt,
	})
}

// trackSkills bumps the frequency counters behind GET /skills/trending.
// Failures only log; they never fail the request.
func (app *AppConfig) trackSkills(ctx context.Context, analysis skills.Analysis, resumeText string) {
	for _, name := range analysis.Matched {
		err := app.DB.UpsertSkillObservation(ctx, database.UpsertSkillObservationParams{
			SkillName:          name,
			SkillCategory:      skills.CategoryOf(name),
			FrequencyInJds:     1,
			FrequencyInResumes: 1,
		})
		if err != nil {
			log.Printf("error tracking skill %q: %v", name, err)
		}
	}
	for _, name := range analysis.Missing {
		err := app.DB.UpsertSkillObservation(ctx, database.UpsertSkillObservationParams{
			SkillName:          name,
			SkillCategory:      skills.CategoryOf(name),
			FrequencyInJds:     1,
			FrequencyInResumes: 0,
		})
		if err != nil {
			log.Printf("error tracking skill %q: %v", name, err)
		}
	}

	// resume skills the JD never asked for still feed the trending counters
	required := make(map[string]bool, len(analysis.Matched)+len(analysis.Missing))
	for _, name := range analysis.Matched {
		required[name] = true
	}
	for _, name := range analysis.Missing {
		required[name] = true
	}
	for _, name := range skills.Resume(resumeText) {
		if required[name] {
			continue
		}
		err := app.DB.UpsertSkillObservation(ctx, database.UpsertSkillObservationParams{
			SkillName:          name,
			SkillCategory:      skills.CategoryOf(name),
			FrequencyInJds:     0,
			FrequencyInResumes: 1,
		})
		if err != nil {
			log.Printf("error tracking skill %q: %v", name, err)
		}
	}
}

type historyItem struct {
	ID                 uuid.UUID         `json:"id"`
	CandidateName      string            `json:"candidate_name,omitempty"`
	ResumeFilename     string            `json:"resume_filename"`
	JdFilename         string            `json:"jd_filename"`
	OverallScore       float64           `json:"overall_score"`
	HardMatchScore     float64           `json:"hard_match_score"`
	SemanticMatchScore float64           `json:"semantic_match_score"`
	Verdict            string            `json:"verdict"`
	MatchedSkills      []string          `json:"matched_skills"`
	MissingSkills      []string          `json:"missing_skills"`
	ImprovementPlan    []skills.PlanItem `json:"improvement_plan"`
	ResumeWordCount    int32             `json:"resume_word_count"`
	JdWordCount        int32             `json:"jd_word_count"`
	IsArchived         bool              `json:"is_archived"`
	Notes              string            `json:"notes,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
}

func historyFromRow(a database.Analysis) historyItem {
	item := historyItem{
		ID:                 a.ID,
		CandidateName:      a.CandidateName,
		ResumeFilename:     a.ResumeFilename,
		JdFilename:         a.JdFilename,
		OverallScore:       a.OverallScore,
		HardMatchScore:     a.HardMatchScore,
		SemanticMatchScore: a.SemanticMatchScore,
		Verdict:            a.Verdict,
		MatchedSkills:      []string{},
		MissingSkills:      []string{},
		ImprovementPlan:    []skills.PlanItem{},
		ResumeWordCount:    a.ResumeWordCount,
		JdWordCount:        a.JdWordCount,
		IsArchived:         a.IsArchived,
		Notes:              a.Notes,
		CreatedAt:          a.CreatedAt,
	}
	// stored as jsonb; rows written by older builds may hold null
	_ = json.Unmarshal(a.MatchedSkills, &item.MatchedSkills)
	_ = json.Unmarshal(a.MissingSkills, &item.MissingSkills)
	_ = json.Unmarshal(a.ImprovementPlan, &item.ImprovementPlan)
	return item
}

func (app *AppConfig) handleHistory(c *gin.Context) {
	limit := intQuery(c, "limit", 50)
	archived := c.Query("archived") == "true"

	rows, err := app.DB.GetAnalysisHistory(c.Request.Context(), database.GetAnalysisHistoryParams{
		IsArchived: archived,
		Limit:      int32(limit),
	})
	if err != nil {
		log.Printf("error retrieving analysis history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	items := make([]historyItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, historyFromRow(row))
	}
	c.JSON(http.StatusOK, gin.H{"history": items})
}

// handleClearHistory wipes stored analyses and the skill counters they fed.
func (app *AppConfig) handleClearHistory(c *gin.Context) {
	ctx := c.Request.Context()
	if err := app.DB.ClearAnalyses(ctx); err != nil {
		log.Printf("error clearing analyses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear history"})
		return
	}
	if err := app.DB.ClearSkillsTracking(ctx); err != nil {
		log.Printf("error clearing skills tracking: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

func (app *AppConfig) handleStats(c *gin.Context) {
	stats, err := app.DB.GetAnalysisStats(c.Request.Context())
	if err != nil {
		log.Printf("error retrieving statistics: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
		return
	}
	scores, err := app.DB.GetAnalysisScores(c.Request.Context())
	if err != nil {
		log.Printf("error retrieving score distribution: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
		return
	}

	distribution := map[string]int{"excellent": 0, "good": 0, "average": 0, "poor": 0}
	for _, score := range scores {
		switch {
		case score >= skills.ThresholdExcellent:
			distribution["excellent"]++
		case score >= skills.ThresholdGood:
			distribution["good"]++
		case score >= skills.ThresholdAverage:
			distribution["average"]++
		default:
			distribution["poor"]++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_analyses":     stats.TotalAnalyses,
		"avg_score":          roundTo2(stats.AvgScore),
		"max_score":          stats.MaxScore,
		"min_score":          stats.MinScore,
		"score_distribution": distribution,
	})
}

func (app *AppConfig) handleTrendingSkills(c *gin.Context) {
	limit := intQuery(c, "limit", 20)
	rows, err := app.DB.GetTrendingSkills(c.Request.Context(), int32(limit))
	if err != nil {
		log.Printf("error retrieving trending skills: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load trending skills"})
		return
	}
	type trendingSkill struct {
		SkillName          string    `json:"skill_name"`
		SkillCategory      string    `json:"skill_category"`
		FrequencyInJds     int32     `json:"frequency_in_jds"`
		FrequencyInResumes int32     `json:"frequency_in_resumes"`
		LastSeen           time.Time `json:"last_seen"`
	}
	items := make([]trendingSkill, 0, len(rows))
	for _, row := range rows {
		items = append(items, trendingSkill{
			SkillName:          row.SkillName,
			SkillCategory:      row.SkillCategory,
			FrequencyInJds:     row.FrequencyInJds,
			FrequencyInResumes: row.FrequencyInResumes,
			LastSeen:           row.LastSeen,
		})
	}
	c.JSON(http.StatusOK, gin.H{"trending_skills": items})
}

func (app *AppConfig) handleArchiveAnalysis(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid analysis id"})
		return
	}
	n, err := app.DB.ArchiveAnalysis(c.Request.Context(), id)
	if err != nil {
		log.Printf("error archiving analysis %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to archive analysis"})
		return
	}
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"archived": id})
}

func (app *AppConfig) handleDeleteAnalysis(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid analysis id"})
		return
	}
	n, err := app.DB.DeleteAnalysis(c.Request.Context(), id)
	if err != nil {
		log.Printf("error deleting analysis %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete analysis"})
		return
	}
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (app *AppConfig) handleExport(c *gin.Context) {
	ctx := c.Request.Context()
	rows, err := app.DB.GetAnalysisHistory(ctx, database.GetAnalysisHistoryParams{IsArchived: false, Limit: 1000})
	if err != nil {
		log.Printf("error exporting data: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export data"})
		return
	}
	items := make([]historyItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, historyFromRow(row))
	}
	stats, err := app.DB.GetAnalysisStats(ctx)
	if err != nil {
		log.Printf("error exporting data: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export data"})
		return
	}
	trending, err := app.DB.GetTrendingSkills(ctx, 20)
	if err != nil {
		log.Printf("error exporting data: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analyses": items,
		"statistics": gin.H{
			"total_analyses": stats.TotalAnalyses,
			"avg_score":      roundTo2(stats.AvgScore),
			"max_score":      stats.MaxScore,
			"min_score":      stats.MinScore,
		},
		"trending_skills":  trending,
		"export_timestamp": time.Now().Format(time.RFC3339),
	})
}

// --- batch sessions ---

type createSessionRequest struct {
	Name           string `json:"name"`
	UserID         string `json:"user_id"`
	JobTitle       string `json:"job_title" binding:"required"`
	JobDescription string `json:"job_description" binding:"required"`
}

func (app *AppConfig) handleCreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "job_title and job_description are required"})
		return
	}
	userID := uuid.New()
	if req.UserID != "" {
		parsed, err := uuid.Parse(req.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		userID = parsed
	}
	row, err := app.DB.CreateSession(c.Request.Context(), database.CreateSessionParams{
		Name:           req.Name,
		UserID:         userID,
		Status:         "pending",
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
	})
	if err != nil {
		log.Printf("error creating session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	c.JSON(http.StatusCreated, sessionFromRow(row))
}

func (app *AppConfig) handleGetSession(c *gin.Context) {
	row, ok := app.sessionByParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sessionFromRow(row))
}

type addResumeRequest struct {
	OriginalFilename string `json:"original_filename" binding:"required"`
	Mime             string `json:"mime" binding:"required"`
	SizeBytes        int64  `json:"size_bytes"`
	ObjectKey        string `json:"object_key" binding:"required"`
	StorageUrl       string `json:"storage_url"`
}

func (app *AppConfig) handleAddSessionResume(c *gin.Context) {
	row, ok := app.sessionByParam(c)
	if !ok {
		return
	}
	var req addResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "original_filename, mime and object_key are required"})
		return
	}
	switch req.Mime {
	case extract.MimePDF, extract.MimeDocx, extract.MimePlain:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type: " + req.Mime})
		return
	}
	resume, err := app.DB.CreateResume(c.Request.Context(), database.CreateResumeParams{
		OriginalFilename: req.OriginalFilename,
		Mime:             req.Mime,
		SizeBytes:        req.SizeBytes,
		StorageProvider:  "r2",
		ObjectKey:        req.ObjectKey,
		StorageUrl:       req.StorageUrl,
		UploadStatus:     "uploaded",
		SessionID:        row.ID,
	})
	if err != nil {
		log.Printf("error registering resume for session %s: %v", row.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register resume"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"resume_id": resume.ID})
}

func (app *AppConfig) handleStartSession(c *gin.Context) {
	row, ok := app.sessionByParam(c)
	if !ok {
		return
	}
	if row.Status == "processing" {
		c.JSON(http.StatusConflict, gin.H{"error": "session is already processing"})
		return
	}
	if err := publishSession(app.RabbitConn, sessionFromRow(row)); err != nil {
		log.Printf("error publishing session %s: %v", row.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to queue session"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"session_id": row.ID, "status": "queued"})
}

func (app *AppConfig) handleSessionResults(c *gin.Context) {
	row, ok := app.sessionByParam(c)
	if !ok {
		return
	}
	results, err := app.DB.GetAnalysesResults(c.Request.Context(), row.ID)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "results not ready"})
		return
	}
	if err != nil {
		log.Printf("error loading results for session %s: %v", row.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load results"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": results.SessionID,
		"status":     row.Status,
		"results":    json.RawMessage(results.Results),
		"created_at": results.CreatedAt,
		"updated_at": results.UpdatedAt,
	})
}

func (app *AppConfig) sessionByParam(c *gin.Context) (database.Session, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return database.Session{}, false
	}
	row, err := app.DB.GetSession(c.Request.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return database.Session{}, false
	}
	if err != nil {
		log.Printf("error loading session %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
		return database.Session{}, false
	}
	return row, true
}

func sessionFromRow(row database.Session) Session {
	return Session{
		ID:             row.ID,
		CreatedAt:      row.CreatedAt,
		Name:           row.Name,
		UserID:         row.UserID,
		Status:         row.Status,
		JobTitle:       row.JobTitle,
		JobDescription: row.JobDescription,
	}
}

// --- small helpers ---

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func jsonList(v []string) json.RawMessage {
	data, _ := json.Marshal(orEmpty(v))
	return data
}

func jsonPlan(v []skills.PlanItem) json.RawMessage {
	if v == nil {
		v = []skills.PlanItem{}
	}
	data, _ := json.Marshal(v)
	return data
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func roundTo2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
