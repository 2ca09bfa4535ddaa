package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"resumecheck/internal/database"
	"resumecheck/internal/extract"
	"resumecheck/internal/match"
	"resumecheck/internal/skills"
)

func errorResult(r database.Resume, msg string) ResumeResult {
	return ResumeResult{
		ResumeID:      r.ID,
		Filename:      r.OriginalFilename,
		IsErrorResult: true,
		Error:         msg,
	}
}

// scoreResume runs the local scoring pipeline on one resume's raw text.
func scoreResume(ctx context.Context, resumeRaw, jobTitle, jobDescription string, embedder *match.Embedder, r database.Resume) ResumeResult {
	resumeText := extract.Prepare(resumeRaw)
	jdText := extract.Prepare(jobTitle + "\n" + jobDescription)
	if resumeText == "" || jdText == "" {
		return errorResult(r, "empty text after extraction")
	}

	analysis := skills.Analyze(resumeText, jdText)
	hard := match.HardScore(resumeText, jdText)
	semantic := match.SemanticScore(ctx, embedder, resumeText, jdText)

	return ResumeResult{
		ResumeID:      r.ID,
		Filename:      r.OriginalFilename,
		CandidateName: extract.CandidateName(resumeRaw),
		MatchScore:    analysis.Score,
		Verdict:       analysis.Verdict,
		MatchedSkills: orEmpty(analysis.Matched),
		MissingSkills: orEmpty(analysis.Missing),
		Plan:          analysis.Plan,
		HardScore:     hard,
		SemanticScore: semantic,
	}
}

// reviewerMessage feeds the LLM reviewer the documents plus the already
// computed keyword analysis so it never invents its own scores.
func reviewerMessage(currentSession Session, resumeRaw string, result ResumeResult) string {
	return fmt.Sprintf(
		"Job Title:\n%s\n\nJob Description:\n%s\n\nResume:\n%s\n\nKeyword analysis:\nmatch_score: %d\nmatched_skills: %s\nmissing_skills: %s",
		currentSession.JobTitle,
		currentSession.JobDescription,
		resumeRaw,
		result.MatchScore,
		strings.Join(result.MatchedSkills, ", "),
		strings.Join(result.MissingSkills, ", "),
	)
}

// analyzeSession scores every resume registered against a session.
// Failures are retried selectively: network & DB retries only where needed,
// and a single broken resume never fails the whole session.
func analyzeSession(currentSession Session, app *AppConfig) error {
	ctx := context.Background()
	resumes, err := app.DB.GetResumesBySession(ctx, currentSession.ID)
	if err != nil {
		return fmt.Errorf("error getting resumes for session: %v, err: %v", currentSession.ID, err)
	}

	results := &SessionResults{
		SessionID: currentSession.ID,
	}

	var agentSession *session.CreateResponse
	if app.reviewerEnabled() {
		agentSession, err = app.AgentSessionService.Create(ctx, &session.CreateRequest{
			AppName:   app.AgentName,
			UserID:    currentSession.UserID.String(),
			SessionID: currentSession.ID.String(),
		})
		if err != nil {
			return fmt.Errorf("failed to create agent session: %w", err)
		}
	}

	awsClient := app.r2Client()

	for _, resume := range resumes {
		// downloads are retried, network failures are transient
		fileBytes, err := retry(3, func() ([]byte, error) {
			return DownloadFromR2(ctx, awsClient, app.R2.Bucket, resume.ObjectKey)
		})
		if err != nil {
			log.Printf("failed to download %s after retries: %v", resume.ObjectKey, err)
			results.Results = append(results.Results, errorResult(resume, fmt.Sprintf("file download error: %v", err)))
			continue
		}

		resumeRaw, err := extract.Text(resume.Mime, fileBytes)
		if err != nil {
			log.Printf("text extraction failed for %s: %v", resume.ObjectKey, err)
			results.Results = append(results.Results, errorResult(resume, fmt.Sprintf("text extraction error: %v", err)))
			continue
		}

		result := scoreResume(ctx, resumeRaw, currentSession.JobTitle, currentSession.JobDescription, app.Embedder, resume)

		if !result.IsErrorResult && app.reviewerEnabled() {
			msg := reviewerMessage(currentSession, resumeRaw, result)

			// the reviewer stream is retried separately for transient agent failures
			finalOutput, streamErr := retry(2,
				func() (string, error) {
					stream := app.AgentRunner.Run(ctx, agentSession.Session.UserID(), agentSession.Session.ID(), &genai.Content{
						Role: "user",
						Parts: []*genai.Part{
							{Text: msg},
						},
					}, agent.RunConfig{})

					var output string
					for event, err := range stream {
						if err != nil {
							return "", err
						}
						if event != nil && event.IsFinalResponse() && len(event.Content.Parts) > 0 {
							output = event.Content.Parts[0].Text
						}
					}

					if output == "" {
						return "", fmt.Errorf("empty agent response")
					}
					return output, nil
				})

			if streamErr != nil {
				// scores are already computed locally, so a reviewer failure
				// only costs the narrative
				log.Printf("reviewer failed for %s after retries: %v", resume.ObjectKey, streamErr)
			} else if summary, recommendation, ok := parseReviewerNotes(finalOutput); ok {
				result.Summary = summary
				result.Recommendation = recommendation
			} else {
				log.Printf("reviewer returned unparseable output for %s", resume.ObjectKey)
			}
		}

		results.Results = append(results.Results, result)
	}
	log.Println("session id: " + currentSession.ID.String() + " analyzed")

	if agentSession != nil {
		err = app.AgentSessionService.Delete(ctx, &session.DeleteRequest{
			AppName:   agentSession.Session.AppName(),
			UserID:    agentSession.Session.UserID(),
			SessionID: agentSession.Session.ID(),
		})
		if err != nil {
			return fmt.Errorf("failed to delete agent session: %v", err)
		}
	}

	resultsJSON, err := json.Marshal(results.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal analyses results: %w", err)
	}

	_, err = retry(3, func() (any, error) {
		return nil, app.DB.CreateOrUpdateAnalysesResults(ctx, database.CreateOrUpdateAnalysesResultsParams{
			Results:   resultsJSON,
			SessionID: results.SessionID,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to save session results after retries: %w", err)
	}

	return nil
}

func (app *AppConfig) setSessionStatus(id uuid.UUID, status, message string) {
	err := app.DB.UpdateSessionStatus(context.Background(), database.UpdateSessionStatusParams{
		Status: status,
		ID:     id,
	})
	if err != nil {
		log.Printf("error updating session status to %s for session_id: %v. err: %v", status, id, err)
	}
	update := map[string]any{
		"session_id": id,
		"status":     status,
		"message":    message,
		"timestamp":  time.Now(),
	}
	if err := publishSessionUpdate(app.RabbitConn, id.String(), update); err != nil {
		log.Println("failed to publish update:", err)
	}
}

func worker(id int, app *AppConfig, wg *sync.WaitGroup) {
	defer wg.Done()
	conn, err := amqp.Dial(app.RABBITMQUrl)
	if err != nil {
		log.Fatal("error dialling rabbitmq: " + err.Error())
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal("error connecting to rabbitmq channel: " + err.Error())
	}
	defer ch.Close()
	_, err = ch.QueueDeclare(
		"sessions", // queue name
		true,       // durable (survives broker restarts)
		false,      // auto-delete when unused
		false,      // exclusive
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		log.Fatalf("Failed to declare queue: %v", err)
	}

	msgs, err := ch.Consume(
		"sessions", // queue name
		"",         // consumer tag
		true,       // auto-ack
		false,      // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		log.Fatal("error consuming rabbitmq message: " + err.Error())
	}

	for msg := range msgs {
		currentSession := Session{}
		err = json.Unmarshal(msg.Body, &currentSession)
		if err != nil {
			log.Printf("error unmarshalling message body. err: %v", err)
			app.setSessionStatus(currentSession.ID, "failed", "analysis failed")
			continue
		}
		log.Printf("Worker %d processing session. session_id: %s", id+1, currentSession.ID)

		app.setSessionStatus(currentSession.ID, "processing", "analysis started")

		err = analyzeSession(currentSession, app)
		if err != nil {
			log.Printf("error analyzing session_id: %v. err: %v", currentSession.ID, err)
			app.setSessionStatus(currentSession.ID, "failed", "analysis failed")
			continue
		}

		app.setSessionStatus(currentSession.ID, "completed", "analysis completed")
	}
}

func (app *AppConfig) StartConsumerWorkerPool(numWorkers int) {
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for i := range numWorkers {
		log.Println("worker id ", i+1, "started")
		go worker(i, app, &wg)
	}
	wg.Wait() // block until all workers finish
}
