// Package recommender produces study recommendations from aggregated topic
// performance. The primary path asks an LLM for structured JSON advice; every
// failure mode (transport, rate limit, malformed output) silently resolves to
// the deterministic local generator so callers never see an error.
package recommender

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"quizent/internal/domain"
	"quizent/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const promptTemplate = `You are an expert programming tutor. Based on the following student performance data, provide personalized learning recommendations.

Student Performance Summary:
%s

Respond in the following JSON format ONLY (no markdown, no code blocks, just raw JSON):
{
  "summary": "A 2-3 sentence overall assessment of the student's performance",
  "strengths": ["strength 1", "strength 2"],
  "weaknesses": ["weakness 1", "weakness 2"],
  "recommendations": ["specific actionable recommendation 1", "specific actionable recommendation 2", "specific actionable recommendation 3"],
  "studyPlan": "A paragraph describing a recommended study plan for the next week"
}`

// llmRecommender implements domain.Recommender over a langchaingo model.
type llmRecommender struct {
	llmClient llms.Model
	timeout   time.Duration
}

// NewLLMRecommender creates a new instance of llmRecommender.
func NewLLMRecommender(llm llms.Model, timeout time.Duration) domain.Recommender {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &llmRecommender{
		llmClient: llm,
		timeout:   timeout,
	}
}

// PerformanceSummary renders one line per topic for prompt embedding.
func PerformanceSummary(performances []domain.TopicPerformance) string {
	lines := make([]string, 0, len(performances))
	for _, p := range performances {
		lines = append(lines, fmt.Sprintf("%s (%s): %.0f%% accuracy - %s",
			p.TopicName, p.Language, p.Accuracy, p.Competency))
	}
	return strings.Join(lines, "\n")
}

// Recommend implements domain.Recommender. It never returns an error: any
// failure falls back to the deterministic generator.
func (r *llmRecommender) Recommend(ctx context.Context, performances []domain.TopicPerformance) (*domain.Recommendation, error) {
	l := logger.Get()

	if r.llmClient == nil {
		return Fallback(performances), nil
	}

	prompt := fmt.Sprintf(promptTemplate, PerformanceSummary(performances))

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := llms.GenerateFromSinglePrompt(callCtx, r.llmClient, prompt,
		llms.WithTemperature(0.7),
		llms.WithMaxTokens(1024),
	)
	if err != nil {
		if isRateLimited(err) {
			// Quota exhaustion is expected operation, not an incident.
			l.Warn("Recommendation LLM rate limited, using local fallback", zap.Error(err))
		} else {
			l.Error("Recommendation LLM call failed, using local fallback", zap.Error(err))
		}
		return Fallback(performances), nil
	}

	rec, err := parseRecommendation(raw)
	if err != nil {
		l.Error("Failed to parse LLM recommendation, using local fallback",
			zap.Error(err),
			zap.String("raw_response", raw))
		return Fallback(performances), nil
	}

	return rec, nil
}

// parseRecommendation strips incidental markdown code fences and decodes the
// structured recommendation payload.
func parseRecommendation(raw string) (*domain.Recommendation, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	jsonStart := strings.Index(cleaned, "{")
	jsonEnd := strings.LastIndex(cleaned, "}")
	if jsonStart == -1 || jsonEnd <= jsonStart {
		return nil, fmt.Errorf("no JSON object found in LLM response")
	}

	var rec domain.Recommendation
	if err := json.Unmarshal([]byte(cleaned[jsonStart:jsonEnd+1]), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendation JSON: %w", err)
	}
	if rec.Summary == "" {
		return nil, fmt.Errorf("recommendation payload missing summary")
	}
	return &rec, nil
}

// isRateLimited reports whether an LLM error looks like quota or availability
// throttling (HTTP 429/503 from the provider).
func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "503") ||
		strings.Contains(strings.ToLower(msg), "rate limit")
}
