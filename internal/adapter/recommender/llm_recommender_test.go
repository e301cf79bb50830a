package recommender

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizent/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/tmc/langchaingo/llms"
)

// stubModel returns a canned response or error for every prompt.
type stubModel struct {
	response string
	err      error
	prompts  []string
}

func (s *stubModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, m := range messages {
		for _, part := range m.Parts {
			if text, ok := part.(llms.TextContent); ok {
				s.prompts = append(s.prompts, text.Text)
			}
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: s.response}},
	}, nil
}

func (s *stubModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func samplePerformances() []domain.TopicPerformance {
	return []domain.TopicPerformance{
		{TopicName: "Arrays", Language: "Java", Accuracy: 85, Competency: domain.CompetencyStrong, AttemptsCount: 3},
		{TopicName: "Linked Lists", Language: "Java", Accuracy: 30, Competency: domain.CompetencyWeak, AttemptsCount: 2},
	}
}

func TestRecommend_ParsesRawJSON(t *testing.T) {
	model := &stubModel{response: `{
		"summary": "Solid on Arrays, Linked Lists need work.",
		"strengths": ["Arrays mastery"],
		"weaknesses": ["Linked Lists basics"],
		"recommendations": ["Review pointers", "Practice daily", "Redo missed questions"],
		"studyPlan": "Spend the week alternating topics."
	}`}
	r := NewLLMRecommender(model, 5*time.Second)

	rec, err := r.Recommend(context.Background(), samplePerformances())
	assert.NoError(t, err)
	assert.Equal(t, "Solid on Arrays, Linked Lists need work.", rec.Summary)
	assert.Equal(t, []string{"Arrays mastery"}, rec.Strengths)
	assert.Len(t, rec.Recommendations, 3)

	// Prompt embeds the performance summary lines.
	assert.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "Arrays (Java): 85% accuracy - strong")
	assert.Contains(t, model.prompts[0], "Linked Lists (Java): 30% accuracy - weak")
}

func TestRecommend_StripsCodeFences(t *testing.T) {
	model := &stubModel{response: "```json\n{\"summary\":\"ok\",\"strengths\":[],\"weaknesses\":[],\"recommendations\":[],\"studyPlan\":\"plan\"}\n```"}
	r := NewLLMRecommender(model, 5*time.Second)

	rec, err := r.Recommend(context.Background(), samplePerformances())
	assert.NoError(t, err)
	assert.Equal(t, "ok", rec.Summary)
}

func TestRecommend_FallsBackOnTransportError(t *testing.T) {
	model := &stubModel{err: errors.New("connection refused")}
	r := NewLLMRecommender(model, 5*time.Second)

	rec, err := r.Recommend(context.Background(), samplePerformances())
	assert.NoError(t, err, "transport failures must never surface")
	assert.NotNil(t, rec)
	assert.NotEmpty(t, rec.Summary)
}

func TestRecommend_FallsBackOnRateLimit(t *testing.T) {
	model := &stubModel{err: errors.New("API returned unexpected status code: 429")}
	r := NewLLMRecommender(model, 5*time.Second)

	rec, err := r.Recommend(context.Background(), samplePerformances())
	assert.NoError(t, err)
	assert.Equal(t, Fallback(samplePerformances()), rec)
}

func TestRecommend_FallsBackOnMalformedJSON(t *testing.T) {
	model := &stubModel{response: "I recommend practicing more! No JSON here."}
	r := NewLLMRecommender(model, 5*time.Second)

	rec, err := r.Recommend(context.Background(), samplePerformances())
	assert.NoError(t, err)
	assert.Equal(t, Fallback(samplePerformances()), rec)
}

func TestRecommend_NilModelUsesFallback(t *testing.T) {
	r := NewLLMRecommender(nil, 0)
	rec, err := r.Recommend(context.Background(), samplePerformances())
	assert.NoError(t, err)
	assert.Equal(t, Fallback(samplePerformances()), rec)
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, isRateLimited(errors.New("status 429 too many requests")))
	assert.True(t, isRateLimited(errors.New("status 503 service unavailable")))
	assert.True(t, isRateLimited(errors.New("openai: Rate limit exceeded")))
	assert.False(t, isRateLimited(errors.New("connection refused")))
}
