package domain

import (
	"strings"
	"time"
)

// Answer is one submitted answer within an attempt. Created once, immutable
// thereafter. Difficulty is copied from the question at answer time so later
// aggregation never re-reads the question bank.
type Answer struct {
	ID             string
	AttemptID      string
	QuestionID     string
	SelectedOption int
	IsCorrect      bool
	Difficulty     Difficulty
	TimeSpent      int // seconds
	Timestamp      time.Time
}

// NewAnswer creates a new Answer instance.
func NewAnswer(id, attemptID string, q *Question, selectedOption, timeSpent int) *Answer {
	return &Answer{
		ID:             id,
		AttemptID:      attemptID,
		QuestionID:     q.ID,
		SelectedOption: selectedOption,
		IsCorrect:      selectedOption == q.CorrectAnswer,
		Difficulty:     q.Difficulty,
		TimeSpent:      timeSpent,
		Timestamp:      time.Now(),
	}
}

// Validate validates the answer.
func (a *Answer) Validate() error {
	if a.AttemptID == "" {
		return NewValidationError("attempt ID is required")
	}
	if a.QuestionID == "" {
		return NewValidationError("question ID is required")
	}
	if a.SelectedOption < 0 {
		return NewValidationError("selected option is required")
	}
	return nil
}

// Attempt is one complete run of a quiz, from first question to termination.
type Attempt struct {
	ID             string
	UserID         string
	QuizID         string
	QuizTitle      string
	TopicName      string
	Language       string
	Score          int
	TotalQuestions int
	Accuracy       float64 // percent, 0..100
	StartedAt      time.Time
	CompletedAt    *time.Time
}

// TierCount is the correct/total pair for one difficulty tier.
type TierCount struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// DifficultyBreakdown partitions answers of an attempt by recorded difficulty.
type DifficultyBreakdown struct {
	Easy   TierCount `json:"easy"`
	Medium TierCount `json:"medium"`
	Hard   TierCount `json:"hard"`
}

// Competency is the coarse classification of accuracy on a topic.
type Competency string

const (
	CompetencyStrong Competency = "strong"
	CompetencyMedium Competency = "medium"
	CompetencyWeak   Competency = "weak"
)

// TopicKey identifies a topic for aggregation purposes. Grouping by raw
// (name, language) strings miscounts on naming drift ("Arrays" vs "arrays"),
// so keys are canonicalized: case-folded, trimmed, inner whitespace collapsed.
type TopicKey string

// NewTopicKey builds the canonical aggregation key for a topic name and language.
func NewTopicKey(topicName, language string) TopicKey {
	return TopicKey(canonicalize(topicName) + "|" + canonicalize(language))
}

func canonicalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

// TopicPerformance is derived per-topic mastery, recomputed from attempts and
// never persisted as primary state.
type TopicPerformance struct {
	Key           TopicKey
	TopicName     string
	Language      string
	Accuracy      float64 // unweighted mean of attempt accuracies, percent
	Competency    Competency
	AttemptsCount int
}

// QuizResult is the terminal summary of a completed session.
type QuizResult struct {
	Attempt    Attempt
	Answers    []Answer
	Breakdown  DifficultyBreakdown
	Competency Competency
	Score      int
	Accuracy   float64
}

// Recommendation is the structured study advice shape shared by the LLM path
// and the deterministic fallback.
type Recommendation struct {
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
	StudyPlan       string   `json:"studyPlan"`
}
