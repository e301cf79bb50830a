package domain

import (
	"strings"
	"time"
)

// Difficulty is the ordered question difficulty tier.
// Stored as an int (1: Easy, 2: Medium, 3: Hard), rendered as a string on the wire.
type Difficulty int

const (
	DifficultyEasy   Difficulty = 1
	DifficultyMedium Difficulty = 2
	DifficultyHard   Difficulty = 3
)

// ParseDifficulty converts a string representation to a Difficulty.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(s) {
	case "easy":
		return DifficultyEasy
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	default:
		return DifficultyEasy
	}
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return "easy"
	}
}

// Topic represents a subject area questions belong to (e.g. "Arrays" in "Java").
type Topic struct {
	ID        string
	Name      string
	Language  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTopic creates a new Topic instance.
func NewTopic(id, name, language string) *Topic {
	now := time.Now()
	return &Topic{
		ID:        id,
		Name:      name,
		Language:  language,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the topic.
func (t *Topic) Validate() error {
	if t.Name == "" {
		return NewValidationError("name is required")
	}
	if t.Language == "" {
		return NewValidationError("language is required")
	}
	return nil
}

// Quiz is the metadata for one question pool.
type Quiz struct {
	ID            string
	Title         string
	TopicID       string
	TopicName     string
	Language      string
	QuestionCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate validates the quiz.
func (q *Quiz) Validate() error {
	if q.Title == "" {
		return NewValidationError("title is required")
	}
	if q.TopicID == "" {
		return NewValidationError("topic ID is required")
	}
	return nil
}

// Question is a single multiple-choice question. Immutable once authored.
type Question struct {
	ID            string
	QuizID        string
	Difficulty    Difficulty
	Text          string
	Options       []string
	CorrectAnswer int // index into Options
	Explanation   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate validates the question.
func (q *Question) Validate() error {
	if q.QuizID == "" {
		return NewValidationError("quiz ID is required")
	}
	if q.Text == "" {
		return NewValidationError("question text is required")
	}
	if len(q.Options) != 4 {
		return NewValidationError("exactly four options are required")
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return NewValidationError("correct answer index is out of range")
	}
	return nil
}
