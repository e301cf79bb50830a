package dto

import "quizent/internal/domain"

// TopicResponse represents a topic in the API response
// @Description Topic information
type TopicResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language"`
}

// QuizResponse represents a quiz in the API response
// @Description Quiz catalog entry
type QuizResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	TopicName     string `json:"topic_name"`
	Language      string `json:"language"`
	QuestionCount int    `json:"question_count"`
}

// QuestionResponse represents a question presented to the client. The correct
// answer index is deliberately absent.
type QuestionResponse struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	Difficulty string   `json:"difficulty"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}

// QuizResponseFromDomain converts a domain quiz to its API shape.
func QuizResponseFromDomain(q *domain.Quiz) QuizResponse {
	return QuizResponse{
		ID:            q.ID,
		Title:         q.Title,
		TopicName:     q.TopicName,
		Language:      q.Language,
		QuestionCount: q.QuestionCount,
	}
}

// QuestionResponseFromDomain converts a domain question to its API shape.
func QuestionResponseFromDomain(q *domain.Question) QuestionResponse {
	return QuestionResponse{
		ID:         q.ID,
		Text:       q.Text,
		Options:    q.Options,
		Difficulty: q.Difficulty.String(),
	}
}
