package dto

import "quizent/internal/domain"

// StartSessionRequest represents the request body for starting a quiz session
// @Description Request body for starting an adaptive quiz session
type StartSessionRequest struct {
	UserID string `json:"user_id"`
	QuizID string `json:"quiz_id"`
}

// StartSessionResponse represents a freshly started session and its first question
type StartSessionResponse struct {
	SessionID      string           `json:"session_id"`
	Question       QuestionResponse `json:"question"`
	QuestionNumber int              `json:"question_number"`
	TotalQuestions int              `json:"total_questions"`
}

// SubmitAnswerRequest represents the request body for answering the current question
// @Description Request body for submitting an answer
type SubmitAnswerRequest struct {
	QuestionID     string `json:"question_id"`
	SelectedOption int    `json:"selected_option"`
	TimeSpent      int    `json:"time_spent"`
}

// SubmitAnswerResponse carries per-answer feedback plus either the next
// question or, when the session terminated, the final result.
type SubmitAnswerResponse struct {
	Correct        bool                `json:"correct"`
	CorrectAnswer  int                 `json:"correct_answer"`
	Explanation    string              `json:"explanation,omitempty"`
	Completed      bool                `json:"completed"`
	QuestionNumber int                 `json:"question_number"`
	TotalQuestions int                 `json:"total_questions"`
	NextQuestion   *QuestionResponse   `json:"next_question,omitempty"`
	Result         *QuizResultResponse `json:"result,omitempty"`
}

// QuizResultResponse represents the terminal summary of a completed session
type QuizResultResponse struct {
	AttemptID      string                     `json:"attempt_id"`
	Score          int                        `json:"score"`
	TotalQuestions int                        `json:"total_questions"`
	Accuracy       float64                    `json:"accuracy"`
	Competency     string                     `json:"competency"`
	Breakdown      domain.DifficultyBreakdown `json:"breakdown"`
}

// QuizResultResponseFromDomain converts a domain quiz result to its API shape.
func QuizResultResponseFromDomain(r *domain.QuizResult) *QuizResultResponse {
	return &QuizResultResponse{
		AttemptID:      r.Attempt.ID,
		Score:          r.Score,
		TotalQuestions: r.Attempt.TotalQuestions,
		Accuracy:       r.Accuracy,
		Competency:     string(r.Competency),
		Breakdown:      r.Breakdown,
	}
}
