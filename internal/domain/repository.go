package domain

import "context"

// QuestionBank is the read-only port over the quiz catalog. Implementations
// must return stable, complete in-memory sets per quiz (no pagination), so
// the selector can treat the pool as immutable within a session.
type QuestionBank interface {
	GetQuizzes(ctx context.Context) ([]*Quiz, error)
	GetQuizByID(ctx context.Context, quizID string) (*Quiz, error)
	GetQuestions(ctx context.Context, quizID string) ([]*Question, error)
}

// AttemptRepository persists attempts and their answers. The engine only
// emits plain records; any backend that round-trips the fields satisfies it.
type AttemptRepository interface {
	CreateAttempt(ctx context.Context, attempt *Attempt) error
	CompleteAttempt(ctx context.Context, attempt *Attempt) error
	SaveAnswer(ctx context.Context, answer *Answer) error
	GetAttemptsByUser(ctx context.Context, userID string) ([]*Attempt, error)
	GetAnswersByAttempt(ctx context.Context, attemptID string) ([]*Answer, error)
}

// Recommender produces structured study advice from aggregated performance.
// Implementations must always resolve to a usable Recommendation; transport
// or parse failures are handled inside the adapter via the local fallback.
type Recommender interface {
	Recommend(ctx context.Context, performances []TopicPerformance) (*Recommendation, error)
}
