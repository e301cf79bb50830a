package repository

import (
	"context"
	"time"

	"quizent/internal/domain"
	"quizent/internal/repository/models"
	"quizent/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxAttemptRepository implements domain.AttemptRepository using sqlx.
type sqlxAttemptRepository struct {
	db *sqlx.DB
}

// NewSQLXAttemptRepository creates a new instance of sqlxAttemptRepository.
func NewSQLXAttemptRepository(db *sqlx.DB) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

func toDomainAttempt(m *models.Attempt) *domain.Attempt {
	if m == nil {
		return nil
	}
	var completedAt *time.Time
	if m.CompletedAt.Valid {
		completedAt = &m.CompletedAt.Time
	}
	return &domain.Attempt{
		ID:             m.ID,
		UserID:         m.UserID,
		QuizID:         m.QuizID,
		QuizTitle:      m.QuizTitle.String,
		TopicName:      m.TopicName.String,
		Language:       m.Language.String,
		Score:          m.Score,
		TotalQuestions: m.TotalQuestions,
		Accuracy:       m.Accuracy,
		StartedAt:      m.StartedAt,
		CompletedAt:    completedAt,
	}
}

func toDomainAnswer(m *models.Answer) *domain.Answer {
	if m == nil {
		return nil
	}
	return &domain.Answer{
		ID:             m.ID,
		AttemptID:      m.AttemptID,
		QuestionID:     m.QuestionID,
		SelectedOption: m.SelectedOption,
		IsCorrect:      m.IsCorrect != 0,
		Difficulty:     domain.Difficulty(m.Difficulty),
		TimeSpent:      m.TimeSpent,
		Timestamp:      m.AnsweredAt,
	}
}

// CreateAttempt inserts a new attempt row.
func (r *sqlxAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.Attempt) error {
	now := time.Now()
	if attempt.StartedAt.IsZero() {
		attempt.StartedAt = now
	}

	query := `INSERT INTO attempts (ID, USER_ID, QUIZ_ID, QUIZ_TITLE, TOPIC_NAME, LANGUAGE, SCORE, TOTAL_QUESTIONS, ACCURACY, STARTED_AT, COMPLETED_AT, CREATED_AT, UPDATED_AT)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12, :13)`

	_, err := r.db.ExecContext(ctx, query,
		attempt.ID,
		attempt.UserID,
		attempt.QuizID,
		util.StringToNullString(attempt.QuizTitle),
		util.StringToNullString(attempt.TopicName),
		util.StringToNullString(attempt.Language),
		attempt.Score,
		attempt.TotalQuestions,
		attempt.Accuracy,
		attempt.StartedAt,
		nil,
		now,
		now,
	)
	return err
}

// CompleteAttempt writes the final score, accuracy and completion time.
func (r *sqlxAttemptRepository) CompleteAttempt(ctx context.Context, attempt *domain.Attempt) error {
	now := time.Now()
	completedAt := now
	if attempt.CompletedAt != nil {
		completedAt = *attempt.CompletedAt
	}

	query := `UPDATE attempts
	          SET SCORE = :1, TOTAL_QUESTIONS = :2, ACCURACY = :3, COMPLETED_AT = :4, UPDATED_AT = :5
	          WHERE ID = :6 AND DELETED_AT IS NULL`

	_, err := r.db.ExecContext(ctx, query,
		attempt.Score,
		attempt.TotalQuestions,
		attempt.Accuracy,
		completedAt,
		now,
		attempt.ID,
	)
	return err
}

// SaveAnswer inserts one immutable answer row.
func (r *sqlxAttemptRepository) SaveAnswer(ctx context.Context, answer *domain.Answer) error {
	if answer.Timestamp.IsZero() {
		answer.Timestamp = time.Now()
	}
	isCorrect := 0
	if answer.IsCorrect {
		isCorrect = 1
	}

	query := `INSERT INTO answers (ID, ATTEMPT_ID, QUESTION_ID, SELECTED_OPTION, IS_CORRECT, DIFFICULTY, TIME_SPENT, ANSWERED_AT, CREATED_AT)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9)`

	_, err := r.db.ExecContext(ctx, query,
		answer.ID,
		answer.AttemptID,
		answer.QuestionID,
		answer.SelectedOption,
		isCorrect,
		int(answer.Difficulty),
		answer.TimeSpent,
		answer.Timestamp,
		time.Now(),
	)
	return err
}

// GetAttemptsByUser returns a user's attempts, newest first.
func (r *sqlxAttemptRepository) GetAttemptsByUser(ctx context.Context, userID string) ([]*domain.Attempt, error) {
	query := `SELECT ID, USER_ID, QUIZ_ID, QUIZ_TITLE, TOPIC_NAME, LANGUAGE, SCORE, TOTAL_QUESTIONS, ACCURACY,
	                 STARTED_AT, COMPLETED_AT, CREATED_AT, UPDATED_AT, DELETED_AT
	          FROM attempts
	          WHERE USER_ID = :1 AND DELETED_AT IS NULL
	          ORDER BY STARTED_AT DESC`

	var rows []models.Attempt
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}

	attempts := make([]*domain.Attempt, 0, len(rows))
	for i := range rows {
		attempts = append(attempts, toDomainAttempt(&rows[i]))
	}
	return attempts, nil
}

// GetAnswersByAttempt returns an attempt's answers in submission order.
func (r *sqlxAttemptRepository) GetAnswersByAttempt(ctx context.Context, attemptID string) ([]*domain.Answer, error) {
	query := `SELECT ID, ATTEMPT_ID, QUESTION_ID, SELECTED_OPTION, IS_CORRECT, DIFFICULTY, TIME_SPENT, ANSWERED_AT, CREATED_AT
	          FROM answers
	          WHERE ATTEMPT_ID = :1
	          ORDER BY ANSWERED_AT`

	var rows []models.Answer
	if err := r.db.SelectContext(ctx, &rows, query, attemptID); err != nil {
		return nil, err
	}

	answers := make([]*domain.Answer, 0, len(rows))
	for i := range rows {
		answers = append(answers, toDomainAnswer(&rows[i]))
	}
	return answers, nil
}
