package repository

import (
	"context"
	"database/sql"
	"errors"

	"quizent/internal/domain"
	"quizent/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxQuestionBank implements domain.QuestionBank using sqlx over Oracle.
type sqlxQuestionBank struct {
	db *sqlx.DB
}

// NewSQLXQuestionBank creates a new instance of sqlxQuestionBank.
func NewSQLXQuestionBank(db *sqlx.DB) domain.QuestionBank {
	return &sqlxQuestionBank{db: db}
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	if m == nil {
		return nil
	}
	return &domain.Quiz{
		ID:            m.ID,
		Title:         m.Title,
		TopicID:       m.TopicID,
		TopicName:     m.TopicName.String,
		Language:      m.Language,
		QuestionCount: m.QuestionCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	options := []string(m.Options)
	if options == nil {
		options = []string{}
	}
	return &domain.Question{
		ID:            m.ID,
		QuizID:        m.QuizID,
		Difficulty:    domain.Difficulty(m.Difficulty),
		Text:          m.QuestionText,
		Options:       options,
		CorrectAnswer: m.CorrectAnswer,
		Explanation:   m.Explanation.String,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

const selectQuizColumns = `q.ID, q.TITLE, q.TOPIC_ID, t.NAME AS TOPIC_NAME, q.LANGUAGE,
	(SELECT COUNT(*) FROM questions qq WHERE qq.QUIZ_ID = q.ID AND qq.DELETED_AT IS NULL) AS QUESTION_COUNT,
	q.CREATED_AT, q.UPDATED_AT, q.DELETED_AT`

// GetQuizzes returns all quiz metadata with topic names and question counts.
func (r *sqlxQuestionBank) GetQuizzes(ctx context.Context) ([]*domain.Quiz, error) {
	query := `SELECT ` + selectQuizColumns + `
	          FROM quizzes q
	          JOIN topics t ON t.ID = q.TOPIC_ID
	          WHERE q.DELETED_AT IS NULL
	          ORDER BY q.TITLE`

	var rows []models.Quiz
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	quizzes := make([]*domain.Quiz, 0, len(rows))
	for i := range rows {
		quizzes = append(quizzes, toDomainQuiz(&rows[i]))
	}
	return quizzes, nil
}

// GetQuizByID returns one quiz or nil when absent.
func (r *sqlxQuestionBank) GetQuizByID(ctx context.Context, quizID string) (*domain.Quiz, error) {
	query := `SELECT ` + selectQuizColumns + `
	          FROM quizzes q
	          JOIN topics t ON t.ID = q.TOPIC_ID
	          WHERE q.ID = :1 AND q.DELETED_AT IS NULL`

	var row models.Quiz
	if err := r.db.GetContext(ctx, &row, query, quizID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainQuiz(&row), nil
}

// GetQuestions returns the complete question pool for a quiz.
func (r *sqlxQuestionBank) GetQuestions(ctx context.Context, quizID string) ([]*domain.Question, error) {
	query := `SELECT ID, QUIZ_ID, DIFFICULTY, QUESTION_TEXT, OPTIONS, CORRECT_ANSWER, EXPLANATION,
	                 CREATED_AT, UPDATED_AT, DELETED_AT
	          FROM questions
	          WHERE QUIZ_ID = :1 AND DELETED_AT IS NULL
	          ORDER BY DIFFICULTY, ID`

	var rows []models.Question
	if err := r.db.SelectContext(ctx, &rows, query, quizID); err != nil {
		return nil, err
	}

	questions := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		questions = append(questions, toDomainQuestion(&rows[i]))
	}
	return questions, nil
}
