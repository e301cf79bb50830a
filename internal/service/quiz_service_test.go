package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"quizent/internal/domain"
	"quizent/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetQuizzes_CacheMissLoadsAndCaches(t *testing.T) {
	bank := new(MockQuestionBank)
	mockCache := new(MockCache)

	quizzes := []*domain.Quiz{
		{ID: "quiz-1", Title: "Arrays Basics", TopicName: "Arrays", Language: "Java", QuestionCount: 9},
		{ID: "quiz-2", Title: "Linked Lists Basics", TopicName: "Linked Lists", Language: "Java", QuestionCount: 9},
	}

	mockCache.On("Get", mock.Anything, mock.AnythingOfType("string")).Return("", domain.ErrCacheMiss)
	bank.On("GetQuizzes", mock.Anything).Return(quizzes, nil)
	mockCache.On("Set", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string"), 10*time.Minute).Return(nil)

	svc := NewQuizService(bank, mockCache, 10*time.Minute)
	responses, err := svc.GetQuizzes(context.Background())

	assert.NoError(t, err)
	assert.Len(t, responses, 2)
	assert.Equal(t, "Arrays Basics", responses[0].Title)
	bank.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestGetQuizzes_CacheHitSkipsDB(t *testing.T) {
	bank := new(MockQuestionBank)
	mockCache := new(MockCache)

	cached, _ := json.Marshal([]dto.QuizResponse{{ID: "quiz-1", Title: "Arrays Basics"}})
	mockCache.On("Get", mock.Anything, mock.AnythingOfType("string")).Return(string(cached), nil)

	svc := NewQuizService(bank, mockCache, 10*time.Minute)
	responses, err := svc.GetQuizzes(context.Background())

	assert.NoError(t, err)
	assert.Len(t, responses, 1)
	bank.AssertNotCalled(t, "GetQuizzes", mock.Anything)
}

func TestGetQuizQuestions_StripsAnswers(t *testing.T) {
	bank := new(MockQuestionBank)

	bank.On("GetQuizByID", mock.Anything, "quiz-1").Return(&domain.Quiz{ID: "quiz-1", Title: "Arrays Basics"}, nil)
	bank.On("GetQuestions", mock.Anything, "quiz-1").Return([]*domain.Question{
		{
			ID:            "q-1",
			QuizID:        "quiz-1",
			Difficulty:    domain.DifficultyEasy,
			Text:          "What indexes an array?",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: 2,
		},
	}, nil)

	svc := NewQuizService(bank, nil, 0)
	responses, err := svc.GetQuizQuestions(context.Background(), "quiz-1")

	assert.NoError(t, err)
	assert.Len(t, responses, 1)
	assert.Equal(t, "easy", responses[0].Difficulty)

	// The wire shape must not leak the correct answer.
	data, err := json.Marshal(responses[0])
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "correct")
}

func TestGetQuizQuestions_QuizNotFound(t *testing.T) {
	bank := new(MockQuestionBank)
	bank.On("GetQuizByID", mock.Anything, "missing").Return(nil, nil)

	svc := NewQuizService(bank, nil, 0)
	_, err := svc.GetQuizQuestions(context.Background(), "missing")

	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeQuizNotFound, domainErr.Code)
}
