package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"quizent/internal/cache"
	"quizent/internal/domain"
	"quizent/internal/dto"
	"quizent/internal/logger"

	"go.uber.org/zap"
)

// QuizService exposes the read side of the question catalog.
type QuizService interface {
	GetQuizzes(ctx context.Context) ([]dto.QuizResponse, error)
	GetQuizQuestions(ctx context.Context, quizID string) ([]dto.QuestionResponse, error)
}

type quizServiceImpl struct {
	bank     domain.QuestionBank
	cache    domain.Cache
	cacheTTL time.Duration
}

// NewQuizService creates a new instance of quizServiceImpl.
func NewQuizService(bank domain.QuestionBank, c domain.Cache, cacheTTL time.Duration) QuizService {
	return &quizServiceImpl{
		bank:     bank,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

// GetQuizzes returns the quiz catalog. The catalog changes only on seeding, so
// it is cached as one JSON blob.
func (s *quizServiceImpl) GetQuizzes(ctx context.Context) ([]dto.QuizResponse, error) {
	cacheKey := cache.GenerateCacheKey("quiz", "catalog", "all")

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err == nil && cached != "" {
			var responses []dto.QuizResponse
			if err := json.Unmarshal([]byte(cached), &responses); err == nil {
				return responses, nil
			}
			logger.Get().Warn("Failed to unmarshal cached quiz catalog, falling through to DB", zap.Error(err))
		} else if err != nil && !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Quiz catalog cache read failed", zap.Error(err))
		}
	}

	quizzes, err := s.bank.GetQuizzes(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz catalog", err)
	}

	responses := make([]dto.QuizResponse, 0, len(quizzes))
	for _, q := range quizzes {
		responses = append(responses, dto.QuizResponseFromDomain(q))
	}

	if s.cache != nil {
		if data, err := json.Marshal(responses); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(data), s.cacheTTL); err != nil {
				logger.Get().Warn("Failed to cache quiz catalog", zap.Error(err))
			}
		}
	}

	return responses, nil
}

// GetQuizQuestions returns the question pool of a quiz with answers stripped.
func (s *quizServiceImpl) GetQuizQuestions(ctx context.Context, quizID string) ([]dto.QuestionResponse, error) {
	if quizID == "" {
		return nil, domain.NewInvalidInputError("quiz ID is required")
	}

	quiz, err := s.bank.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	questions, err := s.bank.GetQuestions(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz questions", err)
	}

	responses := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		responses = append(responses, dto.QuestionResponseFromDomain(q))
	}
	return responses, nil
}
