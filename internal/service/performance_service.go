package service

import (
	"context"
	"time"

	"quizent/internal/analysis"
	"quizent/internal/domain"
	"quizent/internal/dto"
)

// PerformanceService derives per-topic mastery and streaks from attempt
// history. Everything here is recomputed on demand; only attempts are stored.
type PerformanceService interface {
	GetPerformance(ctx context.Context, userID string) (*dto.PerformanceResponse, error)
	GetTopicPerformances(ctx context.Context, userID string) ([]domain.TopicPerformance, error)
}

type performanceServiceImpl struct {
	attempts domain.AttemptRepository
	nowFunc  func() time.Time
}

// NewPerformanceService creates a new instance of performanceServiceImpl.
func NewPerformanceService(attempts domain.AttemptRepository) PerformanceService {
	return &performanceServiceImpl{
		attempts: attempts,
		nowFunc:  time.Now,
	}
}

// completedAttempts filters out in-flight attempts; only finished runs count
// toward performance.
func completedAttempts(attempts []*domain.Attempt) []*domain.Attempt {
	completed := make([]*domain.Attempt, 0, len(attempts))
	for _, a := range attempts {
		if a.CompletedAt != nil {
			completed = append(completed, a)
		}
	}
	return completed
}

// GetPerformance returns topic performances, the daily streak and attempt count.
func (s *performanceServiceImpl) GetPerformance(ctx context.Context, userID string) (*dto.PerformanceResponse, error) {
	if userID == "" {
		return nil, domain.NewInvalidInputError("user ID is required")
	}

	attempts, err := s.attempts.GetAttemptsByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load attempt history", err)
	}
	completed := completedAttempts(attempts)

	performances := analysis.AggregateByTopic(completed)
	topics := make([]dto.TopicPerformanceResponse, 0, len(performances))
	for _, p := range performances {
		topics = append(topics, dto.TopicPerformanceResponseFromDomain(p))
	}

	times := make([]time.Time, 0, len(completed))
	for _, a := range completed {
		times = append(times, *a.CompletedAt)
	}

	return &dto.PerformanceResponse{
		Topics:        topics,
		Streak:        analysis.Streak(times, s.nowFunc()),
		TotalAttempts: len(completed),
	}, nil
}

// GetTopicPerformances returns the raw domain aggregation, used as
// recommendation input.
func (s *performanceServiceImpl) GetTopicPerformances(ctx context.Context, userID string) ([]domain.TopicPerformance, error) {
	if userID == "" {
		return nil, domain.NewInvalidInputError("user ID is required")
	}

	attempts, err := s.attempts.GetAttemptsByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load attempt history", err)
	}

	return analysis.AggregateByTopic(completedAttempts(attempts)), nil
}
