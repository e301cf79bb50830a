package service

import (
	"context"
	"testing"
	"time"

	"quizent/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func completedAt(t time.Time) *time.Time { return &t }

func TestGetPerformance_AggregatesCompletedAttempts(t *testing.T) {
	attempts := new(MockAttemptRepository)
	now := time.Now()

	attempts.On("GetAttemptsByUser", mock.Anything, "user-1").Return([]*domain.Attempt{
		{ID: "a1", UserID: "user-1", TopicName: "Arrays", Language: "Java", Accuracy: 80, CompletedAt: completedAt(now)},
		{ID: "a2", UserID: "user-1", TopicName: "Arrays", Language: "Java", Accuracy: 60, CompletedAt: completedAt(now.Add(-24 * time.Hour))},
		{ID: "a3", UserID: "user-1", TopicName: "Stacks", Language: "Java", Accuracy: 30, CompletedAt: completedAt(now)},
		{ID: "a4", UserID: "user-1", TopicName: "Queues", Language: "Java"}, // in flight, must not count
	}, nil)

	svc := NewPerformanceService(attempts)
	resp, err := svc.GetPerformance(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Equal(t, 3, resp.TotalAttempts)
	assert.Len(t, resp.Topics, 2)
	assert.Equal(t, 2, resp.Streak, "today plus yesterday")

	byName := make(map[string]float64)
	for _, p := range resp.Topics {
		byName[p.TopicName] = p.Accuracy
	}
	assert.InDelta(t, 70.0, byName["Arrays"], 0.001, "unweighted mean of 80 and 60")
	assert.InDelta(t, 30.0, byName["Stacks"], 0.001)
}

func TestGetPerformance_NoHistory(t *testing.T) {
	attempts := new(MockAttemptRepository)
	attempts.On("GetAttemptsByUser", mock.Anything, "user-1").Return([]*domain.Attempt{}, nil)

	svc := NewPerformanceService(attempts)
	resp, err := svc.GetPerformance(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Empty(t, resp.Topics)
	assert.Equal(t, 0, resp.Streak)
	assert.Equal(t, 0, resp.TotalAttempts)
}

func TestGetPerformance_EmptyUserID(t *testing.T) {
	svc := NewPerformanceService(new(MockAttemptRepository))
	_, err := svc.GetPerformance(context.Background(), "")

	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
}
