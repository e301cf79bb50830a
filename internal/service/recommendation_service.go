package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quizent/internal/adapter/recommender"
	"quizent/internal/cache"
	"quizent/internal/domain"
	"quizent/internal/dto"
	"quizent/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// RecommendationService produces study advice for a user. Results are cached
// per performance snapshot; concurrent requests for the same snapshot share
// one LLM call.
type RecommendationService interface {
	GetRecommendation(ctx context.Context, userID string) (*dto.RecommendationResponse, error)
}

type recommendationServiceImpl struct {
	performance PerformanceService
	recommender domain.Recommender
	cache       domain.Cache
	cacheTTL    time.Duration
	sfGroup     singleflight.Group
}

// NewRecommendationService creates a new instance of recommendationServiceImpl.
func NewRecommendationService(performance PerformanceService, rec domain.Recommender, c domain.Cache, cacheTTL time.Duration) RecommendationService {
	return &recommendationServiceImpl{
		performance: performance,
		recommender: rec,
		cache:       c,
		cacheTTL:    cacheTTL,
	}
}

// snapshotDigest fingerprints the performance input so the cache invalidates
// itself whenever new attempts change the aggregation.
func snapshotDigest(performances []domain.TopicPerformance) string {
	h := sha256.New()
	for _, p := range performances {
		fmt.Fprintf(h, "%s:%.2f:%d;", p.Key, p.Accuracy, p.AttemptsCount)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// GetRecommendation returns the cached recommendation for the user's current
// performance snapshot, generating one if absent.
func (s *recommendationServiceImpl) GetRecommendation(ctx context.Context, userID string) (*dto.RecommendationResponse, error) {
	if userID == "" {
		return nil, domain.NewInvalidInputError("user ID is required")
	}

	performances, err := s.performance.GetTopicPerformances(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(performances) == 0 {
		// No history yet: the local generator still has something to say.
		resp := dto.RecommendationResponseFromDomain(recommender.Fallback(nil))
		return &resp, nil
	}

	cacheKey := cache.GenerateCacheKey("recommendation", "user", userID, snapshotDigest(performances))

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err == nil && cached != "" {
			var resp dto.RecommendationResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
			logger.Get().Warn("Failed to unmarshal cached recommendation", zap.Error(err), zap.String("key", cacheKey))
		} else if err != nil && !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Recommendation cache read failed", zap.Error(err), zap.String("key", cacheKey))
		}
	}

	res, err, _ := s.sfGroup.Do(cacheKey, func() (interface{}, error) {
		rec, err := s.recommender.Recommend(ctx, performances)
		if err != nil {
			// Recommender contracts say this should not happen; degrade anyway.
			logger.Get().Error("Recommender returned error, using local fallback", zap.Error(err))
			rec = recommender.Fallback(performances)
		}

		if s.cache != nil {
			if data, err := json.Marshal(dto.RecommendationResponseFromDomain(rec)); err == nil {
				if err := s.cache.Set(ctx, cacheKey, string(data), s.cacheTTL); err != nil {
					logger.Get().Warn("Failed to cache recommendation", zap.Error(err), zap.String("key", cacheKey))
				}
			}
		}
		return rec, nil
	})
	if err != nil {
		return nil, domain.NewInternalError("failed to generate recommendation", err)
	}

	rec, ok := res.(*domain.Recommendation)
	if !ok {
		return nil, domain.NewInternalError(fmt.Sprintf("unexpected type from recommendation generation: %T", res), nil)
	}
	resp := dto.RecommendationResponseFromDomain(rec)
	return &resp, nil
}
