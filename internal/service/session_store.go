package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quizent/internal/cache"
	"quizent/internal/domain"
	"quizent/internal/logger"

	"go.uber.org/zap"
)

// ErrSessionStateNotFound is returned when no live session exists for an ID.
var ErrSessionStateNotFound = errors.New("session state not found in cache")

// SessionState is the per-session progress record. It lives in the cache only;
// nothing here is primary state once the attempt row is completed.
type SessionState struct {
	ID                string            `json:"id"`
	UserID            string            `json:"user_id"`
	QuizID            string            `json:"quiz_id"`
	AttemptID         string            `json:"attempt_id"`
	CurrentDifficulty domain.Difficulty `json:"current_difficulty"`
	CurrentQuestionID string            `json:"current_question_id"`
	AnsweredIDs       []string          `json:"answered_ids"`
	Score             int               `json:"score"`
	QuestionNumber    int               `json:"question_number"`
	TotalQuestions    int               `json:"total_questions"`
	RandSeed          int64             `json:"rand_seed"`
	StartedAt         time.Time         `json:"started_at"`
}

// Answered reports whether the question was already served in this session.
func (s *SessionState) Answered(questionID string) bool {
	for _, id := range s.AnsweredIDs {
		if id == questionID {
			return true
		}
	}
	return false
}

// AnsweredSet returns the answered IDs as a set for selector input.
func (s *SessionState) AnsweredSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.AnsweredIDs))
	for _, id := range s.AnsweredIDs {
		set[id] = struct{}{}
	}
	return set
}

// SessionStore persists in-flight session state.
type SessionStore interface {
	Put(ctx context.Context, state *SessionState) error
	Get(ctx context.Context, sessionID string) (*SessionState, error)
	Delete(ctx context.Context, sessionID string) error
}

type sessionStoreImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewSessionStore creates a cache backed SessionStore.
func NewSessionStore(c domain.Cache, ttl time.Duration) SessionStore {
	return &sessionStoreImpl{cache: c, ttl: ttl}
}

func (s *sessionStoreImpl) generateKey(sessionID string) string {
	return cache.GenerateCacheKey("session", "state", sessionID)
}

// Put stores the session state, refreshing its TTL.
func (s *sessionStoreImpl) Put(ctx context.Context, state *SessionState) error {
	if state == nil || state.ID == "" {
		return domain.NewInvalidInputError("cannot store empty session state")
	}

	key := s.generateKey(state.ID)
	dataBytes, err := json.Marshal(state)
	if err != nil {
		logger.Get().Error("Failed to marshal session state", zap.Error(err), zap.String("sessionID", state.ID))
		return domain.NewInternalError("failed to marshal session state", err)
	}

	if err := s.cache.Set(ctx, key, string(dataBytes), s.ttl); err != nil {
		logger.Get().Error("Failed to cache session state", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to set session state to cache for key %s", key), err)
	}
	return nil
}

// Get retrieves session state by ID. Expired and unknown sessions both report
// ErrSessionStateNotFound.
func (s *sessionStoreImpl) Get(ctx context.Context, sessionID string) (*SessionState, error) {
	key := s.generateKey(sessionID)
	dataString, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, ErrSessionStateNotFound
		}
		logger.Get().Error("Failed to get session state from cache", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to get session state from cache for key %s", key), err)
	}
	if dataString == "" {
		return nil, ErrSessionStateNotFound
	}

	var state SessionState
	if err := json.Unmarshal([]byte(dataString), &state); err != nil {
		logger.Get().Error("Failed to unmarshal session state", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError("failed to unmarshal session state", err)
	}
	return &state, nil
}

// Delete removes the session state once the session terminated.
func (s *sessionStoreImpl) Delete(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, s.generateKey(sessionID))
}
