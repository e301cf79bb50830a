package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"quizent/internal/adaptive"
	"quizent/internal/analysis"
	"quizent/internal/domain"
	"quizent/internal/dto"
	"quizent/internal/logger"
	"quizent/internal/util"

	"go.uber.org/zap"
)

// SessionService drives adaptive quiz sessions: one question out at a time,
// difficulty adjusted per answer, terminated on question count or pool
// exhaustion.
type SessionService interface {
	StartSession(ctx context.Context, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error)
	SubmitAnswer(ctx context.Context, sessionID string, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error)
}

type sessionServiceImpl struct {
	bank          domain.QuestionBank
	attempts      domain.AttemptRepository
	store         SessionStore
	questionCount int
	seedFunc      func() int64
}

// NewSessionService creates a new instance of sessionServiceImpl.
// questionCount caps how many questions a session serves; sessions on small
// pools may terminate earlier.
func NewSessionService(bank domain.QuestionBank, attempts domain.AttemptRepository, store SessionStore, questionCount int) SessionService {
	if questionCount <= 0 {
		questionCount = 9
	}
	return &sessionServiceImpl{
		bank:          bank,
		attempts:      attempts,
		store:         store,
		questionCount: questionCount,
		seedFunc:      func() int64 { return time.Now().UnixNano() },
	}
}

// selectorFor rebuilds the question selector for a stored session. Seeding
// from the persisted seed plus the step index keeps selection stable if the
// same step is replayed after a retry.
func selectorFor(state *SessionState) *adaptive.Selector {
	return adaptive.NewSelector(rand.New(rand.NewSource(state.RandSeed + int64(state.QuestionNumber))))
}

// StartSession creates an attempt row, draws the first question at medium
// difficulty and stores the session state.
func (s *sessionServiceImpl) StartSession(ctx context.Context, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error) {
	if req == nil || req.UserID == "" {
		return nil, domain.NewInvalidInputError("user ID is required")
	}
	if req.QuizID == "" {
		return nil, domain.NewInvalidInputError("quiz ID is required")
	}

	quiz, err := s.bank.GetQuizByID(ctx, req.QuizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(req.QuizID)
	}

	pool, err := s.bank.GetQuestions(ctx, req.QuizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz questions", err)
	}
	if len(pool) == 0 {
		return nil, domain.NewValidationError("quiz has no questions")
	}

	total := s.questionCount
	if len(pool) < total {
		total = len(pool)
	}

	attempt := &domain.Attempt{
		ID:             util.NewULID(),
		UserID:         req.UserID,
		QuizID:         quiz.ID,
		QuizTitle:      quiz.Title,
		TopicName:      quiz.TopicName,
		Language:       quiz.Language,
		TotalQuestions: total,
		StartedAt:      time.Now(),
	}
	if err := s.attempts.CreateAttempt(ctx, attempt); err != nil {
		return nil, domain.NewInternalError("failed to create attempt", err)
	}

	state := &SessionState{
		ID:                util.NewULID(),
		UserID:            req.UserID,
		QuizID:            quiz.ID,
		AttemptID:         attempt.ID,
		CurrentDifficulty: domain.DifficultyMedium,
		QuestionNumber:    1,
		TotalQuestions:    total,
		RandSeed:          s.seedFunc(),
		StartedAt:         attempt.StartedAt,
	}

	first := selectorFor(state).SelectNext(pool, state.CurrentDifficulty, nil)
	if first == nil {
		// Unreachable with a non-empty pool, but never serve a nil question.
		return nil, domain.NewInternalError("failed to select first question", nil)
	}
	state.CurrentQuestionID = first.ID

	if err := s.store.Put(ctx, state); err != nil {
		return nil, err
	}

	logger.Get().Info("Adaptive session started",
		zap.String("sessionID", state.ID),
		zap.String("userID", req.UserID),
		zap.String("quizID", quiz.ID),
		zap.Int("totalQuestions", total))

	return &dto.StartSessionResponse{
		SessionID:      state.ID,
		Question:       dto.QuestionResponseFromDomain(first),
		QuestionNumber: state.QuestionNumber,
		TotalQuestions: state.TotalQuestions,
	}, nil
}

// SubmitAnswer records the answer to the current question, steps the
// difficulty, and either serves the next question or finishes the session.
func (s *sessionServiceImpl) SubmitAnswer(ctx context.Context, sessionID string, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	if sessionID == "" {
		return nil, domain.NewInvalidInputError("session ID is required")
	}
	if req == nil || req.QuestionID == "" {
		return nil, domain.NewInvalidInputError("question ID is required")
	}

	state, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionStateNotFound) {
			return nil, domain.NewSessionNotFoundError(sessionID)
		}
		return nil, err
	}
	if state.CurrentQuestionID == "" {
		return nil, domain.NewSessionCompletedError(sessionID)
	}
	if req.QuestionID != state.CurrentQuestionID {
		return nil, domain.NewInvalidAnswerError("answer does not match the current question")
	}

	pool, err := s.bank.GetQuestions(ctx, state.QuizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz questions", err)
	}
	var current *domain.Question
	for _, q := range pool {
		if q.ID == state.CurrentQuestionID {
			current = q
			break
		}
	}
	if current == nil {
		return nil, domain.NewInternalError("current question missing from pool", nil)
	}
	if req.SelectedOption < 0 || req.SelectedOption >= len(current.Options) {
		return nil, domain.NewInvalidAnswerError("selected option is out of range")
	}

	answer := domain.NewAnswer(util.NewULID(), state.AttemptID, current, req.SelectedOption, req.TimeSpent)
	if err := s.attempts.SaveAnswer(ctx, answer); err != nil {
		return nil, domain.NewInternalError("failed to save answer", err)
	}

	state.AnsweredIDs = append(state.AnsweredIDs, current.ID)
	if answer.IsCorrect {
		state.Score++
	}
	state.CurrentDifficulty = adaptive.NextDifficulty(state.CurrentDifficulty, answer.IsCorrect)

	resp := &dto.SubmitAnswerResponse{
		Correct:        answer.IsCorrect,
		CorrectAnswer:  current.CorrectAnswer,
		Explanation:    current.Explanation,
		QuestionNumber: state.QuestionNumber,
		TotalQuestions: state.TotalQuestions,
	}

	var next *domain.Question
	if state.QuestionNumber < state.TotalQuestions {
		next = selectorFor(state).SelectNext(pool, state.CurrentDifficulty, state.AnsweredSet())
	}

	if next == nil {
		// Question budget reached or pool exhausted: either way the session ends.
		result, err := s.finishSession(ctx, state)
		if err != nil {
			return nil, err
		}
		resp.Completed = true
		resp.Result = dto.QuizResultResponseFromDomain(result)
		return resp, nil
	}

	state.QuestionNumber++
	state.CurrentQuestionID = next.ID
	if err := s.store.Put(ctx, state); err != nil {
		return nil, err
	}

	nextResp := dto.QuestionResponseFromDomain(next)
	resp.NextQuestion = &nextResp
	resp.QuestionNumber = state.QuestionNumber
	return resp, nil
}

// finishSession completes the attempt row, computes the result and drops the
// cached state.
func (s *sessionServiceImpl) finishSession(ctx context.Context, state *SessionState) (*domain.QuizResult, error) {
	answers, err := s.attempts.GetAnswersByAttempt(ctx, state.AttemptID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load attempt answers", err)
	}

	answered := len(answers)
	accuracy := 0.0
	if answered > 0 {
		accuracy = float64(state.Score) / float64(answered) * 100
	}

	now := time.Now()
	attempt := domain.Attempt{
		ID:             state.AttemptID,
		UserID:         state.UserID,
		QuizID:         state.QuizID,
		Score:          state.Score,
		TotalQuestions: answered,
		Accuracy:       accuracy,
		StartedAt:      state.StartedAt,
		CompletedAt:    &now,
	}
	if err := s.attempts.CompleteAttempt(ctx, &attempt); err != nil {
		return nil, domain.NewInternalError("failed to complete attempt", err)
	}

	if err := s.store.Delete(ctx, state.ID); err != nil {
		logger.Get().Warn("Failed to delete finished session state", zap.Error(err), zap.String("sessionID", state.ID))
	}

	values := make([]domain.Answer, 0, len(answers))
	for _, a := range answers {
		values = append(values, *a)
	}
	result := analysis.Result(attempt, values)

	logger.Get().Info("Adaptive session completed",
		zap.String("sessionID", state.ID),
		zap.String("attemptID", state.AttemptID),
		zap.Int("score", state.Score),
		zap.Float64("accuracy", accuracy))

	return &result, nil
}
