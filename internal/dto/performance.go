package dto

import "quizent/internal/domain"

// TopicPerformanceResponse represents derived mastery on one topic
// @Description Per-topic performance derived from attempt history
type TopicPerformanceResponse struct {
	TopicName     string  `json:"topic_name"`
	Language      string  `json:"language"`
	Accuracy      float64 `json:"accuracy"`
	Competency    string  `json:"competency"`
	AttemptsCount int     `json:"attempts_count"`
}

// PerformanceResponse represents the full performance view for a user
type PerformanceResponse struct {
	Topics        []TopicPerformanceResponse `json:"topics"`
	Streak        int                        `json:"streak"`
	TotalAttempts int                        `json:"total_attempts"`
}

// RecommendationResponse represents personalized study advice
// @Description Study recommendation, either LLM generated or locally derived
type RecommendationResponse struct {
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
	StudyPlan       string   `json:"study_plan"`
}

// TopicPerformanceResponseFromDomain converts a domain topic performance to its API shape.
func TopicPerformanceResponseFromDomain(p domain.TopicPerformance) TopicPerformanceResponse {
	return TopicPerformanceResponse{
		TopicName:     p.TopicName,
		Language:      p.Language,
		Accuracy:      p.Accuracy,
		Competency:    string(p.Competency),
		AttemptsCount: p.AttemptsCount,
	}
}

// RecommendationResponseFromDomain converts a domain recommendation to its API shape.
func RecommendationResponseFromDomain(r *domain.Recommendation) RecommendationResponse {
	return RecommendationResponse{
		Summary:         r.Summary,
		Strengths:       r.Strengths,
		Weaknesses:      r.Weaknesses,
		Recommendations: r.Recommendations,
		StudyPlan:       r.StudyPlan,
	}
}
