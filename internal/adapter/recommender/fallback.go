package recommender

import (
	"fmt"
	"strings"

	"quizent/internal/domain"
)

// Fallback builds a deterministic recommendation from topic performances
// without any network dependency. It is the guaranteed behavior whenever the
// LLM path is unavailable.
func Fallback(performances []domain.TopicPerformance) *domain.Recommendation {
	var strong, medium, weak []domain.TopicPerformance
	for _, p := range performances {
		switch p.Competency {
		case domain.CompetencyStrong:
			strong = append(strong, p)
		case domain.CompetencyWeak:
			weak = append(weak, p)
		default:
			medium = append(medium, p)
		}
	}

	return &domain.Recommendation{
		Summary:         fallbackSummary(performances, strong, weak),
		Strengths:       fallbackStrengths(strong),
		Weaknesses:      fallbackWeaknesses(weak, medium),
		Recommendations: fallbackRecommendations(strong, weak),
		StudyPlan:       fallbackStudyPlan(strong, medium, weak),
	}
}

func topicNames(perfs []domain.TopicPerformance) string {
	names := make([]string, 0, len(perfs))
	for _, p := range perfs {
		names = append(names, p.TopicName)
	}
	return strings.Join(names, ", ")
}

func fallbackSummary(all, strong, weak []domain.TopicPerformance) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on your performance across %d topics, you show ", len(all))
	if len(strong) > 0 {
		fmt.Fprintf(&b, "strong proficiency in %s.", topicNames(strong))
	} else {
		b.WriteString("room for improvement.")
	}
	if len(weak) > 0 {
		fmt.Fprintf(&b, " Focus on strengthening %s.", topicNames(weak))
	} else {
		b.WriteString(" Keep up the great work!")
	}
	return b.String()
}

func fallbackStrengths(strong []domain.TopicPerformance) []string {
	if len(strong) == 0 {
		return []string{"You are making progress! Keep practicing to build stronger foundations."}
	}
	strengths := make([]string, 0, len(strong))
	for _, p := range strong {
		strengths = append(strengths, fmt.Sprintf("Strong understanding of %s with %.0f%% accuracy", p.TopicName, p.Accuracy))
	}
	return strengths
}

func fallbackWeaknesses(weak, medium []domain.TopicPerformance) []string {
	if len(weak) > 0 {
		weaknesses := make([]string, 0, len(weak))
		for _, p := range weak {
			weaknesses = append(weaknesses, fmt.Sprintf("%s needs improvement (%.0f%% accuracy)", p.TopicName, p.Accuracy))
		}
		return weaknesses
	}
	if len(medium) > 0 {
		weaknesses := make([]string, 0, len(medium))
		for _, p := range medium {
			weaknesses = append(weaknesses, fmt.Sprintf("%s could be stronger (%.0f%% accuracy)", p.TopicName, p.Accuracy))
		}
		return weaknesses
	}
	return []string{"No significant weaknesses detected. Challenge yourself with harder topics!"}
}

func fallbackRecommendations(strong, weak []domain.TopicPerformance) []string {
	var recs []string
	if len(weak) > 0 {
		recs = append(recs, fmt.Sprintf("Start by reviewing the fundamentals of %s", weak[0].TopicName))
	}
	recs = append(recs,
		"Practice with adaptive quizzes daily to build consistency",
		"Review incorrect answers to understand the concepts behind them",
	)
	if len(strong) > 0 {
		recs = append(recs, fmt.Sprintf("Try harder difficulty levels in %s to push your limits", strong[0].TopicName))
	}
	recs = append(recs, "Focus on understanding concepts rather than memorizing answers")
	if len(recs) > 4 {
		recs = recs[:4]
	}
	return recs
}

func fallbackStudyPlan(strong, medium, weak []domain.TopicPerformance) string {
	var b strings.Builder
	b.WriteString("This week, dedicate time each day to focused practice. ")
	if len(weak) > 0 {
		fmt.Fprintf(&b, "Start with %s for the first two days, focusing on easy and medium difficulty questions. ", weak[0].TopicName)
	}
	if len(medium) > 0 {
		fmt.Fprintf(&b, "Then move to %s to solidify your intermediate knowledge. ", medium[0].TopicName)
	}
	if len(strong) > 0 {
		fmt.Fprintf(&b, "End the week by challenging yourself with hard questions in %s. ", strong[0].TopicName)
	}
	b.WriteString("Review any mistakes at the end of each session.")
	return b.String()
}
