// Package analysis derives performance summaries from immutable answer and
// attempt records: difficulty breakdowns, per-topic accuracy, competency
// tiers and practice streaks. Everything here is a stateless, repeatable
// read-only computation.
package analysis

import (
	"math"
	"sort"

	"quizent/internal/domain"
)

// Breakdown partitions answers by the difficulty recorded on each answer at
// answer time. Order of the input does not affect the result.
func Breakdown(answers []domain.Answer) domain.DifficultyBreakdown {
	var b domain.DifficultyBreakdown
	for _, a := range answers {
		var tier *domain.TierCount
		switch a.Difficulty {
		case domain.DifficultyEasy:
			tier = &b.Easy
		case domain.DifficultyMedium:
			tier = &b.Medium
		case domain.DifficultyHard:
			tier = &b.Hard
		default:
			continue
		}
		tier.Total++
		if a.IsCorrect {
			tier.Correct++
		}
	}
	return b
}

// Result computes the terminal summary of a completed attempt from its
// answers.
func Result(attempt domain.Attempt, answers []domain.Answer) domain.QuizResult {
	correct := 0
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
	}
	accuracy := 0.0
	if len(answers) > 0 {
		accuracy = float64(correct) / float64(len(answers)) * 100
	}

	attempt.Score = correct
	attempt.TotalQuestions = len(answers)
	attempt.Accuracy = accuracy

	return domain.QuizResult{
		Attempt:    attempt,
		Answers:    answers,
		Breakdown:  Breakdown(answers),
		Competency: Classify(accuracy),
		Score:      correct,
		Accuracy:   accuracy,
	}
}

// AggregateByTopic groups attempts by canonical topic key and averages their
// accuracies. The mean is unweighted by question count: each attempt counts
// equally regardless of how many questions it contained. Results are sorted
// by topic name for stable output.
func AggregateByTopic(attempts []*domain.Attempt) []domain.TopicPerformance {
	type bucket struct {
		topicName     string
		language      string
		totalAccuracy float64
		count         int
	}

	buckets := make(map[domain.TopicKey]*bucket)
	for _, at := range attempts {
		key := domain.NewTopicKey(at.TopicName, at.Language)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{topicName: at.TopicName, language: at.Language}
			buckets[key] = b
		}
		b.totalAccuracy += at.Accuracy
		b.count++
	}

	performances := make([]domain.TopicPerformance, 0, len(buckets))
	for key, b := range buckets {
		avg := b.totalAccuracy / float64(b.count)
		avg = math.Round(avg*100) / 100
		performances = append(performances, domain.TopicPerformance{
			Key:           key,
			TopicName:     b.topicName,
			Language:      b.language,
			Accuracy:      avg,
			Competency:    Classify(avg),
			AttemptsCount: b.count,
		})
	}

	sort.Slice(performances, func(i, j int) bool {
		if performances[i].TopicName != performances[j].TopicName {
			return performances[i].TopicName < performances[j].TopicName
		}
		return performances[i].Language < performances[j].Language
	})
	return performances
}
