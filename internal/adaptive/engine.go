// Package adaptive implements the difficulty engine: the transition function
// that moves a session one difficulty step per answer, and the selector that
// picks the next unanswered question at (or near) the target difficulty.
package adaptive

import (
	"math/rand"

	"quizent/internal/domain"
)

// NextDifficulty returns the difficulty for the next question. A correct
// answer steps up one tier, an incorrect answer steps down one tier, clamped
// to [easy, hard]. Single-step adaptation avoids large jumps after one lucky
// or unlucky answer.
func NextDifficulty(current domain.Difficulty, wasCorrect bool) domain.Difficulty {
	if wasCorrect {
		if current >= domain.DifficultyHard {
			return domain.DifficultyHard
		}
		return current + 1
	}
	if current <= domain.DifficultyEasy {
		return domain.DifficultyEasy
	}
	return current - 1
}

// Selector picks questions uniformly at random among eligible candidates.
// The random source is injected so tests can seed it.
type Selector struct {
	rng *rand.Rand
}

// NewSelector creates a Selector backed by the given random source.
func NewSelector(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// fallbackOrder is the fixed priority of neighboring tiers tried when the
// target tier has no unanswered questions left.
func fallbackOrder(target domain.Difficulty) [2]domain.Difficulty {
	switch target {
	case domain.DifficultyHard:
		return [2]domain.Difficulty{domain.DifficultyMedium, domain.DifficultyEasy}
	case domain.DifficultyEasy:
		return [2]domain.Difficulty{domain.DifficultyMedium, domain.DifficultyHard}
	default:
		return [2]domain.Difficulty{domain.DifficultyEasy, domain.DifficultyHard}
	}
}

// SelectNext returns an unanswered question at the target difficulty, falling
// back through neighboring tiers when the target is exhausted. It returns nil
// when every tier is exhausted; the caller must end the session. A question
// never repeats within a session as long as the caller accumulates answered
// IDs between calls.
func (s *Selector) SelectNext(pool []*domain.Question, target domain.Difficulty, answered map[string]struct{}) *domain.Question {
	if q := s.pick(pool, target, answered); q != nil {
		return q
	}
	for _, tier := range fallbackOrder(target) {
		if q := s.pick(pool, tier, answered); q != nil {
			return q
		}
	}
	return nil
}

func (s *Selector) pick(pool []*domain.Question, tier domain.Difficulty, answered map[string]struct{}) *domain.Question {
	var eligible []*domain.Question
	for _, q := range pool {
		if q.Difficulty != tier {
			continue
		}
		if _, done := answered[q.ID]; done {
			continue
		}
		eligible = append(eligible, q)
	}
	if len(eligible) == 0 {
		return nil
	}
	return eligible[s.rng.Intn(len(eligible))]
}
