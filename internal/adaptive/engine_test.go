package adaptive

import (
	"fmt"
	"math/rand"
	"testing"

	"quizent/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestNextDifficulty(t *testing.T) {
	tests := []struct {
		name    string
		current domain.Difficulty
		correct bool
		want    domain.Difficulty
	}{
		{"easy correct steps up", domain.DifficultyEasy, true, domain.DifficultyMedium},
		{"medium correct steps up", domain.DifficultyMedium, true, domain.DifficultyHard},
		{"hard correct clamps", domain.DifficultyHard, true, domain.DifficultyHard},
		{"hard incorrect steps down", domain.DifficultyHard, false, domain.DifficultyMedium},
		{"medium incorrect steps down", domain.DifficultyMedium, false, domain.DifficultyEasy},
		{"easy incorrect clamps", domain.DifficultyEasy, false, domain.DifficultyEasy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextDifficulty(tt.current, tt.correct))
		})
	}
}

func TestNextDifficulty_Monotonicity(t *testing.T) {
	// Never moves more than one step, never leaves the [easy, hard] range.
	for _, d := range []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard} {
		for _, correct := range []bool{true, false} {
			next := NextDifficulty(d, correct)
			diff := int(next) - int(d)
			if diff < 0 {
				diff = -diff
			}
			assert.LessOrEqual(t, diff, 1)
			assert.GreaterOrEqual(t, next, domain.DifficultyEasy)
			assert.LessOrEqual(t, next, domain.DifficultyHard)
		}
	}
}

func TestNextDifficulty_AdaptiveProgression(t *testing.T) {
	// Starting at medium, answers [correct, correct, incorrect] must walk
	// medium -> hard -> hard -> medium.
	current := domain.DifficultyMedium
	trajectory := []domain.Difficulty{current}
	for _, correct := range []bool{true, true, false} {
		current = NextDifficulty(current, correct)
		trajectory = append(trajectory, current)
	}
	assert.Equal(t, []domain.Difficulty{
		domain.DifficultyMedium,
		domain.DifficultyHard,
		domain.DifficultyHard,
		domain.DifficultyMedium,
	}, trajectory)
}

func makePool() []*domain.Question {
	var pool []*domain.Question
	tiers := map[domain.Difficulty]int{
		domain.DifficultyEasy:   3,
		domain.DifficultyMedium: 3,
		domain.DifficultyHard:   3,
	}
	for tier, n := range tiers {
		for i := 0; i < n; i++ {
			pool = append(pool, &domain.Question{
				ID:            fmt.Sprintf("%s-%d", tier.String(), i),
				QuizID:        "quiz1",
				Difficulty:    tier,
				Options:       []string{"a", "b", "c", "d"},
				CorrectAnswer: 0,
			})
		}
	}
	return pool
}

func TestSelector_TargetTierPreferred(t *testing.T) {
	sel := NewSelector(rand.New(rand.NewSource(42)))
	pool := makePool()

	for i := 0; i < 20; i++ {
		q := sel.SelectNext(pool, domain.DifficultyMedium, map[string]struct{}{})
		assert.NotNil(t, q)
		assert.Equal(t, domain.DifficultyMedium, q.Difficulty)
	}
}

func TestSelector_FallbackOrder(t *testing.T) {
	sel := NewSelector(rand.New(rand.NewSource(1)))
	pool := makePool()

	answered := map[string]struct{}{}
	markTier := func(tier domain.Difficulty) {
		for _, q := range pool {
			if q.Difficulty == tier {
				answered[q.ID] = struct{}{}
			}
		}
	}

	// Hard exhausted: falls back to medium first.
	markTier(domain.DifficultyHard)
	q := sel.SelectNext(pool, domain.DifficultyHard, answered)
	assert.NotNil(t, q)
	assert.Equal(t, domain.DifficultyMedium, q.Difficulty)

	// Hard and medium exhausted: falls back to easy.
	markTier(domain.DifficultyMedium)
	q = sel.SelectNext(pool, domain.DifficultyHard, answered)
	assert.NotNil(t, q)
	assert.Equal(t, domain.DifficultyEasy, q.Difficulty)
}

func TestSelector_MediumFallsBackToEasyFirst(t *testing.T) {
	sel := NewSelector(rand.New(rand.NewSource(7)))
	pool := makePool()

	answered := map[string]struct{}{}
	for _, q := range pool {
		if q.Difficulty == domain.DifficultyMedium {
			answered[q.ID] = struct{}{}
		}
	}
	q := sel.SelectNext(pool, domain.DifficultyMedium, answered)
	assert.NotNil(t, q)
	assert.Equal(t, domain.DifficultyEasy, q.Difficulty)
}

func TestSelector_EasyFallsBackToMediumFirst(t *testing.T) {
	sel := NewSelector(rand.New(rand.NewSource(7)))
	pool := makePool()

	answered := map[string]struct{}{}
	for _, q := range pool {
		if q.Difficulty == domain.DifficultyEasy {
			answered[q.ID] = struct{}{}
		}
	}
	q := sel.SelectNext(pool, domain.DifficultyEasy, answered)
	assert.NotNil(t, q)
	assert.Equal(t, domain.DifficultyMedium, q.Difficulty)
}

func TestSelector_NoRepeatsAndExhaustion(t *testing.T) {
	sel := NewSelector(rand.New(rand.NewSource(99)))
	pool := makePool()

	answered := map[string]struct{}{}
	target := domain.DifficultyMedium
	for i := 0; i < len(pool); i++ {
		q := sel.SelectNext(pool, target, answered)
		assert.NotNil(t, q, "selection %d should succeed", i)
		_, seen := answered[q.ID]
		assert.False(t, seen, "question %s repeated", q.ID)
		answered[q.ID] = struct{}{}
		target = NextDifficulty(target, i%2 == 0)
	}

	// Pool of N questions: the N+1-th call signals exhaustion.
	assert.Nil(t, sel.SelectNext(pool, target, answered))
}

func TestSelector_UniformAmongEligible(t *testing.T) {
	sel := NewSelector(rand.New(rand.NewSource(2024)))
	pool := makePool()

	counts := map[string]int{}
	const draws = 3000
	for i := 0; i < draws; i++ {
		q := sel.SelectNext(pool, domain.DifficultyHard, map[string]struct{}{})
		counts[q.ID]++
	}
	assert.Len(t, counts, 3)
	for id, n := range counts {
		// With 3 candidates each should land near draws/3; allow wide slack.
		assert.InDelta(t, draws/3, n, draws/10, "question %s drawn %d times", id, n)
	}
}
