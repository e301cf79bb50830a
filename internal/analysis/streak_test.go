package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStreak(t *testing.T) {
	today := day("2024-01-10")

	t.Run("consecutive days with same-day dupes", func(t *testing.T) {
		attempts := []time.Time{day("2024-01-10"), day("2024-01-10"), day("2024-01-09"), day("2024-01-07")}
		assert.Equal(t, 2, Streak(attempts, today))
	})

	t.Run("chain may start yesterday", func(t *testing.T) {
		attempts := []time.Time{day("2024-01-09"), day("2024-01-08")}
		assert.Equal(t, 2, Streak(attempts, today))
	})

	t.Run("gap of two days breaks immediately", func(t *testing.T) {
		attempts := []time.Time{day("2024-01-08"), day("2024-01-07")}
		assert.Equal(t, 0, Streak(attempts, today))
	})

	t.Run("no attempts", func(t *testing.T) {
		assert.Equal(t, 0, Streak(nil, today))
	})

	t.Run("single attempt today", func(t *testing.T) {
		assert.Equal(t, 1, Streak([]time.Time{day("2024-01-10")}, today))
	})

	t.Run("long unbroken run", func(t *testing.T) {
		var attempts []time.Time
		for i := 0; i < 5; i++ {
			attempts = append(attempts, today.AddDate(0, 0, -i))
		}
		assert.Equal(t, 5, Streak(attempts, today))
	})

	t.Run("timestamps within a day dedupe to one", func(t *testing.T) {
		attempts := []time.Time{
			day("2024-01-10").Add(8 * time.Hour),
			day("2024-01-10").Add(20 * time.Hour),
			day("2024-01-09").Add(23 * time.Hour),
		}
		assert.Equal(t, 2, Streak(attempts, today))
	})
}
