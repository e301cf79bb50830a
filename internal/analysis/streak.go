package analysis

import (
	"math"
	"sort"
	"time"
)

// Streak counts consecutive calendar days with at least one attempt, walking
// backward from today. The chain may start today or yesterday; a gap of more
// than one day breaks it. Multiple attempts on the same day count once.
// Comparison is by date in today's location, not by timestamp.
func Streak(attemptTimes []time.Time, today time.Time) int {
	if len(attemptTimes) == 0 {
		return 0
	}

	loc := today.Location()
	seen := make(map[string]time.Time, len(attemptTimes))
	for _, ts := range attemptTimes {
		day := truncateToDay(ts.In(loc))
		seen[day.Format("2006-01-02")] = day
	}

	days := make([]time.Time, 0, len(seen))
	for _, day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	streak := 0
	cursor := truncateToDay(today)
	for _, day := range days {
		// Rounding keeps day arithmetic stable across DST transitions.
		diff := int(math.Round(cursor.Sub(day).Hours() / 24))
		if diff <= 1 {
			streak++
			cursor = day
		} else {
			break
		}
	}
	return streak
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
