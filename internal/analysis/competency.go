package analysis

import "quizent/internal/domain"

// Classify maps an accuracy percentage to a competency tier. Band lower
// bounds are inclusive: exactly 70 is strong, exactly 40 is medium.
// Callers uphold accuracy in [0, 100].
func Classify(accuracy float64) domain.Competency {
	switch {
	case accuracy >= 70:
		return domain.CompetencyStrong
	case accuracy >= 40:
		return domain.CompetencyMedium
	default:
		return domain.CompetencyWeak
	}
}
