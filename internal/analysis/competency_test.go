package analysis

import (
	"testing"

	"quizent/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     domain.Competency
	}{
		{100, domain.CompetencyStrong},
		{70, domain.CompetencyStrong},
		{69.999, domain.CompetencyMedium},
		{40, domain.CompetencyMedium},
		{39.999, domain.CompetencyWeak},
		{0, domain.CompetencyWeak},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.accuracy), "accuracy %v", tt.accuracy)
	}
}
