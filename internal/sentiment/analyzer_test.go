package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreSigns(t *testing.T) {
	scorer := NewScorer()

	positive := scorer.Score("I love sunny days")
	negative := scorer.Score("This is terrible and sad")

	assert.Greater(t, positive, 0.0)
	assert.Less(t, negative, 0.0)
	assert.Greater(t, positive, negative)
}

func TestScoreIsDeterministic(t *testing.T) {
	scorer := NewScorer()

	text := "a quiet, ordinary afternoon"
	assert.Equal(t, scorer.Score(text), scorer.Score(text))
}

func TestScoreNeutralTextNearZero(t *testing.T) {
	scorer := NewScorer()

	assert.InDelta(t, 0.0, scorer.Score("the table has four legs"), 0.3)
}
