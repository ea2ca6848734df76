package sentiment

import "github.com/jonreiter/govader"

// Scorer maps free text to a real-valued sentiment score. Implementations
// must be pure: the same text always yields the same score, and scores are
// never recomputed once persisted.
type Scorer interface {
	Score(text string) float64
}

type vaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewScorer returns a lexicon-based scorer. Positive text scores above zero,
// negative text below; the score is normalized to roughly [-1, 1].
func NewScorer() Scorer {
	return &vaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (s *vaderScorer) Score(text string) float64 {
	return s.analyzer.PolarityScores(text).Compound
}
