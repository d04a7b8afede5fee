package classifier

import (
	"context"
	"strings"
)

// LexiconScorer is a keyword-based polarity scorer for running without an
// API key. It counts positive and negative words and normalizes the
// difference by the number of words matched.
type LexiconScorer struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

func NewLexiconScorer() *LexiconScorer {
	positive := []string{
		"love", "like", "great", "good", "awesome", "amazing", "happy",
		"wonderful", "fantastic", "excellent", "nice", "best", "glad",
		"thanks", "thank", "cool", "fun", "win", "yay",
	}
	negative := []string{
		"hate", "bad", "terrible", "awful", "sad", "angry", "horrible",
		"worst", "annoying", "broken", "fail", "ugh", "cry", "sucks",
		"tired", "lonely", "sick", "lost",
	}

	s := &LexiconScorer{
		positive: make(map[string]struct{}, len(positive)),
		negative: make(map[string]struct{}, len(negative)),
	}
	for _, w := range positive {
		s.positive[w] = struct{}{}
	}
	for _, w := range negative {
		s.negative[w] = struct{}{}
	}
	return s
}

func (s *LexiconScorer) Score(_ context.Context, text string) (float64, error) {
	words := strings.Fields(strings.ToLower(text))

	var pos, neg int
	for _, word := range words {
		word = strings.Trim(word, ".,!?;:'\"()")
		if _, ok := s.positive[word]; ok {
			pos++
		}
		if _, ok := s.negative[word]; ok {
			neg++
		}
	}

	matched := pos + neg
	if matched == 0 {
		return 0, nil
	}
	// Dampened so a single keyword does not saturate the scale.
	return float64(pos-neg) / float64(matched+1), nil
}
