package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaenox/moodbot/internal/models"
	"go.uber.org/zap"
)

type stubScorer struct {
	polarity float64
	err      error
	calls    int
}

func (s *stubScorer) Score(_ context.Context, _ string) (float64, error) {
	s.calls++
	return s.polarity, s.err
}

func TestClassify_Thresholds(t *testing.T) {
	tests := []struct {
		name     string
		polarity float64
		want     models.Label
	}{
		{"strongly positive", 0.9, models.LabelPositive},
		{"barely positive", 0.11, models.LabelPositive},
		{"positive boundary is neutral", 0.1, models.LabelNeutral},
		{"zero", 0.0, models.LabelNeutral},
		{"negative boundary is neutral", -0.1, models.LabelNeutral},
		{"barely negative", -0.11, models.LabelNegative},
		{"strongly negative", -0.9, models.LabelNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(&stubScorer{polarity: tt.polarity}, zap.NewNop())

			label, polarity, err := c.Classify(context.Background(), "some message")
			require.NoError(t, err)
			assert.Equal(t, tt.want, label)
			assert.Equal(t, tt.polarity, polarity)
		})
	}
}

func TestClassify_EmptyInputSkipsScorer(t *testing.T) {
	scorer := &stubScorer{polarity: 0.9}
	c := New(scorer, zap.NewNop())

	for _, text := range []string{"", "   ", "\n\t"} {
		label, polarity, err := c.Classify(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, models.LabelNeutral, label)
		assert.Zero(t, polarity)
	}
	assert.Zero(t, scorer.calls, "scorer must not be consulted for empty input")
}

func TestClassify_ScorerFailure(t *testing.T) {
	scorer := &stubScorer{err: errors.New("model unavailable")}
	c := New(scorer, zap.NewNop())

	_, _, err := c.Classify(context.Background(), "hello")
	require.Error(t, err)

	var classErr *models.ClassificationError
	assert.ErrorAs(t, err, &classErr)
}

func TestLexiconScorer(t *testing.T) {
	s := NewLexiconScorer()

	positive, err := s.Score(context.Background(), "I love this, it's great!")
	require.NoError(t, err)
	assert.Greater(t, positive, 0.1)

	negative, err := s.Score(context.Background(), "I hate this, it's terrible")
	require.NoError(t, err)
	assert.Less(t, negative, -0.1)

	neutral, err := s.Score(context.Background(), "the meeting is at noon")
	require.NoError(t, err)
	assert.Zero(t, neutral)
}
