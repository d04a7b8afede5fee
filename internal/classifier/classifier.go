package classifier

import (
	"context"
	"strings"

	"github.com/xaenox/moodbot/internal/models"
	"go.uber.org/zap"
)

// Scorer computes the raw polarity of a text in [-1.0, 1.0]. It is the
// injected external dependency; the linguistic algorithm itself lives
// behind this interface, not here.
type Scorer interface {
	Score(ctx context.Context, text string) (float64, error)
}

const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

type Classifier struct {
	scorer Scorer
	logger *zap.Logger
}

func New(scorer Scorer, logger *zap.Logger) *Classifier {
	return &Classifier{
		scorer: scorer,
		logger: logger,
	}
}

// Classify scores text and maps the polarity to a label. Boundary values
// of exactly ±0.1 classify as Neutral. Empty or whitespace-only input is
// Neutral without consulting the scorer. A scorer failure surfaces as a
// ClassificationError.
func (c *Classifier) Classify(ctx context.Context, text string) (models.Label, float64, error) {
	if strings.TrimSpace(text) == "" {
		return models.LabelNeutral, 0, nil
	}

	polarity, err := c.scorer.Score(ctx, text)
	if err != nil {
		return models.LabelNeutral, 0, &models.ClassificationError{Err: err}
	}

	label := labelFor(polarity)
	c.logger.Debug("classified message",
		zap.String("label", string(label)),
		zap.Float64("polarity", polarity))
	return label, polarity, nil
}

func labelFor(polarity float64) models.Label {
	switch {
	case polarity > positiveThreshold:
		return models.LabelPositive
	case polarity < negativeThreshold:
		return models.LabelNegative
	default:
		return models.LabelNeutral
	}
}
