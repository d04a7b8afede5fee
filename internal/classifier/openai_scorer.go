package classifier

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const scorerPrompt = `Rate the overall sentiment of the following chat message.
Reply with a single decimal number between -1.0 (very negative) and 1.0 (very positive).
Reply with the number only, no other text.

Message: %s`

// OpenAIScorer asks a chat completion model for a polarity score.
type OpenAIScorer struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

func NewOpenAIScorer(apiKey string, model string, maxTokens int, temperature float64, logger *zap.Logger) *OpenAIScorer {
	return &OpenAIScorer{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

func (s *OpenAIScorer) Score(ctx context.Context, text string) (float64, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		MaxTokens:   s.maxTokens,
		Temperature: float32(s.temperature),
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(scorerPrompt, text),
			},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("chat completion returned no choices")
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	polarity, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable polarity %q: %w", raw, err)
	}

	if polarity > 1.0 || polarity < -1.0 {
		s.logger.Warn("model returned out-of-range polarity, clamping",
			zap.Float64("polarity", polarity))
		polarity = clamp(polarity, -1.0, 1.0)
	}
	return polarity, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
