package engine

import (
	"fmt"

	"github.com/xaenox/moodbot/internal/models"
)

// ComposeImmediate builds the direct reply to a freshly classified
// message, addressed to its sender.
func ComposeImmediate(label models.Label, userID string) string {
	switch label {
	case models.LabelPositive:
		return fmt.Sprintf("%s, that's awesome! Keep it up!", userID)
	case models.LabelNegative:
		return fmt.Sprintf("%s, I'm here for you if you need anything.", userID)
	default:
		return fmt.Sprintf("%s, how can I help today?", userID)
	}
}

// ComposePeriodic builds the scheduled mood announcement from the latest
// classified message.
func ComposePeriodic(label models.Label, message string) string {
	switch label {
	case models.LabelPositive:
		return fmt.Sprintf("Great mood! Keep it up! (%s)", message)
	case models.LabelNegative:
		return fmt.Sprintf("Hang in there! We're here for you. (%s)", message)
	default:
		return fmt.Sprintf("Neutral mood, feel free to talk to me! (%s)", message)
	}
}
