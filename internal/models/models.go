package models

import "time"

// Label is the sentiment classification of a message.
type Label string

const (
	LabelPositive Label = "Positive"
	LabelNeutral  Label = "Neutral"
	LabelNegative Label = "Negative"
)

// SentimentRecord is one classified message. Records are append-only:
// once written to history they are never mutated or deleted.
type SentimentRecord struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Label     Label     `json:"label"`
	Polarity  float64   `json:"polarity"`
	Timestamp time.Time `json:"timestamp"`
}

// Preferences holds a user's mood-check settings. Set replaces the whole
// record; there are no partial updates.
type Preferences struct {
	UserID           string        `json:"user_id"`
	EnableMoodChecks bool          `json:"enable_mood_checks"`
	CheckInterval    time.Duration `json:"check_interval"`
	MoodThreshold    float64       `json:"mood_threshold"`
}

// DefaultPreferences is what callers use for users that never stored any.
func DefaultPreferences(userID string) Preferences {
	return Preferences{
		UserID:           userID,
		EnableMoodChecks: true,
		CheckInterval:    300 * time.Second,
		MoodThreshold:    0.1,
	}
}
