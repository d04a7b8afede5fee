package storage

import (
	"context"

	"github.com/xaenox/moodbot/internal/models"
)

// PreferenceStore persists per-user mood-check settings. Each call is
// atomic; writes to the same key serialize with the later write winning,
// writes to different keys never block each other.
type PreferenceStore interface {
	GetPreferences(ctx context.Context, userID string) (models.Preferences, error)
	SetPreferences(ctx context.Context, prefs models.Preferences) error
}

// HistoryLog is the append-only record of classified messages. Ids are
// assigned by the store and strictly increase across all writers; there
// is no update or delete.
type HistoryLog interface {
	AppendSentiment(ctx context.Context, rec models.SentimentRecord) (int64, error)
	RecentSentiments(ctx context.Context, userID string, limit int) ([]models.SentimentRecord, error)
}

type Storage interface {
	PreferenceStore
	HistoryLog
	Close() error
}
