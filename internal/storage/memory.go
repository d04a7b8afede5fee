package storage

import (
	"context"
	"sync"
	"time"

	"github.com/xaenox/moodbot/internal/models"
)

// MemoryStorage keeps everything in process memory. It backs the
// use_in_memory config switch and doubles as the test store.
type MemoryStorage struct {
	mu      sync.RWMutex
	prefs   map[string]models.Preferences
	history []models.SentimentRecord
	nextID  int64
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		prefs:  make(map[string]models.Preferences),
		nextID: 1,
	}
}

func (s *MemoryStorage) GetPreferences(_ context.Context, userID string) (models.Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefs, exists := s.prefs[userID]
	if !exists {
		return models.Preferences{}, models.ErrNotFound
	}
	return prefs, nil
}

func (s *MemoryStorage) SetPreferences(_ context.Context, prefs models.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs[prefs.UserID] = prefs
	return nil
}

func (s *MemoryStorage) AppendSentiment(_ context.Context, rec models.SentimentRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextID
	s.nextID++
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	s.history = append(s.history, rec)
	return rec.ID, nil
}

func (s *MemoryStorage) RecentSentiments(_ context.Context, userID string, limit int) ([]models.SentimentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []models.SentimentRecord
	for i := len(s.history) - 1; i >= 0 && len(records) < limit; i-- {
		if s.history[i].UserID == userID {
			records = append(records, s.history[i])
		}
	}
	return records, nil
}

// HistoryLen reports the total number of appended records.
func (s *MemoryStorage) HistoryLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

func (s *MemoryStorage) Close() error {
	return nil
}
