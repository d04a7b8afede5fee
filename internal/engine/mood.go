package engine

import (
	"sync"

	"github.com/xaenox/moodbot/internal/models"
)

// moodState is the process-wide single-slot cache of the most recently
// classified message. It is shared by every user: each classified message
// overwrites it, last write wins. It is never persisted and starts empty
// after every restart.
type moodState struct {
	mu  sync.Mutex
	rec models.SentimentRecord
	set bool
}

func (m *moodState) put(rec models.SentimentRecord) {
	m.mu.Lock()
	m.rec = rec
	m.set = true
	m.mu.Unlock()
}

func (m *moodState) get() (models.SentimentRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rec, m.set
}
