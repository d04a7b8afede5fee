package storage

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaenox/moodbot/internal/models"
)

func TestPreferences_RoundTrip(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	prefs := models.Preferences{
		UserID:           "alice",
		EnableMoodChecks: true,
		CheckInterval:    120 * time.Second,
		MoodThreshold:    0.25,
	}
	require.NoError(t, s.SetPreferences(ctx, prefs))

	got, err := s.GetPreferences(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, prefs, got)
}

func TestPreferences_UnknownUser(t *testing.T) {
	s := NewMemoryStorage()

	_, err := s.GetPreferences(context.Background(), "nobody")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPreferences_LastWriteWins(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	first := models.Preferences{UserID: "alice", EnableMoodChecks: true, CheckInterval: 60 * time.Second, MoodThreshold: 0.1}
	second := models.Preferences{UserID: "alice", EnableMoodChecks: false, CheckInterval: 600 * time.Second, MoodThreshold: 0.9}
	require.NoError(t, s.SetPreferences(ctx, first))
	require.NoError(t, s.SetPreferences(ctx, second))

	got, err := s.GetPreferences(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, second, got, "set replaces the whole record")
}

func TestAppendSentiment_SequentialIDsIncrease(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	var last int64
	for i := 0; i < 10; i++ {
		id, err := s.AppendSentiment(ctx, models.SentimentRecord{UserID: "alice", Message: "hi", Label: models.LabelNeutral})
		require.NoError(t, err)
		assert.Greater(t, id, last)
		last = id
	}
}

func TestAppendSentiment_ConcurrentIDsUnique(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	const n = 100
	ids := make([]int64, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := s.AppendSentiment(ctx, models.SentimentRecord{UserID: "alice", Message: "hi", Label: models.LabelNeutral})
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	assert.Equal(t, n, s.HistoryLen(), "no appended record may be dropped")

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i := 1; i < n; i++ {
		assert.Greater(t, ids[i], ids[i-1], "ids must be unique")
	}
}

func TestRecentSentiments_FiltersAndLimits(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.AppendSentiment(ctx, models.SentimentRecord{UserID: "alice", Message: "a", Label: models.LabelPositive})
		require.NoError(t, err)
	}
	_, err := s.AppendSentiment(ctx, models.SentimentRecord{UserID: "bob", Message: "b", Label: models.LabelNegative})
	require.NoError(t, err)

	records, err := s.RecentSentiments(ctx, "alice", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, "alice", rec.UserID)
	}
	assert.Greater(t, records[0].ID, records[1].ID, "newest first")
}
