package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaenox/moodbot/internal/models"
	"github.com/xaenox/moodbot/internal/storage"
	"go.uber.org/zap"
)

type stubSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (s *stubSender) Send(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, text)
	return nil
}

func (s *stubSender) sentMessages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.sent))
	copy(out, s.sent)
	return out
}

func (s *stubSender) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

const testInterval = 30 * time.Second

func startScheduler(t *testing.T, eng *Engine, sender MessageSender) (clockwork.FakeClock, context.CancelFunc, chan struct{}) {
	t.Helper()

	clock := clockwork.NewFakeClock()
	sched := NewScheduler(eng, sender, testInterval, clock, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(done)
	}()

	// Wait for the first timer before advancing the clock.
	clock.BlockUntil(1)
	return clock, cancel, done
}

func advanceOneTick(t *testing.T, clock clockwork.FakeClock) {
	t.Helper()
	clock.Advance(testInterval)
	// The next timer only exists once the tick finished processing.
	clock.BlockUntil(1)
}

func TestScheduler_EmptyMoodSendsNothing(t *testing.T) {
	eng := newTestEngine(storage.NewMemoryStorage())
	sender := &stubSender{}

	clock, cancel, _ := startScheduler(t, eng, sender)
	defer cancel()

	advanceOneTick(t, clock)
	advanceOneTick(t, clock)

	assert.Empty(t, sender.sentMessages(), "no tick may send before the first analyzed message")
}

func TestScheduler_AnnouncesLatestMood(t *testing.T) {
	eng := newTestEngine(storage.NewMemoryStorage())
	sender := &stubSender{}

	_, _, err := eng.Analyze(context.Background(), "I love this!", "alice")
	require.NoError(t, err)

	clock, cancel, _ := startScheduler(t, eng, sender)
	defer cancel()

	advanceOneTick(t, clock)

	sent := sender.sentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, ComposePeriodic(models.LabelPositive, "I love this!"), sent[0])
}

func TestScheduler_DeliveryFailureDoesNotStopTicks(t *testing.T) {
	eng := newTestEngine(storage.NewMemoryStorage())
	sender := &stubSender{}
	sender.setErr(errors.New("connection reset"))

	_, _, err := eng.Analyze(context.Background(), "I hate this", "bob")
	require.NoError(t, err)

	clock, cancel, _ := startScheduler(t, eng, sender)
	defer cancel()

	advanceOneTick(t, clock)
	assert.Empty(t, sender.sentMessages())

	// Delivery recovers; the loop must still be ticking.
	sender.setErr(nil)
	advanceOneTick(t, clock)

	sent := sender.sentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, ComposePeriodic(models.LabelNegative, "I hate this"), sent[0])
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	eng := newTestEngine(storage.NewMemoryStorage())
	sender := &stubSender{}

	_, cancel, done := startScheduler(t, eng, sender)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}

// Stored preferences are persisted but never consulted by the scheduler:
// a user who disabled mood checks is still covered by the process-wide
// periodic announcement.
func TestScheduler_IgnoresStoredPreferences(t *testing.T) {
	store := storage.NewMemoryStorage()
	eng := newTestEngine(store)
	sender := &stubSender{}
	ctx := context.Background()

	require.NoError(t, store.SetPreferences(ctx, models.Preferences{
		UserID:           "alice",
		EnableMoodChecks: false,
		CheckInterval:    time.Hour,
		MoodThreshold:    0.9,
	}))

	_, _, err := eng.Analyze(ctx, "I love this!", "alice")
	require.NoError(t, err)

	clock, cancel, _ := startScheduler(t, eng, sender)
	defer cancel()

	advanceOneTick(t, clock)

	assert.Len(t, sender.sentMessages(), 1,
		"scheduler runs on the fixed process-wide period regardless of stored preferences")
}
