package engine

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// MessageSender delivers outbound text to the chat. Implemented by the
// transport adapter; the engine and scheduler know nothing else about it.
type MessageSender interface {
	Send(ctx context.Context, text string) error
}

const defaultTickInterval = 300 * time.Second

// Scheduler periodically announces the current mood. Every tick reads the
// engine's latest record and, if one exists, sends a periodic response.
// The delay is measured from the completion of the previous tick, so a
// slow tick shifts subsequent ticks instead of stacking them.
//
// Stored per-user preferences are deliberately not consulted here: the
// scheduler runs on one fixed process-wide period for everyone.
type Scheduler struct {
	engine   *Engine
	sender   MessageSender
	interval time.Duration
	clock    clockwork.Clock
	logger   *zap.Logger
}

func NewScheduler(engine *Engine, sender MessageSender, interval time.Duration, clock clockwork.Clock, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = defaultTickInterval
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{
		engine:   engine,
		sender:   sender,
		interval: interval,
		clock:    clock,
		logger:   logger,
	}
}

// Run executes the tick loop until ctx is cancelled. A tick is always
// followed by the next one; delivery failures are logged and do not stop
// the loop.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("scheduler started", zap.Duration("interval", s.interval))

	for {
		timer := s.clock.NewTimer(s.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("scheduler stopped")
			return
		case <-timer.Chan():
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	rec, ok := s.engine.Latest()
	if !ok {
		s.logger.Debug("tick: no mood recorded yet, nothing to send")
		return
	}

	// The slot may be overwritten by a concurrent Analyze between this
	// read and the send; the announcement then describes slightly stale
	// data. Accepted: there is no lock spanning the whole tick.
	text := ComposePeriodic(rec.Label, rec.Message)
	if err := s.sender.Send(ctx, text); err != nil {
		s.logger.Warn("tick: periodic mood message failed",
			zap.Error(err),
			zap.String("user_id", rec.UserID))
		return
	}

	s.logger.Debug("tick: sent periodic mood message",
		zap.String("label", string(rec.Label)),
		zap.String("user_id", rec.UserID))
}
