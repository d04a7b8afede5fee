package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/xaenox/moodbot/internal/models"
	"github.com/xaenox/moodbot/internal/storage"
	"go.uber.org/zap"
)

// Classifier turns a message into a sentiment label and polarity.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.Label, float64, error)
}

// Engine is the synchronous per-message path: classify, append to
// history, update the mood slot. Analyze calls may overlap; the only
// state they share with the scheduler is the mood slot.
type Engine struct {
	classifier Classifier
	history    storage.HistoryLog
	logger     *zap.Logger
	mood       moodState
}

func New(classifier Classifier, history storage.HistoryLog, logger *zap.Logger) *Engine {
	return &Engine{
		classifier: classifier,
		history:    history,
		logger:     logger,
	}
}

// Analyze classifies message, appends the result to history and makes it
// the latest mood. On a classification failure nothing is appended and
// the mood slot is untouched. A history failure is retried once before
// it surfaces as a StorageError; the mood slot is only updated for
// records that made it into history.
func (e *Engine) Analyze(ctx context.Context, message, userID string) (models.Label, float64, error) {
	traceID := uuid.New().String()

	label, polarity, err := e.classifier.Classify(ctx, message)
	if err != nil {
		e.logger.Error("classification failed",
			zap.Error(err),
			zap.String("trace_id", traceID),
			zap.String("user_id", userID))
		return models.LabelNeutral, 0, err
	}

	rec := models.SentimentRecord{
		UserID:    userID,
		Message:   message,
		Label:     label,
		Polarity:  polarity,
		Timestamp: time.Now(),
	}

	id, err := e.appendWithRetry(ctx, rec)
	if err != nil {
		e.logger.Error("failed to append sentiment",
			zap.Error(err),
			zap.String("trace_id", traceID),
			zap.String("user_id", userID))
		return models.LabelNeutral, 0, err
	}
	rec.ID = id

	e.mood.put(rec)

	e.logger.Debug("message analyzed",
		zap.String("trace_id", traceID),
		zap.String("user_id", userID),
		zap.String("label", string(label)),
		zap.Float64("polarity", polarity),
		zap.Int64("history_id", id))
	return label, polarity, nil
}

// Latest returns the most recently analyzed record, or false before the
// first Analyze since process start.
func (e *Engine) Latest() (models.SentimentRecord, bool) {
	return e.mood.get()
}

func (e *Engine) appendWithRetry(ctx context.Context, rec models.SentimentRecord) (int64, error) {
	id, err := e.history.AppendSentiment(ctx, rec)
	if err == nil {
		return id, nil
	}

	e.logger.Warn("history append failed, retrying once", zap.Error(err))
	id, err = e.history.AppendSentiment(ctx, rec)
	if err != nil {
		return 0, &models.StorageError{Op: "append sentiment", Err: err}
	}
	return id, nil
}
