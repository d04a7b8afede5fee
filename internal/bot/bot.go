package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xaenox/moodbot/internal/engine"
	"github.com/xaenox/moodbot/internal/models"
	"github.com/xaenox/moodbot/internal/storage"
	"go.uber.org/zap"
)

// Engine is the part of the mood engine the transport needs: somewhere to
// deliver inbound text, and the latest mood for the /mood command.
type Engine interface {
	Analyze(ctx context.Context, message, userID string) (models.Label, float64, error)
	Latest() (models.SentimentRecord, bool)
}

// Bot adapts Telegram to the engine. It owns the connection lifecycle;
// the engine and scheduler only ever see the Engine and MessageSender
// interfaces.
type Bot struct {
	api            *tgbotapi.BotAPI
	engine         Engine
	storage        storage.Storage
	logger         *zap.Logger
	announceChatID int64
}

func New(token string, announceChatID int64, eng Engine, store storage.Storage, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		api:            api,
		engine:         eng,
		storage:        store,
		logger:         logger,
		announceChatID: announceChatID,
	}, nil
}

// Send delivers text to the announcement chat. This is the MessageSender
// used by the scheduler's periodic path.
func (b *Bot) Send(_ context.Context, text string) error {
	msg := tgbotapi.NewMessage(b.announceChatID, text)
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// Run receives updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	if b.announceChatID != 0 {
		b.sendMessage(b.announceChatID, "Hi! I'm watching the mood in here.")
	}

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	userID := senderID(message)

	label, _, err := b.engine.Analyze(ctx, message.Text, userID)
	if err != nil {
		var classErr *models.ClassificationError
		if errors.As(err, &classErr) {
			b.logger.Warn("classification failed, sending neutral fallback",
				zap.Error(err),
				zap.String("user_id", userID))
			b.sendMessage(message.Chat.ID, engine.ComposeImmediate(models.LabelNeutral, userID))
			return
		}

		b.logger.Error("failed to analyze message",
			zap.Error(err),
			zap.String("user_id", userID))
		b.sendErrorMessage(message.Chat.ID, "Sorry, I couldn't process your message. Please try again.")
		return
	}

	b.sendMessage(message.Chat.ID, engine.ComposeImmediate(label, userID))
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "help":
		b.handleHelp(message)
	case "mood":
		b.handleMood(message)
	case "prefs":
		b.handlePrefs(ctx, message)
	case "setprefs":
		b.handleSetPrefs(ctx, message)
	case "history":
		b.handleHistory(ctx, message)
	default:
		b.sendMessage(message.Chat.ID, "Unknown command. Use /help to see available commands.")
	}
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	welcome := `Welcome to MoodBot! 🎭
I watch the mood of the conversation and check in periodically.

Just chat as usual — I'll classify each message and reply.
Use /help to see all available commands.`

	b.sendMessage(message.Chat.ID, welcome)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) {
	help := `Available commands:
/start - Start the bot
/help - Show this help message
/mood - Show the latest classified mood
/prefs - Show your mood-check preferences
/setprefs <on|off> <interval_seconds> <threshold> - Store your preferences
/history - Show your recent classified messages`

	b.sendMessage(message.Chat.ID, help)
}

func (b *Bot) handleMood(message *tgbotapi.Message) {
	rec, ok := b.engine.Latest()
	if !ok {
		b.sendMessage(message.Chat.ID, "No mood recorded yet. Say something!")
		return
	}

	b.sendMessage(message.Chat.ID, fmt.Sprintf("Latest mood: %s (%.2f) from %s: %q",
		rec.Label, rec.Polarity, rec.UserID, rec.Message))
}

func (b *Bot) handlePrefs(ctx context.Context, message *tgbotapi.Message) {
	userID := senderID(message)

	prefs, err := b.storage.GetPreferences(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		prefs = models.DefaultPreferences(userID)
	} else if err != nil {
		b.logger.Error("failed to get preferences",
			zap.Error(err),
			zap.String("user_id", userID))
		b.sendErrorMessage(message.Chat.ID, "Sorry, I couldn't read your preferences. Please try again later.")
		return
	}

	b.sendMessage(message.Chat.ID, fmt.Sprintf(
		"Mood checks: %v\nCheck interval: %s\nMood threshold: %.2f",
		prefs.EnableMoodChecks, prefs.CheckInterval, prefs.MoodThreshold))
}

func (b *Bot) handleSetPrefs(ctx context.Context, message *tgbotapi.Message) {
	userID := senderID(message)

	args := strings.Fields(message.CommandArguments())
	if len(args) != 3 {
		b.sendMessage(message.Chat.ID, "Usage: /setprefs <on|off> <interval_seconds> <threshold>")
		return
	}

	var enable bool
	switch strings.ToLower(args[0]) {
	case "on":
		enable = true
	case "off":
		enable = false
	default:
		b.sendMessage(message.Chat.ID, "First argument must be on or off.")
		return
	}

	intervalSeconds, err := strconv.Atoi(args[1])
	if err != nil || intervalSeconds <= 0 {
		b.sendMessage(message.Chat.ID, "Interval must be a positive number of seconds.")
		return
	}

	threshold, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		b.sendMessage(message.Chat.ID, "Threshold must be a number.")
		return
	}

	prefs := models.Preferences{
		UserID:           userID,
		EnableMoodChecks: enable,
		CheckInterval:    time.Duration(intervalSeconds) * time.Second,
		MoodThreshold:    threshold,
	}

	if err := b.storage.SetPreferences(ctx, prefs); err != nil {
		b.logger.Error("failed to set preferences",
			zap.Error(err),
			zap.String("user_id", userID))
		b.sendErrorMessage(message.Chat.ID, "Sorry, I couldn't save your preferences. Please try again.")
		return
	}

	b.sendMessage(message.Chat.ID, "Preferences saved.")
}

func (b *Bot) handleHistory(ctx context.Context, message *tgbotapi.Message) {
	userID := senderID(message)

	records, err := b.storage.RecentSentiments(ctx, userID, 5)
	if err != nil {
		b.logger.Error("failed to get sentiment history",
			zap.Error(err),
			zap.String("user_id", userID))
		b.sendErrorMessage(message.Chat.ID, "Sorry, I couldn't retrieve your history.")
		return
	}

	if len(records) == 0 {
		b.sendMessage(message.Chat.ID, "You don't have any classified messages yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Your recent messages:\n\n")
	for _, rec := range records {
		sb.WriteString(fmt.Sprintf("%s (%.2f): %s\n", rec.Label, rec.Polarity, rec.Message))
	}
	b.sendMessage(message.Chat.ID, sb.String())
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	b.sendMessage(chatID, "⚠️ "+text)
}

// senderID derives the stable user key from the transport's sender
// identity: the username when set, the numeric id otherwise.
func senderID(message *tgbotapi.Message) string {
	if message.From == nil {
		return "unknown"
	}
	if message.From.UserName != "" {
		return message.From.UserName
	}
	return strconv.FormatInt(message.From.ID, 10)
}
