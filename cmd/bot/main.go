package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/xaenox/moodbot/internal/bot"
	"github.com/xaenox/moodbot/internal/classifier"
	"github.com/xaenox/moodbot/internal/engine"
	"github.com/xaenox/moodbot/internal/storage"
	"github.com/xaenox/moodbot/pkg/config"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", configPath))
	}

	// Initialize storage
	var store storage.Storage
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		store = storage.NewMemoryStorage()
	} else {
		logger.Info("Using PostgreSQL storage")
		store, err = storage.NewPostgresStorage(storage.DatabaseConfig{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			DBName:      cfg.Database.DBName,
			SSLMode:     cfg.Database.SSLMode,
			UseInMemory: cfg.Database.UseInMemory,
		})
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	}
	defer store.Close()

	// Initialize the polarity scorer
	var scorer classifier.Scorer
	switch cfg.Scorer.Kind {
	case "openai":
		logger.Info("Using OpenAI polarity scorer", zap.String("model", cfg.OpenAI.Model))
		scorer = classifier.NewOpenAIScorer(
			cfg.OpenAI.APIKey,
			cfg.OpenAI.Model,
			cfg.OpenAI.MaxTokens,
			cfg.OpenAI.Temperature,
			logger,
		)
	default:
		logger.Info("Using lexicon polarity scorer")
		scorer = classifier.NewLexiconScorer()
	}

	// Initialize the engine
	clf := classifier.New(scorer, logger)
	eng := engine.New(clf, store, logger)

	// Initialize the transport
	b, err := bot.New(cfg.Telegram.Token, cfg.Telegram.AnnounceChatID, eng, store, logger)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start the periodic mood announcements
	interval := time.Duration(cfg.Scheduler.IntervalSeconds) * time.Second
	sched := engine.NewScheduler(eng, b, interval, clockwork.NewRealClock(), logger)
	go sched.Run(ctx)

	// Start the bot
	if err := b.Run(ctx); err != nil {
		logger.Fatal("Bot error", zap.Error(err))
	}
}
