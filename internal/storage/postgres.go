package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/xaenox/moodbot/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config DatabaseConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	storage := &PostgresStorage{db: db}

	// Initialize database schema
	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %v", err)
	}

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %v", err)
	}

	_, err = s.db.Exec(string(migrationSQL))
	if err != nil {
		return fmt.Errorf("error executing migrations: %v", err)
	}

	return nil
}

func (s *PostgresStorage) GetPreferences(ctx context.Context, userID string) (models.Preferences, error) {
	query := `
		SELECT user_id, enable_mood_checks, check_interval, mood_threshold
		FROM preferences
		WHERE user_id = $1`

	var prefs models.Preferences
	var intervalSeconds int64
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&prefs.UserID,
		&prefs.EnableMoodChecks,
		&intervalSeconds,
		&prefs.MoodThreshold,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Preferences{}, models.ErrNotFound
	}
	if err != nil {
		return models.Preferences{}, fmt.Errorf("error querying preferences: %v", err)
	}

	prefs.CheckInterval = time.Duration(intervalSeconds) * time.Second
	return prefs, nil
}

func (s *PostgresStorage) SetPreferences(ctx context.Context, prefs models.Preferences) error {
	query := `
		INSERT INTO preferences (user_id, enable_mood_checks, check_interval, mood_threshold)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET enable_mood_checks = EXCLUDED.enable_mood_checks,
		    check_interval = EXCLUDED.check_interval,
		    mood_threshold = EXCLUDED.mood_threshold`

	_, err := s.db.ExecContext(ctx, query,
		prefs.UserID,
		prefs.EnableMoodChecks,
		int64(prefs.CheckInterval/time.Second),
		prefs.MoodThreshold,
	)
	if err != nil {
		return fmt.Errorf("error upserting preferences: %v", err)
	}

	return nil
}

func (s *PostgresStorage) AppendSentiment(ctx context.Context, rec models.SentimentRecord) (int64, error) {
	query := `
		INSERT INTO sentiment_history (user_id, message, label, polarity, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		rec.UserID,
		rec.Message,
		string(rec.Label),
		rec.Polarity,
		ts,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error appending sentiment: %v", err)
	}

	return id, nil
}

func (s *PostgresStorage) RecentSentiments(ctx context.Context, userID string, limit int) ([]models.SentimentRecord, error) {
	query := `
		SELECT id, user_id, message, label, polarity, created_at
		FROM sentiment_history
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying sentiment history: %v", err)
	}
	defer rows.Close()

	var records []models.SentimentRecord
	for rows.Next() {
		var rec models.SentimentRecord
		var label string
		err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.Message,
			&label,
			&rec.Polarity,
			&rec.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning sentiment record: %v", err)
		}
		rec.Label = models.Label(label)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sentiment history: %v", err)
	}

	return records, nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
