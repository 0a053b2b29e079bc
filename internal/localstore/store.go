// Package localstore caches finished attempt results in a local sqlite file
// so the history view works without refetching (or without a connection).
package localstore

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"quiz-client/internal/backend"
)

type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

func Open(path string, logger *slog.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		path = "quiz-cache.db"
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &Store{db: db, logger: logger}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS attempt_results (
			attempt_id INTEGER PRIMARY KEY,
			quiz_id INTEGER NOT NULL,
			quiz_title TEXT NOT NULL,
			total_questions INTEGER NOT NULL,
			correct_answers INTEGER NOT NULL,
			total_points REAL NOT NULL,
			score_percentage REAL NOT NULL,
			finished_at_unix INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_attempt_results_quiz ON attempt_results(quiz_id);`,
		`CREATE INDEX IF NOT EXISTS idx_attempt_results_finished_at ON attempt_results(finished_at_unix DESC);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// CachedResult is one locally stored scored attempt.
type CachedResult struct {
	AttemptID       int64
	QuizID          int64
	QuizTitle       string
	TotalQuestions  int
	CorrectAnswers  int
	TotalPoints     float64
	ScorePercentage float64
	FinishedAt      time.Time
}

// SaveResult upserts by attempt id, so re-saving after a refetch is harmless.
func (s *Store) SaveResult(ctx context.Context, result backend.QuizResult, quizTitle string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attempt_results (
			attempt_id, quiz_id, quiz_title, total_questions,
			correct_answers, total_points, score_percentage, finished_at_unix
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(attempt_id) DO UPDATE SET
			total_questions = excluded.total_questions,
			correct_answers = excluded.correct_answers,
			total_points = excluded.total_points,
			score_percentage = excluded.score_percentage,
			finished_at_unix = excluded.finished_at_unix;`,
		result.AttemptID,
		result.QuizID,
		quizTitle,
		result.TotalQuestions,
		result.CorrectAnswers,
		result.TotalPoints,
		result.ScorePercentage,
		time.Now().UTC().Unix(),
	)
	if err != nil {
		s.logger.Warn("failed to cache attempt result", "attempt_id", result.AttemptID, "error", err)
	}
	return err
}

func (s *Store) ListResults(ctx context.Context, quizID int64) ([]CachedResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT attempt_id, quiz_id, quiz_title, total_questions,
		       correct_answers, total_points, score_percentage, finished_at_unix
		FROM attempt_results
		WHERE quiz_id = ?
		ORDER BY finished_at_unix DESC;`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResults(rows)
}

func (s *Store) RecentResults(ctx context.Context, limit int) ([]CachedResult, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT attempt_id, quiz_id, quiz_title, total_questions,
		       correct_answers, total_points, score_percentage, finished_at_unix
		FROM attempt_results
		ORDER BY finished_at_unix DESC
		LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResults(rows)
}

func scanResults(rows *sql.Rows) ([]CachedResult, error) {
	var results []CachedResult
	for rows.Next() {
		var item CachedResult
		var finishedAt int64
		if err := rows.Scan(
			&item.AttemptID,
			&item.QuizID,
			&item.QuizTitle,
			&item.TotalQuestions,
			&item.CorrectAnswers,
			&item.TotalPoints,
			&item.ScorePercentage,
			&finishedAt,
		); err != nil {
			return nil, err
		}
		item.FinishedAt = time.Unix(finishedAt, 0).UTC()
		results = append(results, item)
	}
	return results, rows.Err()
}
