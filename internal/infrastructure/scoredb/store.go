// Package scoredb keeps the leaderboard in a local SQLite database via
// the pure-Go driver, so the binary stays cgo-free.
package scoredb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ThanhChinhBK/kubebucket/internal/domain"
)

type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS scores (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	name   TEXT    NOT NULL,
	score  INTEGER NOT NULL,
	level  INTEGER NOT NULL,
	lines  INTEGER NOT NULL,
	pods   INTEGER NOT NULL,
	played INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scores_score ON scores(score DESC);
`

// Open creates or opens the database file and prepares the schema. The
// driver serializes through a single connection; WAL keeps readers from
// blocking the save at game over.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open scores db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init scores schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Load(ctx context.Context) ([]domain.ScoreEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, score, level, lines, pods, played
		FROM scores
		ORDER BY score DESC, played ASC
		LIMIT ?`, domain.MaxScores)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var out []domain.ScoreEntry
	for rows.Next() {
		var e domain.ScoreEntry
		var played int64
		if err := rows.Scan(&e.Name, &e.Score, &e.Level, &e.Lines, &e.Pods, &played); err != nil {
			return nil, fmt.Errorf("scan score row: %w", err)
		}
		e.Played = time.Unix(played, 0).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

// Save replaces the stored table with the given entries in one
// transaction.
func (s *Store) Save(ctx context.Context, entries []domain.ScoreEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin scores tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM scores`); err != nil {
		return fmt.Errorf("clear scores: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO scores (name, score, level, lines, pods, played)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare score insert: %w", err)
	}
	defer stmt.Close()
	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Name, e.Score, e.Level, e.Lines, e.Pods, e.Played.Unix()); err != nil {
			return fmt.Errorf("insert score for %s: %w", e.Name, err)
		}
	}
	return tx.Commit()
}

func (s *Store) Close() error {
	return s.db.Close()
}
