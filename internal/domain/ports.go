package domain

import "context"

// ScoreStore persists the leaderboard. Implementations live under
// internal/infrastructure; the TUI only talks to this interface.
type ScoreStore interface {
	Load(ctx context.Context) ([]ScoreEntry, error)
	Save(ctx context.Context, entries []ScoreEntry) error
	Close() error
}
