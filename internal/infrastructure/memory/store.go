// Package memory is the in-process score store used by -store memory
// and by tests. Nothing survives the process.
package memory

import (
	"context"
	"sync"

	"github.com/ThanhChinhBK/kubebucket/internal/domain"
)

type Store struct {
	mu      sync.Mutex
	entries []domain.ScoreEntry
}

func New() *Store {
	return &Store{}
}

// Load returns a copy so callers cannot alias the backing slice.
func (s *Store) Load(ctx context.Context) ([]domain.ScoreEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ScoreEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *Store) Save(ctx context.Context, entries []domain.ScoreEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make([]domain.ScoreEntry, len(entries))
	copy(s.entries, entries)
	return nil
}

func (s *Store) Close() error {
	return nil
}
