// Package scorefile keeps the leaderboard in a single JSON file. Writes
// go through a temp file and rename, so a crash mid-save never
// truncates existing scores.
package scorefile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ThanhChinhBK/kubebucket/internal/domain"
)

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the file. A missing file is an empty leaderboard, not an
// error.
func (s *Store) Load(ctx context.Context) ([]domain.ScoreEntry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}
	var entries []domain.ScoreEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse scores %s: %w", s.path, err)
	}
	return entries, nil
}

func (s *Store) Save(ctx context.Context, entries []domain.ScoreEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create scores dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write scores: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace scores: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}
