package domain

import "time"

// MaxScores bounds the leaderboard.
const MaxScores = 10

// ScoreEntry is one finished run on the leaderboard.
type ScoreEntry struct {
	Name   string    `json:"name"`
	Score  int       `json:"score"`
	Level  int       `json:"level"`
	Lines  int       `json:"lines"`
	Pods   int       `json:"pods"`
	Played time.Time `json:"played"`
}

// InsertScore adds e to the table, keeping it sorted by score descending
// and truncated to MaxScores. Ties keep the earlier entry first.
func InsertScore(entries []ScoreEntry, e ScoreEntry) []ScoreEntry {
	i := len(entries)
	for j := range entries {
		if e.Score > entries[j].Score {
			i = j
			break
		}
	}
	entries = append(entries, ScoreEntry{})
	copy(entries[i+1:], entries[i:])
	entries[i] = e
	if len(entries) > MaxScores {
		entries = entries[:MaxScores]
	}
	return entries
}

// Qualifies reports whether a score would enter the table.
func Qualifies(entries []ScoreEntry, score int) bool {
	if len(entries) < MaxScores {
		return true
	}
	return score > entries[len(entries)-1].Score
}
