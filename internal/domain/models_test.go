package domain

import (
	"fmt"
	"testing"
	"time"
)

func TestInsertScoreKeepsOrder(t *testing.T) {
	var entries []ScoreEntry
	for _, s := range []int{500, 1500, 1000} {
		entries = InsertScore(entries, ScoreEntry{Name: fmt.Sprintf("p%d", s), Score: s})
	}
	want := []int{1500, 1000, 500}
	for i, e := range entries {
		if e.Score != want[i] {
			t.Fatalf("entries[%d] = %d, want %d", i, e.Score, want[i])
		}
	}
}

func TestInsertScoreTruncates(t *testing.T) {
	var entries []ScoreEntry
	for s := 1; s <= MaxScores+5; s++ {
		entries = InsertScore(entries, ScoreEntry{Score: s * 100})
	}
	if len(entries) != MaxScores {
		t.Fatalf("len = %d, want %d", len(entries), MaxScores)
	}
	if entries[0].Score != (MaxScores+5)*100 {
		t.Fatalf("top = %d", entries[0].Score)
	}
	if entries[MaxScores-1].Score != 600 {
		t.Fatalf("bottom = %d, the low scores must fall off", entries[MaxScores-1].Score)
	}
}

func TestInsertScoreTiesKeepEarlierFirst(t *testing.T) {
	older := ScoreEntry{Name: "first", Score: 800, Played: time.Unix(100, 0)}
	newer := ScoreEntry{Name: "second", Score: 800, Played: time.Unix(200, 0)}
	entries := InsertScore(nil, older)
	entries = InsertScore(entries, newer)
	if entries[0].Name != "first" || entries[1].Name != "second" {
		t.Fatalf("tie order = %s, %s", entries[0].Name, entries[1].Name)
	}
}

func TestQualifies(t *testing.T) {
	var entries []ScoreEntry
	if !Qualifies(entries, 0) {
		t.Fatal("empty table must accept any score")
	}
	for s := 1; s <= MaxScores; s++ {
		entries = InsertScore(entries, ScoreEntry{Score: s * 100})
	}
	if Qualifies(entries, 100) {
		t.Error("score equal to the bottom entry must not qualify")
	}
	if !Qualifies(entries, 150) {
		t.Error("score above the bottom entry must qualify")
	}
}
