// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty names a paragraph-selection tier forwarded to the backend.
type Difficulty string

// Known difficulty tiers.
const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// ParseDifficulty normalizes a user-supplied difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (easy, medium, hard)", s)
}

// Mode selects between paragraph and timed practice.
type Mode string

// Practice modes.
const (
	ModeParagraph Mode = "paragraph"
	ModeTimed     Mode = "timed"
)

// Config defines practice settings for one orchestrated session.
type Config struct {
	Username        string
	Difficulty      Difficulty
	CaseSensitive   bool
	Mode            Mode
	DurationMin     int
	AllowIncomplete bool
	LeaderboardTop  int
	BackendPath     string
}

// DurationSeconds returns the timed-mode countdown length.
func (c Config) DurationSeconds() int {
	return c.DurationMin * 60
}

// AttemptRecord captures a submitted attempt for local history.
type AttemptRecord struct {
	StartedAt     time.Time
	EndedAt       time.Time
	Username      string
	Difficulty    Difficulty
	Mode          Mode
	CaseSensitive bool
	CPM           int
	WPM           int
	Accuracy      int
	Mistakes      int
	TypedChars    int
	TargetChars   int
	DurationMs    int64
}

// HistoryFilter defines filters for history queries.
type HistoryFilter struct {
	Username   string
	Difficulty Difficulty
	Since      *time.Time
	Last       int
}
