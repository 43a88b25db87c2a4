// Package leaderboard parses and ranks backend leaderboard text.
package leaderboard

import (
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/itsmenuma/typing-tutor/internal/model"
)

// Entry is one leaderboard row, parsed fresh from backend text on each
// display request.
type Entry struct {
	Name       string
	CPM        float64
	WPM        float64
	Accuracy   float64
	Difficulty model.Difficulty
}

// ParseTable parses the raw multi-line leaderboard text. Rows are
// whitespace or pipe-delimited `name cpm wpm accuracy difficulty`
// records; header and separator lines are filtered, malformed lines are
// dropped and logged, never fatal.
func ParseTable(text string, logger *zap.Logger) []Entry {
	if logger == nil {
		logger = zap.NewNop()
	}
	var entries []Entry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isSeparator(line) {
			continue
		}
		entry, err := parseLine(line)
		if err != nil {
			logger.Debug("dropping leaderboard line", zap.String("line", line), zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func isSeparator(line string) bool {
	return strings.Trim(line, "-=+| ") == ""
}

func parseLine(line string) (Entry, error) {
	var fields []string
	if strings.Contains(line, "|") {
		for _, cell := range strings.Split(line, "|") {
			cell = strings.TrimSpace(cell)
			if cell != "" {
				fields = append(fields, cell)
			}
		}
	} else {
		fields = strings.Fields(line)
	}
	if len(fields) < 4 {
		return Entry{}, strconv.ErrSyntax
	}
	cpm, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Entry{}, err
	}
	wpm, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return Entry{}, err
	}
	acc, err := strconv.ParseFloat(strings.TrimSuffix(fields[3], "%"), 64)
	if err != nil {
		return Entry{}, err
	}
	entry := Entry{Name: fields[0], CPM: cpm, WPM: wpm, Accuracy: acc}
	if len(fields) > 4 {
		entry.Difficulty = model.Difficulty(fields[4])
	}
	return entry, nil
}

// Rank deduplicates entries by name keeping the highest CPM per user,
// then sorts descending by CPM. The sort is stable, so ties keep their
// original relative order; dedup keeps the first-seen position of each
// name regardless of which occurrence carried the best score.
func Rank(entries []Entry) []Entry {
	bestByName := make(map[string]int, len(entries))
	ranked := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if idx, ok := bestByName[entry.Name]; ok {
			if entry.CPM > ranked[idx].CPM {
				ranked[idx] = entry
			}
			continue
		}
		bestByName[entry.Name] = len(ranked)
		ranked = append(ranked, entry)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CPM > ranked[j].CPM
	})
	return ranked
}

// Top returns the first n ranked entries.
func Top(ranked []Entry, n int) []Entry {
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}

// Standings is a ready-to-render leaderboard view: the top slice plus
// the current user's best entry and rank when they fall outside it.
type Standings struct {
	Top      []Entry
	UserBest Entry
	UserRank int
	HasUser  bool
}

// UserRank finds the user's best entry and 1-based rank in an already
// ranked slice. The display layer shows it separately when the user
// falls outside the top slice.
func UserRank(ranked []Entry, name string) (Entry, int, bool) {
	if name == "" {
		return Entry{}, 0, false
	}
	for i, entry := range ranked {
		if entry.Name == name {
			return entry, i + 1, true
		}
	}
	return Entry{}, 0, false
}
