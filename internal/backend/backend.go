// Package backend adapts the external typing-tutor process to a typed
// request/response interface. The args-in/text-out protocol and all of
// its marker parsing live here; nothing outside this package touches
// raw backend text.
package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/itsmenuma/typing-tutor/internal/model"
)

// Markers in the backend's text output.
const (
	paragraphMarker = "Random Paragraph:"
	statsMarker     = "Typing Stats:"
	errorPrefix     = "ERROR:"
)

// Error is a failure reported by the backend itself via an
// ERROR-prefixed response.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend error: %s", e.Message)
}

// Result is one completed attempt, submitted to the backend for stats
// computation and leaderboard persistence.
type Result struct {
	Username        string
	Difficulty      model.Difficulty
	CaseSensitive   bool
	ElapsedSeconds  float64
	Input           string
	Target          string
	Mode            model.Mode
	DurationSeconds int
}

// Runner is the single collaborator interface to the backend process.
type Runner interface {
	FetchParagraph(ctx context.Context, difficulty model.Difficulty) (string, error)
	FetchLeaderboard(ctx context.Context, difficulty model.Difficulty, username string) (string, error)
	Submit(ctx context.Context, result Result) (string, error)
}

// ParseParagraph extracts the paragraph body following the marker line.
func ParseParagraph(output string) (string, error) {
	if msg, ok := errorMessage(output); ok {
		return "", &Error{Message: msg}
	}
	body, ok := afterMarker(output, paragraphMarker)
	if !ok {
		return "", fmt.Errorf("no %q marker in backend output", paragraphMarker)
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return "", fmt.Errorf("empty paragraph in backend output")
	}
	return body, nil
}

// ParseStats extracts the human-readable stats block following the
// marker line.
func ParseStats(output string) (string, error) {
	if msg, ok := errorMessage(output); ok {
		return "", &Error{Message: msg}
	}
	block, ok := afterMarker(output, statsMarker)
	if !ok {
		// Some backend revisions print the block without the marker.
		return strings.TrimSpace(output), nil
	}
	return strings.TrimSpace(block), nil
}

func errorMessage(output string) (string, bool) {
	trimmed := strings.TrimSpace(output)
	if !strings.HasPrefix(trimmed, errorPrefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(trimmed, errorPrefix)), true
}

func afterMarker(output, marker string) (string, bool) {
	idx := strings.Index(output, marker)
	if idx < 0 {
		return "", false
	}
	return output[idx+len(marker):], true
}

func caseFlag(caseSensitive bool) string {
	// The backend takes a caseInsensitive flag, so the sense inverts.
	if caseSensitive {
		return "0"
	}
	return "1"
}
