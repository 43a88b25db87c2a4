package tui

import (
	"strings"
	"testing"

	"github.com/itsmenuma/typing-tutor/internal/compare"
)

func TestBuildStyledRunesStatuses(t *testing.T) {
	cells := compare.Classify([]rune("cat"), []rune("cx"), 2, true)
	runes := buildStyledRunes(cells)
	if len(runes) != 3 {
		t.Fatalf("expected 3 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("c") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != incorrectStyle.Render("a") {
		t.Fatalf("expected incorrect style keeps the target rune")
	}
	if runes[2].s != cursorStyle.Render("t") {
		t.Fatalf("expected cursor style at the typing position")
	}
}

func TestBuildStyledRunesWrongSpaceBullet(t *testing.T) {
	cells := compare.Classify([]rune("a b"), []rune("ax"), 2, true)
	runes := buildStyledRunes(cells)
	if runes[1].s != incorrectStyle.Render("•") {
		t.Fatalf("expected mistyped space rendered as bullet")
	}
	if !runes[1].isSpace {
		t.Fatalf("bullet must still count as a space for wrapping")
	}
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	cells := compare.Classify([]rune("one two three"), nil, -1, true)
	wrapped := wrapStyledRunes(buildStyledRunes(cells), 8)
	lines := strings.Split(wrapped, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), wrapped)
	}
	if lines[0] != renderStyledRunes(buildStyledRunes(compare.Classify([]rune("one two"), nil, -1, true))) {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
}

func TestWrapStyledRunesLongWordHardBreak(t *testing.T) {
	cells := compare.Classify([]rune("abcdefgh"), nil, -1, true)
	wrapped := wrapStyledRunes(buildStyledRunes(cells), 4)
	lines := strings.Split(wrapped, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected hard break into 2 lines, got %d", len(lines))
	}
}
