// Package compare implements position-by-position text comparison.
package compare

import "unicode"

// Status classifies a target position relative to the typed input.
type Status int

// Position statuses.
const (
	StatusCorrect Status = iota
	StatusIncorrect
	StatusCurrent
	StatusPending
)

// Cell pairs a target character with its comparison status.
type Cell struct {
	Char   rune
	Status Status
}

// Match reports whether a typed rune matches the target rune under the
// given case mode. Case-insensitive comparison folds both sides; the
// stored input is never modified.
func Match(target, input rune, caseSensitive bool) bool {
	if caseSensitive {
		return target == input
	}
	return unicode.ToLower(target) == unicode.ToLower(input)
}

// CountMismatches re-walks all typed positions below cursor and counts
// the true mismatches. Used to restore error-count exactness after a
// backspace.
func CountMismatches(target, input []rune, cursor int, caseSensitive bool) int {
	if cursor > len(input) {
		cursor = len(input)
	}
	if cursor > len(target) {
		cursor = len(target)
	}
	mismatches := 0
	for i := 0; i < cursor; i++ {
		if !Match(target[i], input[i], caseSensitive) {
			mismatches++
		}
	}
	return mismatches
}

// Classify maps every target position to a status: typed positions are
// correct or incorrect, the cursor position is current, the rest pending.
func Classify(target, input []rune, cursor int, caseSensitive bool) []Cell {
	cells := make([]Cell, len(target))
	for i, r := range target {
		cell := Cell{Char: r}
		switch {
		case i < cursor && i < len(input):
			if Match(r, input[i], caseSensitive) {
				cell.Status = StatusCorrect
			} else {
				cell.Status = StatusIncorrect
			}
		case i == cursor:
			cell.Status = StatusCurrent
		default:
			cell.Status = StatusPending
		}
		cells[i] = cell
	}
	return cells
}
