// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/itsmenuma/typing-tutor/internal/compare"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes maps classified target cells onto styled glyphs. A
// mistyped space renders as a bullet so the error stays visible.
func buildStyledRunes(cells []compare.Cell) []styledRune {
	out := make([]styledRune, 0, len(cells))
	for _, cell := range cells {
		displayed := cell.Char
		var style = pendingStyle
		switch cell.Status {
		case compare.StatusCorrect:
			style = correctStyle
		case compare.StatusIncorrect:
			style = incorrectStyle
			if cell.Char == ' ' {
				displayed = '•'
			}
		case compare.StatusCurrent:
			style = cursorStyle
		case compare.StatusPending:
			style = pendingStyle
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: cell.Char == ' ',
		})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
