package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const wrongSpaceGlyph = '•'

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes colours a passage against what has been typed. Typed runes
// are final, so the cursor always sits right after them.
func buildStyledRunes(target, typed []rune) []styledRune {
	cursor := len(typed)
	current := wordAt(findWords(target), cursor)

	out := make([]styledRune, 0, len(target))
	for i, want := range target {
		shown := want
		style := pendingStyle
		switch {
		case i < len(typed) && want == ' ' && typed[i] != ' ':
			shown = wrongSpaceGlyph
			style = incorrectStyle
		case i < len(typed) && typed[i] == want:
			style = correctStyle
		case i < len(typed):
			style = incorrectStyle
		case want != ' ' && current != nil && i >= current.start && i < current.end:
			style = currentWordStyle
		}
		if i == cursor {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			s:       style.Render(string(shown)),
			width:   runewidth.RuneWidth(shown),
			isSpace: want == ' ',
		})
	}
	return out
}

type wordRange struct {
	start int
	end   int
}

func findWords(target []rune) []wordRange {
	var words []wordRange
	start := -1
	for i, r := range target {
		switch {
		case r == ' ' && start != -1:
			words = append(words, wordRange{start: start, end: i})
			start = -1
		case r != ' ' && start == -1:
			start = i
		}
	}
	if start != -1 {
		words = append(words, wordRange{start: start, end: len(target)})
	}
	return words
}

// wordAt returns the word holding the cursor, or the next one when the
// cursor is on a space. Past the end it returns nil.
func wordAt(words []wordRange, cursor int) *wordRange {
	for i := range words {
		if cursor < words[i].end {
			return &words[i]
		}
	}
	return nil
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks lines at the last space that fits, or mid-word when
// a word is wider than the line.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var lines []string
	line := make([]styledRune, 0, width)
	lineWidth := 0
	for _, item := range runes {
		if lineWidth+item.width > width && len(line) > 0 {
			cut := lastSpaceIndex(line)
			if cut < 0 {
				lines = append(lines, renderStyledRunes(line))
				line, lineWidth = line[:0], 0
			} else {
				lines = append(lines, renderStyledRunes(line[:cut]))
				line = append([]styledRune(nil), line[cut+1:]...)
				lineWidth = 0
				for _, r := range line {
					lineWidth += r.width
				}
			}
		}
		line = append(line, item)
		lineWidth += item.width
	}
	lines = append(lines, renderStyledRunes(line))
	return strings.Join(lines, "\n")
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
