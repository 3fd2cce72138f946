package manuscript

import (
	"strings"

	"golang.org/x/text/width"
)

// Widen maps ASCII digits, letters and the period to their full-width forms.
// Every other rune, including ASCII spaces and characters that are already
// full-width, is returned unchanged.
func Widen(text string) string {
	return strings.Map(widenRune, text)
}

func widenRune(r rune) rune {
	if !inWidthTable(r) {
		return r
	}
	if wide := width.LookupRune(r).Wide(); wide != 0 {
		return wide
	}
	return r
}

func inWidthTable(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= 'a' && r <= 'z':
		return true
	default:
		return r == '.'
	}
}

// narrow folds full-width forms back to ASCII. Used when reading cue headers.
func narrow(text string) string {
	return width.Narrow.String(text)
}
