package manuscript

import (
	"regexp"
	"strings"
)

// Marker tags a cue as narration or on-screen text.
type Marker string

const (
	MarkerNone      Marker = ""
	MarkerNarration Marker = "N"
	MarkerOnScreen  Marker = "ON"
)

// Cue is one entry read back from a manuscript. Number and Marker are folded
// to ASCII; Lines keep the text as written, without the continuation indent.
type Cue struct {
	Number string   `json:"number,omitempty"`
	Marker Marker   `json:"marker,omitempty"`
	Lines  []string `json:"lines"`
}

// Text joins the cue body lines.
func (c Cue) Text() string {
	return strings.Join(c.Lines, "\n")
}

var cueHeaderPattern = regexp.MustCompile(`^([0-9０-９]{4})　　(N|Ｎ|ON|ＯＮ)(?:　　(.*))?$`)

// ParseCues reads a manuscript (widened or not) back into cue entries. Lines
// that are neither cue headers nor continuations become MarkerNone entries.
func ParseCues(text string) []Cue {
	var cues []Cue
	open := -1
	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			open = -1
			continue
		}
		if m := cueHeaderPattern.FindStringSubmatch(line); m != nil {
			cue := Cue{Number: narrow(m[1]), Marker: Marker(narrow(m[2]))}
			if m[3] != "" {
				cue.Lines = append(cue.Lines, m[3])
			}
			cues = append(cues, cue)
			open = len(cues) - 1
			continue
		}
		if rest, ok := strings.CutPrefix(line, ContinuationIndent); ok && open >= 0 {
			cues[open].Lines = append(cues[open].Lines, rest)
			continue
		}
		cues = append(cues, Cue{Lines: []string{strings.TrimPrefix(line, ContinuationIndent)}})
		open = -1
	}
	return cues
}
