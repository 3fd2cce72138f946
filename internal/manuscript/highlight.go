package manuscript

import "regexp"

// onCuePattern is the shape every emitted ON cue has after widening.
var onCuePattern = regexp.MustCompile(`[０-９]{4}　　ＯＮ`)

// HighlightSpan marks an ON cue inside a manuscript. Offsets are byte offsets
// into the manuscript text, End exclusive.
type HighlightSpan struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// Span is one run of manuscript text. Concatenating the spans returned by
// Segment reproduces the input exactly.
type Span struct {
	Text      string `json:"text"`
	Highlight bool   `json:"highlight,omitempty"`
}

// Highlights locates every ON cue in a finished manuscript.
func Highlights(text string) []HighlightSpan {
	matches := onCuePattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	spans := make([]HighlightSpan, 0, len(matches))
	for _, m := range matches {
		spans = append(spans, HighlightSpan{Start: m[0], End: m[1], Text: text[m[0]:m[1]]})
	}
	return spans
}

// Segment splits text into plain and highlighted spans for a renderer.
func Segment(text string) []Span {
	if text == "" {
		return nil
	}
	var spans []Span
	last := 0
	for _, h := range Highlights(text) {
		if h.Start > last {
			spans = append(spans, Span{Text: text[last:h.Start]})
		}
		spans = append(spans, Span{Text: h.Text, Highlight: true})
		last = h.End
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}
	return spans
}
