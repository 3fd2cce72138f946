package manuscript

import (
	"strings"
	"testing"
)

func TestHighlights(t *testing.T) {
	prefix := "００４７　　Ｎ　　ｘ\n\n"
	text := prefix + "００５１　　ＯＮ"
	spans := Highlights(text)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Start != len(prefix) || spans[0].End != len(text) {
		t.Fatalf("unexpected offsets: %+v", spans[0])
	}
	if spans[0].Text != "００５１　　ＯＮ" {
		t.Fatalf("unexpected span text %q", spans[0].Text)
	}
}

func TestHighlightsIgnoresNarrowForms(t *testing.T) {
	if spans := Highlights("0051　　ON\n００５１ ＯＮ\n００５１　　Ｎ"); len(spans) != 0 {
		t.Fatalf("expected no spans, got %+v", spans)
	}
}

func TestSegmentRoundTrip(t *testing.T) {
	text := "００１２　　Ｎ　　ａ\n\n００１５　　ＯＮ\n００２０　　Ｎ　　ｂ\n\n００２２　　ＯＮ"
	spans := Segment(text)
	var b strings.Builder
	highlighted := 0
	for _, s := range spans {
		b.WriteString(s.Text)
		if s.Highlight {
			highlighted++
		}
	}
	if b.String() != text {
		t.Fatalf("segments do not reassemble input: %q", b.String())
	}
	if highlighted != 2 {
		t.Fatalf("expected 2 highlighted spans, got %d", highlighted)
	}
	if !spans[len(spans)-1].Highlight {
		t.Fatal("expected trailing ON cue to end the segment list")
	}
}

func TestSegmentEmpty(t *testing.T) {
	if spans := Segment(""); spans != nil {
		t.Fatalf("expected nil, got %+v", spans)
	}
}
