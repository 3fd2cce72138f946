package manuscript

import (
	"strings"
	"testing"
)

func TestStepsOrder(t *testing.T) {
	want := []string{StepRewrite, StepCollapseDuplicate, StepBlankLines, StepWiden}
	got := Steps()
	if len(got) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Fatalf("step %d: got %q want %q", i, got[i].Name, want[i])
		}
	}
}

func TestScenarioSingleCueBeforeWidening(t *testing.T) {
	text := "0012 - 0015\nV1, 2\nHello there.\n"
	for _, step := range Steps()[:3] {
		text = step.Apply(text)
	}
	want := "0012　　N　　Hello there.\n\n0015　　ON"
	if text != want {
		t.Fatalf("got %q want %q", text, want)
	}
}

func TestScenarioSingleCue(t *testing.T) {
	res := Process("0012 - 0015\r\nV1, 2\r\nHello there.\r\n")
	want := "００１２　　Ｎ　　Ｈｅｌｌｏ ｔｈｅｒｅ．\n\n００１５　　ＯＮ"
	if res.Text != want {
		t.Fatalf("got %q want %q", res.Text, want)
	}
	if res.Stats.NarrationCues != 1 || res.Stats.OnScreenCues != 1 {
		t.Fatalf("unexpected cue stats: %+v", res.Stats)
	}
	if res.Stats.InputLines != 3 || res.Stats.OutputLines != 3 {
		t.Fatalf("unexpected line stats: %+v", res.Stats)
	}
	if got := len(Highlights(res.Text)); got != res.Stats.OnScreenCues {
		t.Fatalf("expected one highlight per ON cue, got %d", got)
	}
}

func TestScenarioDuplicateCollapsing(t *testing.T) {
	in := strings.Join([]string{
		"00;00;47;08 - 00;00;51;03",
		"V1, 1",
		"preview",
		"",
		"00;00;47;08 - 00;00;52;00",
		"V1, 2",
		"real",
		"",
	}, "\n")

	res := Process(in)
	want := "\n００５１　　ＯＮ\n\n００４７　　Ｎ　　ｒｅａｌ\n\n００５２　　ＯＮ"
	if res.Text != want {
		t.Fatalf("got %q want %q", res.Text, want)
	}
	if strings.Contains(res.Text, "ｐｒｅｖｉｅｗ") {
		t.Fatal("expected the first 0047 line to be dropped")
	}
	if res.Stats.DroppedLines != 1 || res.Stats.RepeatedNumbers != 1 {
		t.Fatalf("unexpected collapse stats: %+v", res.Stats)
	}
	if res.Stats.CollapsedBlankRuns != 2 {
		t.Fatalf("expected 2 collapsed blank runs, got %d", res.Stats.CollapsedBlankRuns)
	}
}

func TestCollapseNeedsCompactedTimecodes(t *testing.T) {
	// Uncompacted timecodes carry no 4-digit tokens, so collapsing first
	// would keep the preview cue that the pipeline order removes.
	in := "00;00;47;08 - 00;00;51;03\nV1, 1\npreview\n\n00;00;47;08 - 00;00;52;00\nV1, 2\nreal\n"

	if got := CollapseDuplicates(in); got != strings.TrimSuffix(in, "\n") {
		t.Fatalf("expected collapse on raw input to be a no-op, got %q", got)
	}

	wrongOrder := Widen(NormalizeBlankLines(Rewrite(CollapseDuplicates(in))))
	if wrongOrder == Convert(in) {
		t.Fatal("expected collapsing before rewriting to differ from the pipeline")
	}
	if !strings.Contains(wrongOrder, "ｐｒｅｖｉｅｗ") {
		t.Fatal("expected wrong order to keep the preview cue")
	}
}

func TestProcessScenarioWidthNormalization(t *testing.T) {
	// Not a cue block, so the line is aligned as a continuation before widening.
	got := Convert("ON 1234 abc.")
	if got != ContinuationIndent+"ＯＮ １２３４ ａｂｃ．" {
		t.Fatalf("got %q", got)
	}
}

func TestProcessMultipleBlocksWithContinuations(t *testing.T) {
	in := strings.Join([]string{
		"V9, 1",
		"",
		"",
		"00;01;02;03 - 00;01;05;00",
		"V2, 1",
		"N First line",
		"second line",
		"",
		"00;01;10;00 - 00;01;12;10",
		"V2, 2",
		"Closing.",
		"",
	}, "\n")
	res := Process(in)

	cues := ParseCues(res.Text)
	if len(cues) != 4 {
		t.Fatalf("expected 4 cues, got %d: %q", len(cues), res.Text)
	}
	if cues[0].Number != "0102" || cues[0].Marker != MarkerNarration {
		t.Fatalf("unexpected first cue: %+v", cues[0])
	}
	if len(cues[0].Lines) != 2 {
		t.Fatalf("expected continuation to join first cue, got %+v", cues[0])
	}
	if strings.Contains(res.Text, "Ｖ９") {
		t.Fatalf("expected empty version label to be stripped: %q", res.Text)
	}
	if cues[3].Number != "0112" || cues[3].Marker != MarkerOnScreen {
		t.Fatalf("unexpected last cue: %+v", cues[3])
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"episode1.txt", "episode1_manuscript.txt"},
		{"/tmp/dir/ep.v2.txt", "ep.v2_manuscript.txt"},
		{`C:\exports\take.txt`, "take_manuscript.txt"},
		{"", "transcript_manuscript.txt"},
		{".hidden", ".hidden_manuscript.txt"},
	}
	for _, tt := range tests {
		if got := OutputName(tt.source, DefaultFileSuffix); got != tt.want {
			t.Fatalf("OutputName(%q) = %q want %q", tt.source, got, tt.want)
		}
	}
}
