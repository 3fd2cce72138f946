package manuscript

import "strings"

// Step names, in application order.
const (
	StepRewrite           = "rewrite"
	StepCollapseDuplicate = "collapse-duplicates"
	StepBlankLines        = "blank-lines"
	StepWiden             = "widen"
)

// Stats summarizes what a conversion changed.
type Stats struct {
	InputLines         int `json:"input_lines"`
	OutputLines        int `json:"output_lines"`
	NarrationCues      int `json:"narration_cues"`
	OnScreenCues       int `json:"on_screen_cues"`
	RepeatedNumbers    int `json:"repeated_numbers"`
	DroppedLines       int `json:"dropped_lines"`
	CollapsedBlankRuns int `json:"collapsed_blank_runs"`
}

// Result is a converted manuscript and its statistics.
type Result struct {
	Text  string `json:"manuscript"`
	Stats Stats  `json:"stats"`
}

// Step is one stage of the conversion pipeline.
type Step struct {
	Name string
	run  func(text string, stats *Stats) string
}

// Apply runs the step on its own.
func (s Step) Apply(text string) string {
	var discard Stats
	return s.run(text, &discard)
}

// The widen step must stay last: the earlier steps match ASCII digits.
var steps = []Step{
	{Name: StepRewrite, run: func(text string, _ *Stats) string {
		return Rewrite(text)
	}},
	{Name: StepCollapseDuplicate, run: func(text string, stats *Stats) string {
		out, dropped, repeated := collapseDuplicates(text)
		stats.DroppedLines = dropped
		stats.RepeatedNumbers = repeated
		return out
	}},
	{Name: StepBlankLines, run: func(text string, stats *Stats) string {
		out, runs := normalizeBlankLines(text)
		stats.CollapsedBlankRuns = runs
		return out
	}},
	{Name: StepWiden, run: func(text string, _ *Stats) string {
		return Widen(text)
	}},
}

// Steps returns the pipeline stages in the order Process applies them.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// Convert runs the full pipeline and returns only the manuscript text.
func Convert(text string) string {
	return Process(text).Text
}

// Process runs the full pipeline over a decoded transcript.
func Process(text string) Result {
	var stats Stats
	text = normalizeNewlines(text)
	stats.InputLines = len(splitLines(text))
	for _, step := range steps {
		text = step.run(text, &stats)
	}
	stats.OutputLines = len(splitLines(text))
	for _, cue := range ParseCues(text) {
		switch cue.Marker {
		case MarkerNarration:
			stats.NarrationCues++
		case MarkerOnScreen:
			stats.OnScreenCues++
		}
	}
	return Result{Text: text, Stats: stats}
}

// ConvertBytes decodes raw transcript bytes and runs the pipeline.
func ConvertBytes(raw []byte) (Result, error) {
	text, err := Decode(raw)
	if err != nil {
		return Result{}, err
	}
	return Process(text), nil
}

// DefaultFileSuffix is appended to an input's base name to name its manuscript.
const DefaultFileSuffix = "_manuscript"

// OutputName derives a manuscript file name from a transcript file name.
func OutputName(source, suffix string) string {
	base := source
	if idx := strings.LastIndexAny(base, `/\`); idx >= 0 {
		base = base[idx+1:]
	}
	if dot := strings.LastIndex(base, "."); dot > 0 {
		base = base[:dot]
	}
	if strings.TrimSpace(base) == "" {
		base = "transcript"
	}
	return base + suffix + ".txt"
}
