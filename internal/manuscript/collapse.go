package manuscript

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// cueNumberPattern matches a standalone 4-digit cue number. Word boundaries are
// Unicode-aware, so digits glued to kana or kanji do not count.
var cueNumberPattern = regexp2.MustCompile(`\b\d{4}\b`, regexp2.None)

// occurrenceTracker maps each repeated cue number to whether the line that
// first introduced it has already been dropped. It lives for a single call.
type occurrenceTracker map[string]bool

func newOccurrenceTracker(text string) occurrenceTracker {
	counts := make(map[string]int)
	for _, number := range cueNumbers(text) {
		counts[number]++
	}
	tracker := make(occurrenceTracker)
	for number, count := range counts {
		if count > 1 {
			tracker[number] = false
		}
	}
	return tracker
}

// consume marks the leftmost pending repeated number found in line and
// reports whether the line should be dropped.
func (t occurrenceTracker) consume(line string) bool {
	for _, number := range cueNumbers(line) {
		if consumed, repeated := t[number]; repeated && !consumed {
			t[number] = true
			return true
		}
	}
	return false
}

// CollapseDuplicates drops, for every cue number that occurs more than once,
// the first line that contains it. Later lines are kept as-is.
func CollapseDuplicates(text string) string {
	out, _, _ := collapseDuplicates(text)
	return out
}

func collapseDuplicates(text string) (string, int, int) {
	tracker := newOccurrenceTracker(text)
	lines := splitLines(text)
	if len(tracker) == 0 {
		return strings.Join(lines, "\n"), 0, 0
	}

	kept := make([]string, 0, len(lines))
	dropped := 0
	for _, line := range lines {
		if tracker.consume(line) {
			dropped++
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n"), dropped, len(tracker)
}

// CueNumbers returns every 4-digit cue number in text, in document order.
func CueNumbers(text string) []string {
	return cueNumbers(text)
}

func cueNumbers(text string) []string {
	var numbers []string
	match, err := cueNumberPattern.FindStringMatch(text)
	for err == nil && match != nil {
		numbers = append(numbers, match.String())
		match, err = cueNumberPattern.FindNextMatch(match)
	}
	return numbers
}

// splitLines splits on LF and drops the empty element a trailing newline
// would leave behind.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
