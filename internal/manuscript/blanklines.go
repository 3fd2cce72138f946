package manuscript

import "strings"

// NormalizeBlankLines collapses every run of two or more whitespace-only lines
// into the first line of the run. Single blank lines are left alone.
func NormalizeBlankLines(text string) string {
	out, _ := normalizeBlankLines(text)
	return out
}

func normalizeBlankLines(text string) (string, int) {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	previousBlank := false
	skipping := false
	collapsedRuns := 0
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
			previousBlank = false
			skipping = false
			continue
		}
		if previousBlank {
			if !skipping {
				collapsedRuns++
				skipping = true
			}
			continue
		}
		kept = append(kept, line)
		previousBlank = true
	}
	return strings.Join(kept, "\n"), collapsedRuns
}
