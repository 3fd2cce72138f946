package manuscript

import (
	"strings"
	"testing"
)

func TestNormalizeBlankLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		runs int
	}{
		{"collapses run", "a\n\n\nb", "a\n\nb", 1},
		{"keeps single blank", "a\n\nb", "a\n\nb", 0},
		{"whitespace-only counts as blank", "a\n \n　\n\nb", "a\n \nb", 1},
		{"multiple runs", "a\n\n\nb\n\n\n\nc", "a\n\nb\n\nc", 2},
		{"leading run", "\n\n\na", "\na", 1},
		{"no blanks", "a\nb", "a\nb", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, runs := normalizeBlankLines(tt.in)
			if got != tt.want {
				t.Fatalf("got %q want %q", got, tt.want)
			}
			if runs != tt.runs {
				t.Fatalf("expected %d collapsed runs, got %d", tt.runs, runs)
			}
		})
	}
}

func TestNormalizeBlankLinesNeverLeavesConsecutiveBlanks(t *testing.T) {
	in := "a\n\n\n\n \n\t\nb\n\nc\n\n\n"
	out := NormalizeBlankLines(in)
	lines := strings.Split(out, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" && strings.TrimSpace(lines[i-1]) == "" {
			t.Fatalf("consecutive blank lines at %d in %q", i, out)
		}
	}
}
