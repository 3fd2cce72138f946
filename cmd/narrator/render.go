package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"narrator/internal/manuscript"
)

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

func shouldColorize(writer io.Writer, mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", colorAuto:
		file, ok := writer.(*os.File)
		if !ok {
			return false, nil
		}
		fd := file.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd), nil
	case colorAlways:
		return true, nil
	case colorNever:
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color %q (use auto, always, or never)", mode)
	}
}

// renderManuscript writes text with ON cue lines styled in highlightColor.
func renderManuscript(w io.Writer, text, highlightColor string, colorize bool) error {
	if !colorize {
		_, err := io.WriteString(w, text)
		return err
	}
	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(termenv.TrueColor)
	style := renderer.NewStyle().
		Background(lipgloss.Color(highlightColor)).
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true)

	var b strings.Builder
	for _, span := range manuscript.Segment(text) {
		if span.Highlight {
			b.WriteString(style.Render(span.Text))
			continue
		}
		b.WriteString(span.Text)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
