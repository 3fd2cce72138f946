package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"narrator/internal/config"
)

const stdinSource = "stdin.txt"

// readInput loads a transcript from a path, or from stdin when arg is "-".
// It returns the raw bytes, the display name, and the resolved path ("" for stdin).
func readInput(cmd *cobra.Command, arg string) ([]byte, string, string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", "", fmt.Errorf("read stdin: %w", err)
		}
		return raw, stdinSource, "", nil
	}
	path, err := config.ExpandPath(arg)
	if err != nil {
		return nil, "", "", fmt.Errorf("resolve input path: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", "", fmt.Errorf("inspect input %q: %w", path, err)
	}
	if info.IsDir() {
		return nil, "", "", fmt.Errorf("input %q is a directory", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", "", fmt.Errorf("read input: %w", err)
	}
	return raw, filepath.Base(path), path, nil
}
