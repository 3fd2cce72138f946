package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleTranscript is a two-cue export with one repeated cue number.
const SampleTranscript = "00;00;47;08 - 00;00;51;03\nV1, 1\npreview\n\n" +
	"00;00;47;08 - 00;00;52;00\nV1, 2\nreal\n"

// WriteTranscript writes contents to name under dir and returns the path.
func WriteTranscript(t testing.TB, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
