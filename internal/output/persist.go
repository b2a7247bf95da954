package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Persist writes the rendered report under dir, named by the snapshot
// time, and returns the resolved path. The caller has already printed
// the report; a write failure here is a warning, not a run failure.
func Persist(report, dir, format string, when time.Time) (string, error) {
	ext := ".txt"
	if format == "structured" {
		ext = ".json"
	}
	name := fmt.Sprintf("network_diagnostic_%s%s", when.Format("20060102_150405"), ext)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return "", err
	}
	return filepath.Abs(path)
}
