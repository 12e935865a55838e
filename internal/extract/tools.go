package extract

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Toolset records which optional external executables are on PATH.
// Empty fields mean the tool is unavailable and the strategies that need it
// degrade to their typed tool-missing error instead.
type Toolset struct {
	FFmpeg  string
	Soffice string
}

// DetectTools checks PATH once for the external tools the registry can use.
func DetectTools() Toolset {
	var t Toolset
	if p, err := exec.LookPath("ffmpeg"); err == nil {
		t.FFmpeg = p
	}
	if p, err := exec.LookPath("soffice"); err == nil {
		t.Soffice = p
	}
	return t
}

// tempDir returns the shared scratch directory for rendered pages and
// grabbed frames, creating it if needed.
func tempDir() (string, error) {
	dir := filepath.Join(os.TempDir(), "smartname")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	return dir, nil
}
