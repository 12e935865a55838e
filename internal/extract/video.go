package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hamedyaghoobian/smartname/internal/scan"
)

// ffmpegTimeout bounds the frame-grab subprocess.
const ffmpegTimeout = 30 * time.Second

// frameTimestamp is where in the video the representative frame is taken.
const frameTimestamp = "00:00:01"

// extractVideoFrame grabs one frame with ffmpeg. Frame sampling is
// best-effort: a missing or failing ffmpeg is a tool-missing skip for this
// file, never fatal to the batch.
func (r *Registry) extractVideoFrame(ctx context.Context, entry scan.FileEntry) (Sample, error) {
	if r.tools.FFmpeg == "" {
		return Sample{}, &Error{Kind: ToolMissing, Path: entry.Path, Err: fmt.Errorf("ffmpeg not found on PATH")}
	}

	dir, err := tempDir()
	if err != nil {
		return Sample{}, &Error{Kind: ToolMissing, Path: entry.Path, Err: err}
	}
	framePath := filepath.Join(dir, uuid.NewString()+".jpg")
	defer os.Remove(framePath)

	runCtx, cancel := context.WithTimeout(ctx, ffmpegTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, r.tools.FFmpeg,
		"-i", entry.Path,
		"-ss", frameTimestamp,
		"-vframes", "1",
		"-y",
		framePath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return Sample{}, &Error{Kind: ToolMissing, Path: entry.Path, Err: fmt.Errorf("ffmpeg frame grab failed: %w: %s", err, string(out))}
	}

	data, err := os.ReadFile(framePath)
	if err != nil {
		return Sample{}, &Error{Kind: ToolMissing, Path: entry.Path, Err: err}
	}

	return Sample{
		Kind:         KindVideoFrame,
		Image:        data,
		SourceFormat: entry.Ext,
	}, nil
}
