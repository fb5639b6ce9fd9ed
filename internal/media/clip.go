package media

import (
	"context"
	"fmt"
)

// ClipWindow computes the padded extraction window for a detected interval.
// The window gets padding seconds on both sides, never starts before zero,
// and is extended at the end so the clip is at least minDuration long.
func ClipWindow(startSec, endSec, padding, minDuration float64) (float64, float64) {
	clipStart := startSec - padding
	if clipStart < 0 {
		clipStart = 0
	}
	clipEnd := endSec + padding
	if clipEnd-clipStart < minDuration {
		clipEnd = clipStart + minDuration
	}
	return clipStart, clipEnd
}

// ExtractClip stream-copies the padded window around [startSec, endSec)
// into the numbered clip file
func (e *implExtractor) ExtractClip(ctx context.Context, startSec, endSec float64, n int) (string, error) {
	clipStart, clipEnd := ClipWindow(startSec, endSec, e.cfg.Detection.ClipPaddingSec, e.cfg.Detection.MinClipSec)
	duration := clipEnd - clipStart
	outputPath := e.store.NextClipPath(n)

	e.logger.Info(ctx, "Extracting highlight #%d: %.1fs to %.1fs (duration: %.1fs)", n, clipStart, clipEnd, duration)

	args := []string{
		"-y",
		"-ss", formatSeconds(clipStart),
		"-i", e.cfg.Video.Path,
		"-t", formatSeconds(duration),
		"-c", "copy", // Stream copy, no re-encode
		outputPath,
	}

	if _, err := e.executor.Execute(ctx, e.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract clip: %w", err)
	}

	e.logger.Info(ctx, "Successfully extracted: %s", outputPath)
	return outputPath, nil
}
