package media

import (
	"context"
	"fmt"
	"strconv"
)

// ExtractAudioWindow cuts [startSec, endSec) of the source into a mono
// 16kHz PCM wav, the input format Whisper expects
func (e *implExtractor) ExtractAudioWindow(ctx context.Context, startSec, endSec float64) (string, error) {
	chunkPath := e.store.ChunkPath(startSec)

	args := []string{
		"-y",
		"-ss", formatSeconds(startSec),
		"-to", formatSeconds(endSec),
		"-i", e.cfg.Video.Path,
		"-ar", "16000", // 16kHz sample rate
		"-ac", "1", // Mono
		"-f", "wav",
		chunkPath,
	}

	if _, err := e.executor.Execute(ctx, e.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio chunk: %w", err)
	}

	e.logger.Debug(ctx, "Audio chunk extracted: %s", chunkPath)
	return chunkPath, nil
}

// formatSeconds renders a second offset for ffmpeg arguments
func formatSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', -1, 64)
}
