package media

import "context"

// Extractor wraps the external transcode tool for segment extraction.
// Both operations are synchronous and fail-loud: errors carry the tool's
// diagnostic output and the caller decides whether to skip or abort.
type Extractor interface {
	// ExtractAudioWindow writes a mono 16 kHz PCM wav covering
	// [startSec, endSec) of the source video and returns its path
	ExtractAudioWindow(ctx context.Context, startSec, endSec float64) (string, error)
	// ExtractClip writes a playable video file covering the padded window
	// around [startSec, endSec) for clip number n and returns its path
	ExtractClip(ctx context.Context, startSec, endSec float64, n int) (string, error)
}

// Prober reports source media metadata
type Prober interface {
	// Duration returns the source duration in seconds
	Duration(ctx context.Context) (float64, error)
	// FrameRate returns the source frame rate clamped to a sane bound
	FrameRate(ctx context.Context) (float64, error)
}
