package media

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const (
	minSaneFPS = 10
	maxSaneFPS = 60
	defaultFPS = 30
)

// Duration probes the container duration in seconds
func (p *implProber) Duration(ctx context.Context) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		p.cfg.Video.Path,
	}

	out, err := p.executor.Execute(ctx, p.cfg.FFmpeg.ProbePath, args...)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", strings.TrimSpace(out), err)
	}
	return duration, nil
}

// FrameRate probes the video stream frame rate. Rates outside 10-60 fps
// fall back to 30 fps so a bad header cannot stall or race playback.
func (p *implProber) FrameRate(ctx context.Context) (float64, error) {
	args := []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=avg_frame_rate",
		"-of", "default=noprint_wrappers=1:nokey=1",
		p.cfg.Video.Path,
	}

	out, err := p.executor.Execute(ctx, p.cfg.FFmpeg.ProbePath, args...)
	if err != nil {
		return 0, fmt.Errorf("ffprobe frame rate: %w", err)
	}

	fps, err := parseRate(strings.TrimSpace(out))
	if err != nil {
		return 0, err
	}
	return clampFPS(fps), nil
}

// parseRate parses ffprobe rational rates such as "30000/1001" or "25"
func parseRate(s string) (float64, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, fmt.Errorf("parse frame rate %q: %w", s, err)
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil {
			return 0, fmt.Errorf("parse frame rate %q: %w", s, err)
		}
		if d == 0 {
			return 0, nil
		}
		return n / d, nil
	}

	rate, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse frame rate %q: %w", s, err)
	}
	return rate, nil
}

func clampFPS(fps float64) float64 {
	if fps < minSaneFPS || fps > maxSaneFPS {
		return defaultFPS
	}
	return fps
}
