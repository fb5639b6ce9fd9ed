package pacer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/nguyentantai21042004/highlight-flow/internal/config"
	"github.com/nguyentantai21042004/highlight-flow/internal/logger"
	"github.com/nguyentantai21042004/highlight-flow/internal/media"
	"github.com/nguyentantai21042004/highlight-flow/internal/worker"
)

// Frame is one encoded video frame with its position in the stream
type Frame struct {
	Index        int
	TimestampSec float64
	Data         []byte
}

// Enqueuer receives audio-chunk tasks scheduled during playback
type Enqueuer interface {
	Enqueue(t worker.Task) bool
}

// Pacer replays the source video as a paced sequence of JPEG frames while
// scheduling audio-chunk work synchronized to playback time. Each Stream
// call is an independent playback run.
type Pacer interface {
	Stream(ctx context.Context, emit func(Frame) error) error
}

type implPacer struct {
	cfg      *config.Config
	prober   media.Prober
	enqueuer Enqueuer
	logger   logger.Logger
}

// New creates a Pacer over the configured source video
func New(cfg *config.Config, prober media.Prober, enq Enqueuer, log logger.Logger) Pacer {
	return &implPacer{
		cfg:      cfg,
		prober:   prober,
		enqueuer: enq,
		logger:   log,
	}
}

// Stream decodes the source into JPEG frames at the source frame rate.
// Pacing is soft real-time: each frame sleeps for whatever remains of its
// nominal interval after production cost, so jitter self-corrects but slow
// frames are never dropped to catch up.
func (p *implPacer) Stream(ctx context.Context, emit func(Frame) error) error {
	fps, err := p.prober.FrameRate(ctx)
	if err != nil {
		return fmt.Errorf("probe frame rate: %w", err)
	}
	duration, err := p.prober.Duration(ctx)
	if err != nil {
		return fmt.Errorf("probe duration: %w", err)
	}

	p.logger.Info(ctx, "Starting playback: %s (%.2f fps, %.1fs)", p.cfg.Video.Path, fps, duration)

	cmd := exec.CommandContext(ctx, p.cfg.FFmpeg.BinaryPath,
		"-i", p.cfg.Video.Path,
		"-f", "image2pipe",
		"-vcodec", "mjpeg",
		"-q:v", "5",
		"-",
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg stdout pipe: %w", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}
	defer func() {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		_ = cmd.Wait()
	}()

	frameInterval := time.Duration(float64(time.Second) / fps)
	sched := newSchedule(p.cfg.Detection.ChunkLengthSec, duration)
	scanner := newFrameScanner(stdout)

	frameIndex := 0
	for {
		frameStart := time.Now()

		data, err := scanner.Next()
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			// ffmpeg died mid-frame or was killed by ctx cancellation
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("frame stream truncated: %s", strings.TrimSpace(stderr.String()))
		}
		if err != nil {
			return fmt.Errorf("read frame: %w", err)
		}

		playback := float64(frameIndex) / fps
		if err := emit(Frame{Index: frameIndex, TimestampSec: playback, Data: data}); err != nil {
			// Consumer went away; playback is per-invocation, just stop
			return err
		}
		frameIndex++

		if start, end, ok := sched.next(playback); ok {
			p.enqueueChunk(ctx, start, end)
		}

		if sleep := frameInterval - time.Since(frameStart); sleep > 0 {
			select {
			case <-time.After(sleep):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	// Source exhausted: flush whatever chunks playback time never reached
	// so coverage of [0, duration) is complete
	for {
		start, end, ok := sched.flush()
		if !ok {
			break
		}
		p.enqueueChunk(ctx, start, end)
	}

	p.logger.Info(ctx, "Playback finished: %d frames", frameIndex)
	return nil
}

func (p *implPacer) enqueueChunk(ctx context.Context, start, end float64) {
	if !p.enqueuer.Enqueue(worker.Task{StartSec: start, EndSec: end}) {
		p.logger.Warn(ctx, "Worker queue saturated, dropping chunk [%.1f, %.1f)", start, end)
	}
}
