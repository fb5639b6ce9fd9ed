package worker

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/nguyentantai21042004/highlight-flow/internal/events"
	"github.com/nguyentantai21042004/highlight-flow/internal/highlight"
	"github.com/nguyentantai21042004/highlight-flow/internal/logger"
	"github.com/nguyentantai21042004/highlight-flow/internal/media"
	"github.com/nguyentantai21042004/highlight-flow/internal/transcriber"
)

type implWorker struct {
	extractor   media.Extractor
	transcriber transcriber.Transcriber
	bus         events.Bus
	logger      logger.Logger

	queue chan Task
	done  chan struct{}

	// Owned exclusively by the worker goroutine after Start; the atomic
	// is only for concurrent readers of HighlightCount
	highlightCount atomic.Int64
}

// New creates a Worker. startCount seeds the highlight counter with the
// number of clips already on disk so numbering continues from there.
func New(ext media.Extractor, tr transcriber.Transcriber, bus events.Bus, log logger.Logger, queueSize, startCount int) Worker {
	if queueSize <= 0 {
		queueSize = 1024
	}
	w := &implWorker{
		extractor:   ext,
		transcriber: tr,
		bus:         bus,
		logger:      log,
		queue:       make(chan Task, queueSize),
		done:        make(chan struct{}),
	}
	w.highlightCount.Store(int64(startCount))
	return w
}

func (w *implWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *implWorker) Enqueue(t Task) bool {
	select {
	case w.queue <- t:
		return true
	default:
		return false
	}
}

func (w *implWorker) Stop() {
	w.queue <- Task{stop: true}
	<-w.done
}

func (w *implWorker) HighlightCount() int {
	return int(w.highlightCount.Load())
}

func (w *implWorker) run(ctx context.Context) {
	defer close(w.done)
	w.logger.Info(ctx, "Highlight worker started")

	for task := range w.queue {
		if task.stop {
			w.logger.Info(ctx, "Highlight worker stopping")
			return
		}
		w.process(ctx, task)
	}
}

// process drives one chunk through extraction, transcription and matching.
// Every failure mode is log-and-skip; the loop itself never dies on a task.
func (w *implWorker) process(ctx context.Context, task Task) {
	chunkPath, err := w.extractor.ExtractAudioWindow(ctx, task.StartSec, task.EndSec)
	if err != nil {
		w.logger.Error(ctx, "Error extracting audio chunk [%.1f, %.1f): %v", task.StartSec, task.EndSec, err)
		return
	}

	w.logger.Info(ctx, "Processing audio chunk: %s", chunkPath)

	text, err := w.transcriber.Transcribe(ctx, chunkPath)
	if err != nil {
		// Transient engine failure degrades to an empty transcript; the
		// chunk still produces an event
		w.logger.Warn(ctx, "Transcription failed for %s: %v", chunkPath, err)
		text = ""
	}
	text = strings.ToLower(text)
	w.logger.Debug(ctx, "Transcript: %q", text)

	isHighlight, reason := highlight.Detect(text)

	w.bus.Publish(events.Event{
		Transcript:  text,
		IsHighlight: isHighlight,
		Reason:      reason,
	})

	if !isHighlight {
		return
	}

	n := int(w.highlightCount.Add(1))
	w.logger.Info(ctx, "Highlight detected (%q)! Extracting clip #%d...", reason, n)

	// The counter is not rolled back on extraction failure, so clip
	// numbers may have gaps relative to the files on disk
	if _, err := w.extractor.ExtractClip(ctx, task.StartSec, task.EndSec, n); err != nil {
		w.logger.Error(ctx, "Error extracting clip #%d: %v", n, err)
	}
}
