package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nguyentantai21042004/highlight-flow/internal/clips"
	"github.com/nguyentantai21042004/highlight-flow/internal/clipwatch"
	"github.com/nguyentantai21042004/highlight-flow/internal/config"
	"github.com/nguyentantai21042004/highlight-flow/internal/events"
	"github.com/nguyentantai21042004/highlight-flow/internal/logger"
	"github.com/nguyentantai21042004/highlight-flow/internal/media"
	"github.com/nguyentantai21042004/highlight-flow/internal/pacer"
	"github.com/nguyentantai21042004/highlight-flow/internal/server"
	"github.com/nguyentantai21042004/highlight-flow/internal/transcriber"
	"github.com/nguyentantai21042004/highlight-flow/internal/worker"
	"github.com/nguyentantai21042004/highlight-flow/pkg/executor"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Video Server with Real-Time Highlight Detection")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Source video: %s", cfg.Video.Path)
	log.Info(ctx, "Chunk length: %.0fs", cfg.Detection.ChunkLengthSec)

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Startup self-checks: a missing external tool must fail the process
	// now, not silently disable detection for the whole session
	if err := executor.CheckBinary(cfg.FFmpeg.BinaryPath); err != nil {
		log.Error(ctx, "Startup check failed: %v", err)
		os.Exit(1)
	}
	if err := executor.CheckBinary(cfg.FFmpeg.ProbePath); err != nil {
		log.Error(ctx, "Startup check failed: %v", err)
		os.Exit(1)
	}
	if _, err := os.Stat(cfg.Video.Path); err != nil {
		log.Error(ctx, "Startup check failed: source video: %v", err)
		os.Exit(1)
	}

	// Initialize dependencies
	exec := executor.New()
	store := clips.New(cfg.Paths.Clips, cfg.Paths.Chunks, log)
	prober := media.NewProber(cfg, exec)
	extractor := media.NewExtractor(cfg, store, exec, log)
	bus := events.New(cfg.Detection.EventBufferSize)

	tr := transcriber.New(cfg, exec, log)
	if err := tr.Preflight(ctx); err != nil {
		log.Error(ctx, "Startup check failed: %v", err)
		os.Exit(1)
	}

	// Deterministic starting state: numbering restarts at 1 each run
	store.ClearClips(ctx)
	store.ClearChunks(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Exactly one worker consumes chunk tasks for the life of the process
	w := worker.New(extractor, tr, bus, log, cfg.Detection.TaskQueueSize, store.Count())
	w.Start(ctx)

	watcher, err := clipwatch.New(cfg.Paths.Clips, log)
	if err != nil {
		log.Error(ctx, "Failed to create clip watcher: %v", err)
		os.Exit(1)
	}
	defer watcher.Stop()
	go watcher.Run(ctx)

	p := pacer.New(cfg, prober, w, log)
	srv := server.New(cfg, store, bus, watcher.Notifications(), p, log)

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(ctx); err != nil {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Highlight server is ready!")
	log.Info(ctx, "Web interface: http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	// Graceful shutdown: stop playback/HTTP first, then drain the worker
	log.Info(ctx, "Shutting down gracefully...")
	cancel()
	w.Stop()

	log.Info(ctx, "Highlight server stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Chunks,
		cfg.Paths.Clips,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
