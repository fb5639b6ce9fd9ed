package clipwatch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/highlight-flow/internal/logger"
)

type implWatcher struct {
	clipsDir      string
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	notifications chan int
}

// New creates a Watcher over the clips directory. The directory must exist
// before the watch is added.
func New(clipsDir string, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(clipsDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		clipsDir:      clipsDir,
		logger:        log,
		watcher:       watcher,
		notifications: make(chan int, 16),
	}, nil
}

// Run forwards clip-creation events until ctx is cancelled
func (w *implWatcher) Run(ctx context.Context) error {
	w.logger.Info(ctx, "Clip watcher started. Monitoring: %s", w.clipsDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Clip watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create == fsnotify.Create && w.isClipFile(event.Name) {
				w.logger.Debug(ctx, "New clip detected: %s", event.Name)
				// Non-blocking: a disconnected observer must not stall the watch
				select {
				case w.notifications <- 1:
				default:
					w.logger.Warn(ctx, "Notification buffer full, dropping new-clip signal")
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Warn(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) Notifications() <-chan int {
	return w.notifications
}

func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) isClipFile(path string) bool {
	name := filepath.Base(path)
	return strings.HasPrefix(name, "highlight_") && strings.HasSuffix(name, ".mp4")
}
