package clips

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/highlight-flow/internal/logger"
)

// ErrNotFound is returned when a clip name does not resolve to a file on disk
var ErrNotFound = errors.New("clip not found")

const clipPrefix = "highlight_"

type implStore struct {
	clipsDir  string
	chunksDir string
	logger    logger.Logger
}

// New creates a Store over the given clip and chunk directories
func New(clipsDir, chunksDir string, log logger.Logger) Store {
	return &implStore{
		clipsDir:  clipsDir,
		chunksDir: chunksDir,
		logger:    log,
	}
}

func (s *implStore) Count() int {
	matches, err := filepath.Glob(filepath.Join(s.clipsDir, clipPrefix+"*.mp4"))
	if err != nil {
		return 0
	}
	return len(matches)
}

func (s *implStore) List() ([]Clip, error) {
	matches, err := filepath.Glob(filepath.Join(s.clipsDir, clipPrefix+"*.mp4"))
	if err != nil {
		return nil, fmt.Errorf("list clips: %w", err)
	}
	sort.Strings(matches)

	clips := make([]Clip, 0, len(matches))
	for _, file := range matches {
		name := filepath.Base(file)
		clips = append(clips, Clip{
			Name:     name,
			Path:     "/highlight_clip/" + name,
			Filename: file,
		})
	}
	return clips, nil
}

func (s *implStore) ClipPath(name string) (string, error) {
	// Reject anything that could escape the clips directory
	if name != filepath.Base(name) || strings.Contains(name, "..") {
		return "", ErrNotFound
	}

	path := filepath.Join(s.clipsDir, name)
	if _, err := os.Stat(path); err != nil {
		return "", ErrNotFound
	}
	return path, nil
}

func (s *implStore) NextClipPath(n int) string {
	return filepath.Join(s.clipsDir, fmt.Sprintf("%s%03d.mp4", clipPrefix, n))
}

func (s *implStore) ChunkPath(startSec float64) string {
	return filepath.Join(s.chunksDir, fmt.Sprintf("chunk_%04d.wav", int(startSec)))
}

func (s *implStore) ClearClips(ctx context.Context) {
	s.clearGlob(ctx, filepath.Join(s.clipsDir, clipPrefix+"*.mp4"), "highlight clips")
}

func (s *implStore) ClearChunks(ctx context.Context) {
	s.clearGlob(ctx, filepath.Join(s.chunksDir, "*.wav"), "audio chunks")
}

// clearGlob removes every file matching the pattern. Removal is best-effort:
// a file that cannot be deleted is logged and skipped.
func (s *implStore) clearGlob(ctx context.Context, pattern, what string) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		s.logger.Warn(ctx, "Failed to enumerate %s: %v", what, err)
		return
	}
	if len(matches) == 0 {
		s.logger.Debug(ctx, "No existing %s to clear", what)
		return
	}

	s.logger.Info(ctx, "Clearing %d existing %s...", len(matches), what)
	for _, file := range matches {
		if err := os.Remove(file); err != nil {
			s.logger.Warn(ctx, "Failed to remove %s: %v", file, err)
			continue
		}
		s.logger.Debug(ctx, "Removed: %s", file)
	}
}
