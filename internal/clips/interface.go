package clips

import "context"

// Clip describes one persisted highlight clip
type Clip struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Filename string `json:"filename"`
}

// Store manages the on-disk set of highlight clips and audio chunks
type Store interface {
	// Count returns the number of highlight clips currently on disk
	Count() int
	// List enumerates clips on disk sorted by name
	List() ([]Clip, error)
	// ClipPath resolves a clip name to its on-disk path.
	// Returns ErrNotFound if no such clip exists.
	ClipPath(name string) (string, error)
	// NextClipPath returns the on-disk path for clip number n
	NextClipPath(n int) string
	// ChunkPath returns the temp wav path for the chunk starting at startSec
	ChunkPath(startSec float64) string
	// ClearClips removes all persisted highlight clips, best-effort
	ClearClips(ctx context.Context)
	// ClearChunks removes all temp audio chunks, best-effort
	ClearChunks(ctx context.Context)
}
