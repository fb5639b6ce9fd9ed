package transcriber

import "context"

// Transcriber converts an audio file to text
type Transcriber interface {
	// Transcribe runs speech-to-text over the wav file at audioPath
	Transcribe(ctx context.Context, audioPath string) (string, error)
	// Preflight verifies the engine is usable (binary and model present).
	// A failure here means the whole feature is dead and the process
	// should refuse to start.
	Preflight(ctx context.Context) error
}
