package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/highlight-flow/internal/config"
	"github.com/nguyentantai21042004/highlight-flow/internal/logger"
	"github.com/nguyentantai21042004/highlight-flow/pkg/executor"
)

type implTranscriber struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Transcriber shelling out to the whisper CLI. The model file
// stays resident in the CLI's cache between calls, so per-chunk invocations
// only pay the inference cost.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Transcriber {
	return &implTranscriber{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}

// Preflight checks the whisper binary and model exist before the pipeline
// starts, so a broken install fails the process instead of silently
// disabling detection for the whole session
func (t *implTranscriber) Preflight(ctx context.Context) error {
	if err := executor.CheckBinary(t.cfg.Whisper.BinaryPath); err != nil {
		return fmt.Errorf("whisper preflight: %w", err)
	}
	if _, err := os.Stat(t.cfg.Whisper.ModelPath); err != nil {
		return fmt.Errorf("whisper preflight: model not found at %q: %w", t.cfg.Whisper.ModelPath, err)
	}
	return nil
}

// Transcribe runs whisper over the audio chunk and returns the plain text.
// Whisper writes <prefix>.txt; the file is read back and removed.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	args := []string{
		"-m", t.cfg.Whisper.ModelPath,
		"-f", audioPath,
		"-otxt",
		"-l", t.cfg.Whisper.Language,
		"-t", strconv.Itoa(t.cfg.Whisper.Threads),
		"--output-file", outputPrefix,
	}

	if _, err := t.executor.Execute(ctx, t.cfg.Whisper.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	txtPath := outputPrefix + ".txt"
	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read transcript %s: %w", txtPath, err)
	}
	if err := os.Remove(txtPath); err != nil {
		t.logger.Warn(ctx, "Failed to cleanup transcript file %s: %v", txtPath, err)
	}

	return strings.TrimSpace(string(data)), nil
}
