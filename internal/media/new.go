package media

import (
	"github.com/nguyentantai21042004/highlight-flow/internal/clips"
	"github.com/nguyentantai21042004/highlight-flow/internal/config"
	"github.com/nguyentantai21042004/highlight-flow/internal/logger"
	"github.com/nguyentantai21042004/highlight-flow/pkg/executor"
)

type implExtractor struct {
	cfg      *config.Config
	store    clips.Store
	executor executor.Executor
	logger   logger.Logger
}

// NewExtractor creates an Extractor shelling out to the configured ffmpeg binary
func NewExtractor(cfg *config.Config, store clips.Store, exec executor.Executor, log logger.Logger) Extractor {
	return &implExtractor{
		cfg:      cfg,
		store:    store,
		executor: exec,
		logger:   log,
	}
}

type implProber struct {
	cfg      *config.Config
	executor executor.Executor
}

// NewProber creates a Prober shelling out to the configured ffprobe binary
func NewProber(cfg *config.Config, exec executor.Executor) Prober {
	return &implProber{
		cfg:      cfg,
		executor: exec,
	}
}
