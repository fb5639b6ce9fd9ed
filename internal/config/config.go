package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Video     VideoConfig     `yaml:"video"`
	Whisper   WhisperConfig   `yaml:"whisper"`
	FFmpeg    FFmpegConfig    `yaml:"ffmpeg"`
	Paths     PathsConfig     `yaml:"paths"`
	Detection DetectionConfig `yaml:"detection"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	AllowOrigin string `yaml:"allow_origin"`
}

type VideoConfig struct {
	Path string `yaml:"path"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ProbePath  string `yaml:"probe_path"`
}

type PathsConfig struct {
	Chunks string `yaml:"chunks"`
	Clips  string `yaml:"clips"`
}

type DetectionConfig struct {
	ChunkLengthSec  float64 `yaml:"chunk_length_sec"`
	ClipPaddingSec  float64 `yaml:"clip_padding_sec"`
	MinClipSec      float64 `yaml:"min_clip_sec"`
	EventBufferSize int     `yaml:"event_buffer_size"`
	TaskQueueSize   int     `yaml:"task_queue_size"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML configuration file and applies validation and defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Video.Path == "" {
		return fmt.Errorf("video.path is required")
	}
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}

	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.AllowOrigin == "" {
		c.Server.AllowOrigin = "http://localhost:3000"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.ProbePath == "" {
		c.FFmpeg.ProbePath = "ffprobe"
	}
	if c.Paths.Chunks == "" {
		c.Paths.Chunks = "audio_chunks"
	}
	if c.Paths.Clips == "" {
		c.Paths.Clips = "highlight_clips"
	}
	if c.Detection.ChunkLengthSec == 0 {
		c.Detection.ChunkLengthSec = 10
	}
	if c.Detection.ClipPaddingSec == 0 {
		c.Detection.ClipPaddingSec = 2
	}
	if c.Detection.MinClipSec == 0 {
		c.Detection.MinClipSec = 3
	}
	if c.Detection.EventBufferSize == 0 {
		c.Detection.EventBufferSize = 256
	}
	if c.Detection.TaskQueueSize == 0 {
		c.Detection.TaskQueueSize = 1024
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
