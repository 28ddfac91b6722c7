package app

import (
	"errors"

	"github.com/vk/loki/internal/toolchain"
)

// Config holds what an App needs beyond the environment.
type Config struct {
	// WorkDir is where the manifest search starts.
	WorkDir string
	// Runner overrides process spawning; nil runs real tools.
	Runner toolchain.Runner
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.WorkDir == "" {
		return nil, errors.New("WorkDir is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
