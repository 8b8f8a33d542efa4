package app

import (
	"errors"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ScriptPath string // JavaScript file driving the graph
	ListNodes  bool   // print the registered node types instead of running

	LogFormat string
	LogLevel  string
	Timeout   time.Duration // 0 means no limit
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScriptPath == "" && !cfg.ListNodes {
		return nil, errors.New("ScriptPath is a required configuration field and cannot be empty")
	}
	if cfg.Timeout < 0 {
		return nil, errors.New("Timeout cannot be negative")
	}
	return &cfg, nil
}
