package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvOverrides are settings that can be overridden from the environment
type EnvOverrides struct {
	ConfigDir  string `env:"LEVELKEEPER_CONFIG_DIR"`
	StartLevel string `env:"LEVELKEEPER_START_LEVEL"`
	PauseKey   string `env:"LEVELKEEPER_PAUSE_KEY"`
	FadeFrames int    `env:"LEVELKEEPER_FADE_FRAMES"`
}

// ParseEnv loads overrides from environment variables
func ParseEnv() (EnvOverrides, error) {
	var o EnvOverrides
	if err := env.Parse(&o); err != nil {
		return EnvOverrides{}, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}

// Apply copies every set override into cfg
func (o EnvOverrides) Apply(cfg *GameConfig) {
	if o.StartLevel != "" {
		cfg.StartLevel = o.StartLevel
	}
	if o.PauseKey != "" {
		cfg.PauseKey = o.PauseKey
	}
	if o.FadeFrames > 0 {
		cfg.FadeFrames = o.FadeFrames
	}
}
