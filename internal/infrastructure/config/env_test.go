package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("LEVELKEEPER_CONFIG_DIR", "/tmp/configs")
	t.Setenv("LEVELKEEPER_START_LEVEL", "Arena")
	t.Setenv("LEVELKEEPER_PAUSE_KEY", "P")
	t.Setenv("LEVELKEEPER_FADE_FRAMES", "12")

	o, err := ParseEnv()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/configs", o.ConfigDir)
	assert.Equal(t, "Arena", o.StartLevel)
	assert.Equal(t, "P", o.PauseKey)
	assert.Equal(t, 12, o.FadeFrames)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("LEVELKEEPER_FADE_FRAMES", "soon")

	_, err := ParseEnv()
	assert.ErrorContains(t, err, "parse env:")
}

func TestEnvOverrides_Apply(t *testing.T) {
	cfg := &GameConfig{StartLevel: "Main", PauseKey: "Escape", FadeFrames: 30}

	EnvOverrides{}.Apply(cfg)
	assert.Equal(t, &GameConfig{StartLevel: "Main", PauseKey: "Escape", FadeFrames: 30}, cfg)

	EnvOverrides{StartLevel: "Arena", PauseKey: "P", FadeFrames: 5}.Apply(cfg)
	assert.Equal(t, "Arena", cfg.StartLevel)
	assert.Equal(t, "P", cfg.PauseKey)
	assert.Equal(t, 5, cfg.FadeFrames)
}
