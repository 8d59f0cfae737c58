package config

import (
	"image/color"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadGame(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadGame()
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, 320, cfg.Display.ScreenWidth)
	assert.Equal(t, 240, cfg.Display.ScreenHeight)
	assert.Equal(t, 60, cfg.Display.Framerate)
	assert.Equal(t, "Main", cfg.StartLevel)
	assert.Equal(t, "Escape", cfg.PauseKey)
	assert.Equal(t, 30, cfg.FadeFrames)
	require.Len(t, cfg.Systems, 2)
	assert.Equal(t, "debug-overlay", cfg.Systems[0].Name)
	assert.Equal(t, "224", cfg.Systems[0].Options["y"])
}

func TestLoader_LoadGameDefaults(t *testing.T) {
	fsys := fstest.MapFS{
		"game.yaml": {Data: []byte("version: 1\n")},
	}
	loader := NewFSLoader(fsys, "mem")

	cfg, err := loader.LoadGame()
	require.NoError(t, err)

	assert.Equal(t, DefaultTitle, cfg.Display.Title)
	assert.Equal(t, DefaultScreenWidth, cfg.Display.ScreenWidth)
	assert.Equal(t, DefaultScale, cfg.Display.Scale)
	assert.Equal(t, DefaultFramerate, cfg.Display.Framerate)
	assert.Equal(t, DefaultStartLevel, cfg.StartLevel)
	assert.Equal(t, DefaultPauseKey, cfg.PauseKey)
	assert.Equal(t, DefaultFadeFrames, cfg.FadeFrames)
	assert.Empty(t, cfg.Systems)
}

func TestLoader_LoadGameErrors(t *testing.T) {
	tests := []struct {
		name    string
		fsys    fstest.MapFS
		wantErr string
	}{
		{"missing file", fstest.MapFS{}, "failed to read game.yaml"},
		{"bad yaml", fstest.MapFS{"game.yaml": {Data: []byte("version: [")}}, "failed to parse game.yaml"},
		{"wrong version", fstest.MapFS{"game.yaml": {Data: []byte("version: 2\n")}}, "unsupported game.yaml version: 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFSLoader(tt.fsys, "mem").LoadGame()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoader_LoadLevel(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadLevel("Main")
	require.NoError(t, err)

	assert.Equal(t, "Main", cfg.Name)
	assert.Equal(t, "Main Hall", cfg.Title)
	assert.Equal(t, "#1a1a2e", cfg.Background)
	require.Len(t, cfg.Props, 4)
	assert.Equal(t, 60.0, cfg.Props[1].VX)
	assert.Equal(t, "teal", cfg.Props[3].Color)
}

func TestLoader_LoadLevelNameFallback(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/Bare.yaml": {Data: []byte("title: Bare\n")},
	}

	cfg, err := NewFSLoader(fsys, "mem").LoadLevel("Bare")
	require.NoError(t, err)
	assert.Equal(t, "Bare", cfg.Name)
}

func TestLoader_LoadLevelErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/Broken.yaml": {Data: []byte("props: {")},
	}
	loader := NewFSLoader(fsys, "mem")

	_, err := loader.LoadLevel("Missing")
	assert.ErrorContains(t, err, "failed to read level Missing")

	_, err = loader.LoadLevel("Broken")
	assert.ErrorContains(t, err, "failed to parse level Broken")

	_, err = loader.LoadLevel("../game")
	assert.ErrorContains(t, err, "invalid level name")

	_, err = loader.LoadLevel("")
	assert.ErrorContains(t, err, "invalid level name")
}

func TestLoader_HasLevelAndLevels(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/Main.yaml":  {Data: []byte("name: Main\n")},
		"levels/Arena.yaml": {Data: []byte("name: Arena\n")},
		"levels/notes.txt":  {Data: []byte("ignored")},
	}
	loader := NewFSLoader(fsys, "mem")

	assert.True(t, loader.HasLevel("Main"))
	assert.False(t, loader.HasLevel("Nowhere"))
	assert.False(t, loader.HasLevel("a/b"))

	names, err := loader.Levels()
	require.NoError(t, err)
	assert.Equal(t, []string{"Arena", "Main"}, names)
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "Main", LevelName("configs/levels/Main.yaml"))
	assert.Equal(t, "Arena", LevelName(`configs\levels\Arena.yaml`))
	assert.True(t, IsLevelFile("levels/Main.yaml"))
	assert.False(t, IsLevelFile("levels/Main.yaml~"))
}

func TestLoader_Paths(t *testing.T) {
	loader := NewLoader("configs")
	assert.Equal(t, "configs", loader.BasePath())
	assert.Equal(t, "configs/levels", loader.LevelsPath())
}

func TestParseColor(t *testing.T) {
	fallback := color.RGBA{1, 2, 3, 255}

	c, err := ParseColor("#1a1a2e", fallback)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{26, 26, 46, 255}, c)

	c, err = ParseColor("", fallback)
	require.NoError(t, err)
	assert.Equal(t, fallback, c)

	c, err = ParseColor("not-a-color", fallback)
	assert.Error(t, err)
	assert.Equal(t, fallback, c)
}
