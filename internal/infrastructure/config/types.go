package config

// GameConfig is the root config for game.yaml
type GameConfig struct {
	Version    int            `yaml:"version"`
	Display    DisplayConfig  `yaml:"display"`
	StartLevel string         `yaml:"startLevel"`
	PauseKey   string         `yaml:"pauseKey"`
	FadeFrames int            `yaml:"fadeFrames"`
	Systems    []SystemConfig `yaml:"systems"`
}

type DisplayConfig struct {
	Title        string `yaml:"title"`
	ScreenWidth  int    `yaml:"screenWidth"`
	ScreenHeight int    `yaml:"screenHeight"`
	Scale        int    `yaml:"scale"`
	Framerate    int    `yaml:"framerate"`
}

// SystemConfig names a system template and its options
type SystemConfig struct {
	Name    string            `yaml:"name"`
	Options map[string]string `yaml:"options"`
}

// LevelConfig is the root config for levels/<name>.yaml
type LevelConfig struct {
	Name       string       `yaml:"name"`
	Title      string       `yaml:"title"`
	Background string       `yaml:"background"` // "#rrggbb"
	Props      []PropConfig `yaml:"props"`
}

// PropConfig is a moving rectangle drawn by a level
type PropConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	W     float64 `yaml:"w"`
	H     float64 `yaml:"h"`
	VX    float64 `yaml:"vx"` // pixels per second
	VY    float64 `yaml:"vy"`
	Color string  `yaml:"color"`
}

// Defaults applied by LoadGame when a field is left empty
const (
	DefaultScreenWidth  = 320
	DefaultScreenHeight = 240
	DefaultScale        = 2
	DefaultFramerate    = 60
	DefaultStartLevel   = "Main"
	DefaultPauseKey     = "Escape"
	DefaultFadeFrames   = 30
	DefaultTitle        = "levelkeeper"
)

func (c *GameConfig) applyDefaults() {
	if c.Display.Title == "" {
		c.Display.Title = DefaultTitle
	}
	if c.Display.ScreenWidth == 0 {
		c.Display.ScreenWidth = DefaultScreenWidth
	}
	if c.Display.ScreenHeight == 0 {
		c.Display.ScreenHeight = DefaultScreenHeight
	}
	if c.Display.Scale == 0 {
		c.Display.Scale = DefaultScale
	}
	if c.Display.Framerate == 0 {
		c.Display.Framerate = DefaultFramerate
	}
	if c.StartLevel == "" {
		c.StartLevel = DefaultStartLevel
	}
	if c.PauseKey == "" {
		c.PauseKey = DefaultPauseKey
	}
	if c.FadeFrames == 0 {
		c.FadeFrames = DefaultFadeFrames
	}
}
