// Package level presents a loaded level definition as a Scene.
package level

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/levelkeeper/internal/application/scene"
	"github.com/younwookim/levelkeeper/internal/infrastructure/config"
)

// Colors used when a level leaves one out
var (
	colorBG   = color.RGBA{26, 26, 46, 255}
	colorProp = color.RGBA{200, 200, 200, 255}
)

// Prop is a rectangle that drifts and bounces off the screen edges
type Prop struct {
	X, Y   float64
	W, H   float64
	VX, VY float64
	Color  color.RGBA
}

// Scene draws a level's background and props
type Scene struct {
	name       string
	title      string
	background color.RGBA
	props      []Prop
	screenW    float64
	screenH    float64
	active     bool
}

var _ scene.Scene = (*Scene)(nil)

// New builds a scene for cfg on a screen of the given size
func New(cfg *config.LevelConfig, screenW, screenH int) (*Scene, error) {
	bg, err := config.ParseColor(cfg.Background, colorBG)
	if err != nil {
		return nil, fmt.Errorf("level %s background: %w", cfg.Name, err)
	}

	props := make([]Prop, 0, len(cfg.Props))
	for i, p := range cfg.Props {
		c, err := config.ParseColor(p.Color, colorProp)
		if err != nil {
			return nil, fmt.Errorf("level %s prop %d: %w", cfg.Name, i, err)
		}
		props = append(props, Prop{X: p.X, Y: p.Y, W: p.W, H: p.H, VX: p.VX, VY: p.VY, Color: c})
	}

	title := cfg.Title
	if title == "" {
		title = cfg.Name
	}

	return &Scene{
		name:       cfg.Name,
		title:      title,
		background: bg,
		props:      props,
		screenW:    float64(screenW),
		screenH:    float64(screenH),
	}, nil
}

// Name returns the level name
func (s *Scene) Name() string {
	return s.name
}

// Props returns the current prop positions
func (s *Scene) Props() []Prop {
	return s.props
}

// Active reports whether the scene is between OnEnter and OnExit
func (s *Scene) Active() bool {
	return s.active
}

func (s *Scene) OnEnter() {
	s.active = true
}

func (s *Scene) OnExit() {
	s.active = false
}

// Update moves every prop by its velocity
func (s *Scene) Update(dt float64) error {
	if dt == 0 {
		return nil
	}
	for i := range s.props {
		p := &s.props[i]
		p.X, p.VX = bounce(p.X+p.VX*dt, p.VX, p.W, s.screenW)
		p.Y, p.VY = bounce(p.Y+p.VY*dt, p.VY, p.H, s.screenH)
	}
	return nil
}

// bounce reflects pos back inside [0, limit-size] and flips v when it hits an edge
func bounce(pos, v, size, limit float64) (float64, float64) {
	maxPos := limit - size
	if maxPos <= 0 {
		return 0, v
	}
	if pos < 0 {
		return -pos, -v
	}
	if pos > maxPos {
		return 2*maxPos - pos, -v
	}
	return pos, v
}

// Draw renders the background, props and title
func (s *Scene) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, 0, 0, float32(s.screenW), float32(s.screenH), s.background, false)

	for _, p := range s.props {
		vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), p.Color, false)
	}

	ebitenutil.DebugPrintAt(screen, s.title, 4, 4)
}
