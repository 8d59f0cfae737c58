// Package game provides the main game loop that hosts the coordinator and
// the scenes of every loaded level.
package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/levelkeeper/internal/application/coordinator"
	"github.com/younwookim/levelkeeper/internal/application/scene"
	"github.com/younwookim/levelkeeper/internal/application/scene/level"
	"github.com/younwookim/levelkeeper/internal/application/timescale"
	"github.com/younwookim/levelkeeper/internal/infrastructure/config"
	"github.com/younwookim/levelkeeper/internal/infrastructure/levels"
)

// LevelService completes level operations on the game loop. *levels.Loader satisfies it.
type LevelService interface {
	Pump() int
	SetHooks(h levels.Hooks)
	IsLoaded(name string) bool
}

// Coordinator is the part of *coordinator.Coordinator the loop drives.
type Coordinator interface {
	Update()
	Reload(name string) error
	Clock() *timescale.Clock
}

// Layer is updated and drawn once per frame, above the scenes.
type Layer interface {
	Update()
	Draw(screen *ebiten.Image)
}

// Systems runs the spawned systems. *systems.Spawner satisfies it.
type Systems interface {
	Update(dt float64)
	Draw(screen *ebiten.Image)
}

// Changes reports levels whose files were edited. *watch.Watcher satisfies it.
type Changes interface {
	Drain() []string
	DrainErrors() []error
}

// FrameHook closes the control input of a frame, after the menus have run.
// *replay.Recorder and *replay.Replayer satisfy it.
type FrameHook interface {
	EndFrame()
}

// SceneFactory builds the scene presenting a loaded level.
type SceneFactory func(cfg *config.LevelConfig) (scene.Scene, error)

// Options configures a Game.
type Options struct {
	Levels      LevelService
	Coordinator Coordinator
	Systems     Systems

	// Layers are drawn over the systems in order, so the last one ends up on top.
	Layers []Layer

	// Changes is optional. Edited levels that are loaded get reloaded.
	Changes Changes

	FrameHooks []FrameHook

	// NewScene defaults to a level scene sized to the screen.
	NewScene SceneFactory

	ScreenWidth  int
	ScreenHeight int
	Framerate    int
	Logger       *log.Logger
}

// Game implements ebiten.Game.
type Game struct {
	levels  LevelService
	coord   Coordinator
	systems Systems
	layers  []Layer
	hooks   []FrameHook
	changes Changes

	newScene SceneFactory
	scenes   map[string]scene.Scene
	order    []string

	screenW int
	screenH int
	dt      float64
	quit    bool
	logger  *log.Logger
}

var _ coordinator.Host = (*Game)(nil)

// New creates a Game and installs its hooks on the level service.
func New(opts Options) *Game {
	g := &Game{
		levels:   opts.Levels,
		coord:    opts.Coordinator,
		systems:  opts.Systems,
		layers:   opts.Layers,
		hooks:    opts.FrameHooks,
		changes:  opts.Changes,
		newScene: opts.NewScene,
		scenes:   make(map[string]scene.Scene),
		screenW:  opts.ScreenWidth,
		screenH:  opts.ScreenHeight,
		dt:       1.0 / 60.0, // Default to 60 FPS
		logger:   opts.Logger,
	}
	if opts.Framerate > 0 {
		g.dt = 1.0 / float64(opts.Framerate)
	}
	if g.logger == nil {
		g.logger = log.Default()
	}
	if g.newScene == nil {
		g.newScene = func(cfg *config.LevelConfig) (scene.Scene, error) {
			return level.New(cfg, g.screenW, g.screenH)
		}
	}
	g.levels.SetHooks(levels.Hooks{
		Loaded:   g.onLevelLoaded,
		Unloaded: g.onLevelUnloaded,
	})
	return g
}

// Quit stops the game loop at the end of the current frame.
func (g *Game) Quit() {
	g.quit = true
}

// Quitting reports whether Quit was called.
func (g *Game) Quitting() bool {
	return g.quit
}

// Scenes returns the names of the loaded scenes in load order.
func (g *Game) Scenes() []string {
	return append([]string(nil), g.order...)
}

// Scene returns the scene presenting the named level.
func (g *Game) Scene(name string) (scene.Scene, bool) {
	s, ok := g.scenes[name]
	return s, ok
}

// Update runs one frame.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	// Completions land first so everything below sees this frame's state
	g.levels.Pump()
	g.reloadChanged()

	g.coord.Update()
	for _, l := range g.layers {
		l.Update()
	}
	for _, h := range g.hooks {
		h.EndFrame()
	}

	dt := g.coord.Clock().Scaled(g.dt)
	if g.systems != nil {
		g.systems.Update(dt)
	}
	for _, name := range g.order {
		if err := g.scenes[name].Update(dt); err != nil {
			return err
		}
	}

	if g.quit {
		return ebiten.Termination
	}
	return nil
}

// Draw renders scenes, then systems, then layers.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	for _, name := range g.order {
		g.scenes[name].Draw(screen)
	}
	if g.systems != nil {
		g.systems.Draw(screen)
	}
	for _, l := range g.layers {
		l.Draw(screen)
	}
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets the delta time used for updates.
// Useful for testing or custom frame rates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

func (g *Game) reloadChanged() {
	if g.changes == nil {
		return
	}
	for _, err := range g.changes.DrainErrors() {
		g.logger.Printf("[game] watch: %v", err)
	}
	for _, name := range g.changes.Drain() {
		if !g.levels.IsLoaded(name) {
			continue
		}
		g.logger.Printf("[game] level %s changed, reloading", name)
		if err := g.coord.Reload(name); err != nil {
			g.logger.Printf("[game] reload %s: %v", name, err)
		}
	}
}

func (g *Game) onLevelLoaded(cfg *config.LevelConfig) {
	if old, ok := g.scenes[cfg.Name]; ok {
		old.OnExit()
		g.removeScene(cfg.Name)
	}

	s, err := g.newScene(cfg)
	if err != nil {
		g.logger.Printf("[game] level %s has no scene: %v", cfg.Name, err)
		return
	}
	g.scenes[cfg.Name] = s
	g.order = append(g.order, cfg.Name)
	s.OnEnter()
}

func (g *Game) onLevelUnloaded(name string) {
	s, ok := g.scenes[name]
	if !ok {
		return
	}
	s.OnExit()
	g.removeScene(name)
}

func (g *Game) removeScene(name string) {
	delete(g.scenes, name)
	for i, n := range g.order {
		if n == name {
			g.order = append(g.order[:i:i], g.order[i+1:]...)
			return
		}
	}
}
