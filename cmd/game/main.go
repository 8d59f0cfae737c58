package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/levelkeeper/internal/application/coordinator"
	"github.com/younwookim/levelkeeper/internal/application/fade"
	"github.com/younwookim/levelkeeper/internal/application/game"
	"github.com/younwookim/levelkeeper/internal/application/menu"
	"github.com/younwookim/levelkeeper/internal/application/systems"
	"github.com/younwookim/levelkeeper/internal/infrastructure/config"
	"github.com/younwookim/levelkeeper/internal/infrastructure/levels"
)

type flags struct {
	config string
	level  string
	record string
	replay string
	watch  bool
}

func main() {
	// Parse command line flags
	var f flags
	flag.StringVar(&f.config, "config", "", "Read configs from this directory instead of the embedded ones")
	flag.StringVar(&f.level, "level", "", "Level to start in (overrides startLevel)")
	flag.StringVar(&f.record, "record", "", "Record control input to file (e.g., -record replay.json)")
	flag.StringVar(&f.replay, "replay", "", "Replay control input from file")
	flag.BoolVar(&f.watch, "watch", false, "Reload loaded levels when their files change (needs a config directory)")
	flag.Parse()

	if err := run(f); err != nil {
		log.Fatal(err)
	}
}

// run wires the game and blocks until the window closes or Quit is chosen
func run(f flags) error {
	env, err := config.ParseEnv()
	if err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	dir := f.config
	if dir == "" {
		dir = env.ConfigDir
	}

	loader, err := openConfig(configFS, dir)
	if err != nil {
		return fmt.Errorf("failed to open configs: %w", err)
	}
	cfg, err := loadSettings(loader, env, f.level)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	input, err := newPauseInput(cfg, f.record, f.replay)
	if err != nil {
		return fmt.Errorf("failed to set up input: %w", err)
	}

	logger := log.Default()
	levelLoader := levels.NewLoader(loader, logger)
	fader := fade.New(cfg.FadeFrames)
	registry := systems.NewRegistry()
	spawner := systems.NewSpawner(registry, logger)

	var g *game.Game
	coord := coordinator.New(coordinator.Options{
		Loader:     levelLoader,
		Fader:      fader,
		Input:      input.input,
		Spawner:    spawner,
		Host:       hostFunc(func() { g.Quit() }),
		Systems:    systemTemplates(cfg.Systems),
		StartLevel: cfg.StartLevel,
		Logger:     logger,
	})
	systems.RegisterBuiltins(registry, coord, logger)

	menus := menu.NewManager(input.controller(coord), fader)
	fader.Subscribe(menus)
	coord.AddStateListener(menus)

	opts := game.Options{
		Levels:       levelLoader,
		Coordinator:  coord,
		Systems:      spawner,
		Layers:       []game.Layer{fader, menus},
		FrameHooks:   input.frameHooks(),
		ScreenWidth:  cfg.Display.ScreenWidth,
		ScreenHeight: cfg.Display.ScreenHeight,
		Framerate:    cfg.Display.Framerate,
		Logger:       logger,
	}

	w, err := watchLevels(f.watch, dir, loader)
	if err != nil {
		return fmt.Errorf("failed to watch levels: %w", err)
	}
	if w != nil {
		defer func() { _ = w.Close() }()
		opts.Changes = w
	}

	g = game.New(opts)
	coord.Enable()

	// Set up ebiten
	ebiten.SetWindowSize(cfg.Display.ScreenWidth*cfg.Display.Scale,
		cfg.Display.ScreenHeight*cfg.Display.Scale)
	ebiten.SetWindowTitle(cfg.Display.Title)
	ebiten.SetTPS(cfg.Display.Framerate)

	// Run game
	runErr := ebiten.RunGame(g)

	coord.Destroy()
	levelLoader.Wait()
	saveRecording(input.recorder, f.record)

	return runErr
}
