package main

import (
	"fmt"
	"io/fs"
	"log"

	"github.com/younwookim/levelkeeper/internal/application/coordinator"
	"github.com/younwookim/levelkeeper/internal/application/game"
	"github.com/younwookim/levelkeeper/internal/application/replay"
	"github.com/younwookim/levelkeeper/internal/application/system"
	"github.com/younwookim/levelkeeper/internal/application/systems"
	"github.com/younwookim/levelkeeper/internal/infrastructure/config"
	"github.com/younwookim/levelkeeper/internal/infrastructure/watch"
)

// hostFunc adapts a function to coordinator.Host
type hostFunc func()

func (f hostFunc) Quit() { f() }

// openConfig picks the config directory on disk when one is given,
// otherwise the configs embedded in the binary.
func openConfig(embedded fs.FS, dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(embedded, "configs")
	if err != nil {
		return nil, fmt.Errorf("config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// loadSettings reads game.yaml and layers env and flag overrides on top
func loadSettings(loader *config.Loader, env config.EnvOverrides, level string) (*config.GameConfig, error) {
	cfg, err := loader.LoadGame()
	if err != nil {
		return nil, err
	}
	env.Apply(cfg)
	if level != "" {
		cfg.StartLevel = level
	}
	if !loader.HasLevel(cfg.StartLevel) {
		return nil, fmt.Errorf("start level %q not found in %s", cfg.StartLevel, loader.LevelsPath())
	}
	return cfg, nil
}

// watchLevels starts a watcher on the level directory when enabled.
// It returns nil when disabled or when configs are embedded. The caller closes it.
func watchLevels(enabled bool, dir string, loader *config.Loader) (*watch.Watcher, error) {
	if !enabled {
		return nil, nil
	}
	if dir == "" {
		log.Printf("-watch ignored: embedded configs cannot change")
		return nil, nil
	}
	w, err := watch.NewWatcher(loader.LevelsPath())
	if err != nil {
		return nil, err
	}
	log.Printf("Watching %s", loader.LevelsPath())
	return w, nil
}

func systemTemplates(cfgs []config.SystemConfig) []systems.Template {
	templates := make([]systems.Template, 0, len(cfgs))
	for _, c := range cfgs {
		templates = append(templates, systems.Template{Name: c.Name, Options: c.Options})
	}
	return templates
}

// session records or replays the control input of every frame
type session interface {
	replay.Controller
	Bind(ctrl replay.Controller)
	EndFrame()
}

// pauseInput is the input the coordinator polls. When recording or replaying,
// session also stands between the menus and the coordinator.
type pauseInput struct {
	input    coordinator.PauseInput
	session  session
	recorder *replay.Recorder
}

// controller returns what the menus should drive
func (p pauseInput) controller(coord replay.Controller) replay.Controller {
	if p.session == nil {
		return coord
	}
	p.session.Bind(coord)
	return p.session
}

// frameHooks returns the hooks that end each frame's control input
func (p pauseInput) frameHooks() []game.FrameHook {
	if p.session == nil {
		return nil
	}
	return []game.FrameHook{p.session}
}

// newPauseInput wires the keyboard, a recording of it, or a replay.
// A replay also decides which level the session starts in.
func newPauseInput(cfg *config.GameConfig, recordFile, replayFile string) (pauseInput, error) {
	if replayFile != "" {
		data, err := replay.LoadReplay(replayFile)
		if err != nil {
			return pauseInput{}, err
		}
		if data.StartLevel != "" {
			cfg.StartLevel = data.StartLevel
		}
		replayer := replay.NewReplayer(*data)
		log.Printf("Replaying %s (%d frames)", replayFile, replayer.TotalFrames())
		return pauseInput{input: replayer, session: replayer}, nil
	}

	key, err := system.ParseKey(cfg.PauseKey)
	if err != nil {
		return pauseInput{}, fmt.Errorf("pause key: %w", err)
	}
	keyboard := system.NewKeyboardInput(key)
	if recordFile == "" {
		return pauseInput{input: keyboard}, nil
	}

	rec := replay.NewRecorder(keyboard, cfg.StartLevel)
	log.Printf("Recording enabled: %s", recordFile)
	return pauseInput{input: rec, session: rec, recorder: rec}, nil
}

// saveRecording saves the current recording to file
func saveRecording(rec *replay.Recorder, filename string) {
	if rec == nil {
		return
	}
	if filename == "" {
		filename = replay.GenerateFilename()
	}
	if err := rec.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, rec.FrameCount())
	}
}
