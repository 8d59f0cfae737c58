// Package levels is the asynchronous scene-loading service.
//
// Level files are read and parsed on background goroutines. Finished
// operations are queued and only completed by Pump, which the game loop calls
// once per frame, so completion callbacks never run concurrently with the
// rest of the game.
package levels

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/younwookim/levelkeeper/internal/application/coordinator"
	"github.com/younwookim/levelkeeper/internal/infrastructure/config"
)

var (
	ErrUnknownLevel  = errors.New("unknown level")
	ErrAlreadyLoaded = errors.New("level already loaded")
	ErrNotLoaded     = errors.New("level not loaded")
)

// Source reads level definitions. *config.Loader satisfies it.
type Source interface {
	HasLevel(name string) bool
	LoadLevel(name string) (*config.LevelConfig, error)
}

// Hooks are called from Pump when levels enter or leave the loaded set,
// before the operation's completion callbacks run.
type Hooks struct {
	Loaded   func(cfg *config.LevelConfig)
	Unloaded func(name string)
}

// Loader loads levels additively.
type Loader struct {
	source Source
	logger *log.Logger
	hooks  Hooks

	loaded  map[string]*config.LevelConfig
	loading map[string]*Operation
	ready   []*Operation

	mu       sync.Mutex
	finished []*Operation
	wg       sync.WaitGroup
}

var _ coordinator.SceneLoader = (*Loader)(nil)

// NewLoader creates a loader reading from source.
func NewLoader(source Source, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{
		source:  source,
		logger:  logger,
		loaded:  make(map[string]*config.LevelConfig),
		loading: make(map[string]*Operation),
	}
}

// SetHooks replaces the load/unload hooks.
func (l *Loader) SetHooks(h Hooks) {
	l.hooks = h
}

// LoadAsync starts loading the named level in the background.
func (l *Loader) LoadAsync(name string) (coordinator.Operation, error) {
	if !l.source.HasLevel(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLevel, name)
	}
	if _, ok := l.loaded[name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyLoaded, name)
	}
	if _, ok := l.loading[name]; ok {
		return nil, fmt.Errorf("%w: %s is still loading", ErrAlreadyLoaded, name)
	}

	op := newOperation(KindLoad, name)
	l.loading[name] = op

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		cfg, err := l.source.LoadLevel(name)

		l.mu.Lock()
		op.cfg, op.err = cfg, err
		l.finished = append(l.finished, op)
		l.mu.Unlock()
	}()

	return op, nil
}

// UnloadAsync removes the named level. It leaves the loaded set at once and
// completes on the next Pump.
func (l *Loader) UnloadAsync(name string) (coordinator.Operation, error) {
	if _, ok := l.loaded[name]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotLoaded, name)
	}
	delete(l.loaded, name)

	op := newOperation(KindUnload, name)
	l.ready = append(l.ready, op)
	return op, nil
}

// Pump completes every finished operation. Unloads are delivered before
// loads, each group in the order it finished.
func (l *Loader) Pump() int {
	ready := l.ready
	l.ready = nil

	l.mu.Lock()
	finished := l.finished
	l.finished = nil
	l.mu.Unlock()

	for _, op := range ready {
		if l.hooks.Unloaded != nil {
			l.hooks.Unloaded(op.level)
		}
		op.complete()
	}

	for _, op := range finished {
		delete(l.loading, op.level)
		if op.err != nil {
			l.logger.Printf("[levels] failed to load %s: %v", op.level, op.err)
		} else {
			l.loaded[op.level] = op.cfg
			if l.hooks.Loaded != nil {
				l.hooks.Loaded(op.cfg)
			}
		}
		op.complete()
	}

	return len(ready) + len(finished)
}

// Wait blocks until every background read has finished. Their operations
// still need a Pump to complete.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Loaded returns the loaded level names, sorted.
func (l *Loader) Loaded() []string {
	names := make([]string, 0, len(l.loaded))
	for name := range l.loaded {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsLoaded reports whether name is in the loaded set.
func (l *Loader) IsLoaded(name string) bool {
	_, ok := l.loaded[name]
	return ok
}

// Level returns a loaded level's definition.
func (l *Loader) Level(name string) (*config.LevelConfig, bool) {
	cfg, ok := l.loaded[name]
	return cfg, ok
}

// Loading returns the number of loads not yet completed.
func (l *Loader) Loading() int {
	return len(l.loading)
}
