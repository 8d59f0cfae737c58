// Package coordinator drives level loading and the Pregame/Running/Paused
// state machine.
//
// The coordinator is not safe for concurrent use. Every method, including
// operation completion callbacks, must run on the goroutine that drives the
// game loop.
package coordinator

import (
	"fmt"
	"log"

	"github.com/younwookim/levelkeeper/internal/application/state"
	"github.com/younwookim/levelkeeper/internal/application/systems"
	"github.com/younwookim/levelkeeper/internal/application/timescale"
)

// DefaultStartLevel is the level Start loads when none is configured.
const DefaultStartLevel = "Main"

// Options holds the collaborators of a Coordinator.
type Options struct {
	Loader  SceneLoader
	Fader   FadeNotifier
	Input   PauseInput
	Spawner Spawner
	Host    Host

	// Clock is the shared time scale. The coordinator is its only writer.
	Clock *timescale.Clock

	// Systems are instantiated on the first Enable.
	Systems []systems.Template

	StartLevel string
	Logger     *log.Logger
}

// Coordinator tracks pending level loads and the game state.
type Coordinator struct {
	loader  SceneLoader
	fader   FadeNotifier
	input   PauseInput
	spawner Spawner
	host    Host
	clock   *timescale.Clock
	logger  *log.Logger

	templates    []systems.Template
	instances    []*systems.Instance
	instantiated bool
	startLevel   string

	state        state.GameState
	pending      map[Operation]struct{}
	currentLevel string
	hasLevel     bool

	listeners  []StateListener
	subscribed bool
}

// New creates a coordinator in the Pregame state.
func New(opts Options) *Coordinator {
	c := &Coordinator{
		loader:     opts.Loader,
		fader:      opts.Fader,
		input:      opts.Input,
		spawner:    opts.Spawner,
		host:       opts.Host,
		clock:      opts.Clock,
		logger:     opts.Logger,
		templates:  opts.Systems,
		startLevel: opts.StartLevel,
		state:      state.StatePregame,
		pending:    make(map[Operation]struct{}),
	}
	if c.clock == nil {
		c.clock = timescale.New()
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	if c.startLevel == "" {
		c.startLevel = DefaultStartLevel
	}
	return c
}

// State returns the current game state.
func (c *Coordinator) State() state.GameState {
	return c.state
}

// CurrentLevel returns the most recently loaded level, if any.
func (c *Coordinator) CurrentLevel() (string, bool) {
	return c.currentLevel, c.hasLevel
}

// PendingLoads returns the number of loads still in flight.
func (c *Coordinator) PendingLoads() int {
	return len(c.pending)
}

// Clock returns the time scale the coordinator writes.
func (c *Coordinator) Clock() *timescale.Clock {
	return c.clock
}

// AddStateListener registers l for state change notifications.
func (c *Coordinator) AddStateListener(l StateListener) {
	for _, existing := range c.listeners {
		if existing == l {
			return
		}
	}
	c.listeners = append(c.listeners, l)
}

// RemoveStateListener deregisters l. Unknown listeners are ignored.
func (c *Coordinator) RemoveStateListener(l StateListener) {
	for i, existing := range c.listeners {
		if existing == l {
			c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
			return
		}
	}
}

// Enable instantiates the configured systems and subscribes to fade events.
// Systems are only instantiated once, no matter how often Enable runs.
func (c *Coordinator) Enable() {
	if !c.instantiated {
		c.instantiated = true
		c.instantiateSystems()
	}
	if c.fader != nil && !c.subscribed {
		c.fader.Subscribe(c)
		c.subscribed = true
	}
}

// Disable unsubscribes from fade events.
func (c *Coordinator) Disable() {
	if c.fader != nil && c.subscribed {
		c.fader.Unsubscribe(c)
		c.subscribed = false
	}
}

// Destroy releases every system instance this coordinator created.
func (c *Coordinator) Destroy() {
	c.Disable()
	for _, inst := range c.instances {
		c.spawner.Destroy(inst)
	}
	c.instances = nil
}

// Instances returns the system instances owned by the coordinator.
func (c *Coordinator) Instances() []*systems.Instance {
	return c.instances
}

func (c *Coordinator) instantiateSystems() {
	if c.spawner == nil {
		if len(c.templates) > 0 {
			c.logf("no spawner configured, skipping %d systems", len(c.templates))
		}
		return
	}
	for _, t := range c.templates {
		inst, err := c.spawner.Instantiate(t)
		if err != nil {
			c.logf("unable to instantiate system %s: %v", t.Name, err)
			continue
		}
		c.instances = append(c.instances, inst)
	}
}

// Update polls the pause key. Input is ignored while in Pregame.
func (c *Coordinator) Update() {
	if c.state == state.StatePregame || c.input == nil {
		return
	}
	if c.input.PausePressed() {
		c.TogglePause()
	}
}

// RequestLoad schedules an additive load of the named level.
// A load that cannot be scheduled is logged and leaves the coordinator untouched.
func (c *Coordinator) RequestLoad(name string) error {
	op, err := c.loader.LoadAsync(name)
	if err == nil && op == nil {
		err = errNilOperation
	}
	if err != nil {
		c.logf("unable to load level %s: %v", name, err)
		return fmt.Errorf("level %q: %w: %w", name, ErrLoadSchedule, err)
	}

	// Track before registering so a callback fired from OnComplete still finds it.
	c.pending[op] = struct{}{}
	op.OnComplete(c.handleLoadComplete)

	c.currentLevel = name
	c.hasLevel = true
	return nil
}

// RequestUnload schedules an unload of the named level and forgets the
// current level as soon as the unload is accepted.
func (c *Coordinator) RequestUnload(name string) error {
	op, err := c.loader.UnloadAsync(name)
	if err == nil && op == nil {
		err = errNilOperation
	}
	if err != nil {
		c.logf("unable to unload level %s: %v", name, err)
		return fmt.Errorf("level %q: %w: %w", name, ErrUnloadSchedule, err)
	}

	op.OnComplete(c.handleUnloadComplete)

	c.currentLevel = ""
	c.hasLevel = false
	return nil
}

// Reload unloads and loads the named level again.
func (c *Coordinator) Reload(name string) error {
	if err := c.RequestUnload(name); err != nil {
		return err
	}
	return c.RequestLoad(name)
}

func (c *Coordinator) handleLoadComplete(op Operation) {
	if _, ok := c.pending[op]; ok {
		delete(c.pending, op)
		if len(c.pending) == 0 {
			c.setState(state.StateRunning)
		}
	}
	c.logf("load complete (%s)", op.ID())
}

func (c *Coordinator) handleUnloadComplete(op Operation) {
	c.logf("unload complete (%s)", op.ID())
}

// OnFadeComplete unloads the current level once a fade-in finishes.
func (c *Coordinator) OnFadeComplete(fadeOut bool) {
	if fadeOut || !c.hasLevel {
		return
	}
	_ = c.RequestUnload(c.currentLevel)
}

// Start loads the start level.
func (c *Coordinator) Start() {
	_ = c.RequestLoad(c.startLevel)
}

// TogglePause pauses a running game and resumes from any other state.
func (c *Coordinator) TogglePause() {
	if c.state == state.StateRunning {
		c.setState(state.StatePaused)
		return
	}
	c.setState(state.StateRunning)
}

// Restart returns to Pregame. Loaded levels and pending loads are left alone.
func (c *Coordinator) Restart() {
	c.setState(state.StatePregame)
}

// Quit asks the host to stop the game loop.
func (c *Coordinator) Quit() {
	if c.host == nil {
		c.logf("quit requested with no host")
		return
	}
	c.host.Quit()
}

func (c *Coordinator) setState(next state.GameState) {
	prev := c.state
	c.state = next
	c.clock.Set(next.TimeScale())

	listeners := append([]StateListener(nil), c.listeners...)
	for _, l := range listeners {
		l.OnGameStateChanged(next, prev)
	}
}

func (c *Coordinator) logf(format string, args ...any) {
	c.logger.Printf("[coordinator] "+format, args...)
}
