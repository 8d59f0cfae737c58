package systems

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/levelkeeper/internal/application/state"
	"github.com/younwookim/levelkeeper/internal/application/timescale"
)

// Built-in template names.
const (
	DebugOverlayTemplate = "debug-overlay"
	SessionClockTemplate = "session-clock"
)

// Status is the read-only view of the game the debug overlay prints.
type Status interface {
	State() state.GameState
	PendingLoads() int
	CurrentLevel() (string, bool)
	Clock() *timescale.Clock
}

// RegisterBuiltins adds the built-in templates to r.
func RegisterBuiltins(r *Registry, status Status, logger *log.Logger) {
	r.Register(DebugOverlayTemplate, NewDebugOverlayFactory(status))
	r.Register(SessionClockTemplate, NewSessionClockFactory(logger))
}

// DebugOverlay prints the coordinator status in a screen corner.
type DebugOverlay struct {
	status Status
	x, y   int
}

// NewDebugOverlayFactory returns a factory for DebugOverlay.
// Options "x" and "y" set the text position.
func NewDebugOverlayFactory(status Status) Factory {
	return func(options map[string]string) (System, error) {
		x, err := intOption(options, "x", 4)
		if err != nil {
			return nil, err
		}
		y, err := intOption(options, "y", 4)
		if err != nil {
			return nil, err
		}
		return &DebugOverlay{status: status, x: x, y: y}, nil
	}
}

func (d *DebugOverlay) Update(dt float64) {}

func (d *DebugOverlay) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, d.Text(), d.x, d.y)
}

func (d *DebugOverlay) Destroy() {}

// Text returns the overlay contents.
func (d *DebugOverlay) Text() string {
	level, ok := d.status.CurrentLevel()
	if !ok {
		level = "-"
	}
	return fmt.Sprintf("State: %s  Scale: %.0fx  Pending: %d  Level: %s  FPS: %.1f",
		d.status.State(), d.status.Clock().Scale(), d.status.PendingLoads(), level, ebiten.ActualFPS())
}

// SessionClock accumulates scaled play time and reports it when destroyed.
type SessionClock struct {
	label   string
	elapsed float64
	logger  *log.Logger
}

// NewSessionClockFactory returns a factory for SessionClock.
// Option "label" names the clock in the log line.
func NewSessionClockFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Default()
	}
	return func(options map[string]string) (System, error) {
		label := options["label"]
		if label == "" {
			label = "session"
		}
		return &SessionClock{label: label, logger: logger}, nil
	}
}

func (c *SessionClock) Update(dt float64) {
	c.elapsed += dt
}

func (c *SessionClock) Draw(screen *ebiten.Image) {}

func (c *SessionClock) Destroy() {
	c.logger.Printf("[systems] %s played for %s", c.label, c.Elapsed().Round(time.Millisecond))
}

// Elapsed returns the accumulated play time.
func (c *SessionClock) Elapsed() time.Duration {
	return time.Duration(c.elapsed * float64(time.Second))
}

func intOption(options map[string]string, key string, def int) (int, error) {
	raw, ok := options[key]
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("option %s: %w", key, err)
	}
	return v, nil
}
