// Package menu shows the main menu and the pause menu in response to game
// state changes.
package menu

import (
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/levelkeeper/internal/application/coordinator"
	"github.com/younwookim/levelkeeper/internal/application/fade"
	"github.com/younwookim/levelkeeper/internal/application/state"
)

// Controller is what the menu buttons drive.
type Controller interface {
	Start()
	TogglePause()
	Restart()
	Quit()
}

// Curtain is the fade played when the main menu comes and goes.
type Curtain interface {
	FadeIn()
	FadeOut()
	Cover()
}

// Screen identifies which menu is showing.
type Screen int

const (
	ScreenNone Screen = iota
	ScreenMain
	ScreenPause
)

func (s Screen) String() string {
	switch s {
	case ScreenNone:
		return "None"
	case ScreenMain:
		return "Main"
	case ScreenPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Manager switches menus as the game state changes.
type Manager struct {
	ctrl    Controller
	curtain Curtain
	screen  Screen

	// set while the curtain drops after a restart; the main menu waits for it
	awaitingCurtain bool

	mainUI  *ebitenui.UI
	pauseUI *ebitenui.UI
}

var (
	_ coordinator.StateListener = (*Manager)(nil)
	_ fade.Listener             = (*Manager)(nil)
)

// NewManager builds both menus. The game boots into Pregame, so the main
// menu starts out visible behind a lowered curtain.
// The manager must also be subscribed to the curtain's fade events.
func NewManager(ctrl Controller, curtain Curtain) *Manager {
	m := newManager(ctrl, curtain)
	m.mainUI = newMainMenuUI(m)
	m.pauseUI = newPauseMenuUI(m)
	return m
}

func newManager(ctrl Controller, curtain Curtain) *Manager {
	m := &Manager{ctrl: ctrl, curtain: curtain, screen: ScreenMain}
	curtain.Cover()
	return m
}

// Screen returns the menu currently showing.
func (m *Manager) Screen() Screen {
	return m.screen
}

// OnGameStateChanged implements coordinator.StateListener.
func (m *Manager) OnGameStateChanged(next, prev state.GameState) {
	if next != state.StatePregame {
		m.awaitingCurtain = false
	}

	switch {
	case next == state.StatePregame && prev != state.StatePregame:
		// The level is still loaded until the curtain is down
		m.screen = ScreenNone
		m.awaitingCurtain = true
		m.curtain.FadeIn()
	case next == state.StateRunning && prev == state.StatePregame:
		m.screen = ScreenNone
		m.curtain.FadeOut()
	case next == state.StatePaused:
		m.screen = ScreenPause
	case next == state.StateRunning && prev == state.StatePaused:
		m.screen = ScreenNone
	}
}

// OnFadeComplete shows the main menu once the curtain has dropped.
func (m *Manager) OnFadeComplete(fadeOut bool) {
	if fadeOut || !m.awaitingCurtain {
		return
	}
	m.awaitingCurtain = false
	m.screen = ScreenMain
}

// Update runs the visible menu's widgets.
func (m *Manager) Update() {
	if ui := m.activeUI(); ui != nil {
		ui.Update()
	}
}

// Draw renders the visible menu.
func (m *Manager) Draw(screen *ebiten.Image) {
	if ui := m.activeUI(); ui != nil {
		ui.Draw(screen)
	}
}

func (m *Manager) activeUI() *ebitenui.UI {
	switch m.screen {
	case ScreenMain:
		return m.mainUI
	case ScreenPause:
		return m.pauseUI
	default:
		return nil
	}
}

func (m *Manager) onStart() {
	m.ctrl.Start()
}

func (m *Manager) onResume() {
	m.ctrl.TogglePause()
}

func (m *Manager) onRestart() {
	m.ctrl.Restart()
}

func (m *Manager) onQuit() {
	m.ctrl.Quit()
}
