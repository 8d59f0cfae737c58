// Package scene defines the Scene interface for loaded levels.
//
// Each loaded level is presented by a Scene. The game loop updates every
// active scene with time-scaled delta time and draws them in load order.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene represents the content of one loaded level.
type Scene interface {
	// Update advances the scene.
	// dt is the delta time in seconds, already multiplied by the time scale,
	// so it is 0 while the game is paused.
	// Returns an error to terminate the game.
	Update(dt float64) error

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when the level finishes loading.
	OnEnter()

	// OnExit is called when the level is unloaded.
	// Use this for cleanup or resource release.
	OnExit()
}
