package coordinator

import (
	"github.com/younwookim/levelkeeper/internal/application/fade"
	"github.com/younwookim/levelkeeper/internal/application/state"
	"github.com/younwookim/levelkeeper/internal/application/systems"
)

// Operation is a handle to an in-flight asynchronous load or unload.
// Handles are compared by identity, so implementations should be pointers.
type Operation interface {
	// ID identifies the operation in logs.
	ID() string

	// OnComplete registers fn to run when the operation finishes.
	// fn runs on the goroutine that drives the game loop.
	OnComplete(fn func(Operation))
}

// SceneLoader schedules additive level loads and unloads.
// An error means the operation could not be scheduled at all.
type SceneLoader interface {
	LoadAsync(name string) (Operation, error)
	UnloadAsync(name string) (Operation, error)
}

// FadeNotifier reports when a UI fade finishes.
type FadeNotifier interface {
	Subscribe(l fade.Listener)
	Unsubscribe(l fade.Listener)
}

// PauseInput reports a pause key press edge for the current frame.
type PauseInput interface {
	PausePressed() bool
}

// Spawner creates and destroys system objects from templates.
type Spawner interface {
	Instantiate(t systems.Template) (*systems.Instance, error)
	Destroy(inst *systems.Instance)
}

// Host stops the game loop.
type Host interface {
	Quit()
}

// StateListener observes state transitions.
type StateListener interface {
	OnGameStateChanged(next, prev state.GameState)
}
