package system

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyboardInput reports pause key presses from the keyboard
type KeyboardInput struct {
	pauseKey ebiten.Key
}

// NewKeyboardInput creates a keyboard input polling pauseKey
func NewKeyboardInput(pauseKey ebiten.Key) *KeyboardInput {
	return &KeyboardInput{pauseKey: pauseKey}
}

// PausePressed reports whether the pause key went down this frame.
// Holding the key reports true only on the first frame.
func (s *KeyboardInput) PausePressed() bool {
	return inpututil.IsKeyJustPressed(s.pauseKey)
}

// PauseKey returns the key being polled
func (s *KeyboardInput) PauseKey() ebiten.Key {
	return s.pauseKey
}

// ParseKey converts a key name such as "Escape" or "P" into an ebiten.Key
func ParseKey(name string) (ebiten.Key, error) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("unknown key %q: %w", name, err)
	}
	return k, nil
}
