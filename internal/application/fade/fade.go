// Package fade provides the menu curtain that fades around level changes.
//
// The curtain is a full-screen black overlay. Fading out lifts it to reveal
// the level; fading in drops it back over the screen.
package fade

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DefaultFrames is the fade length used when none is configured.
const DefaultFrames = 30

// Listener is notified when a fade finishes.
// fadeOut is true when the curtain just lifted and false when it just covered the screen.
type Listener interface {
	OnFadeComplete(fadeOut bool)
}

// Fader animates a black overlay on unscaled frame time, so it keeps
// running while the simulation is paused.
type Fader struct {
	frames    int
	timer     int
	fadingOut bool
	active    bool
	alpha     float64

	listeners []Listener
}

// New creates a fader whose fades last the given number of frames.
func New(frames int) *Fader {
	if frames <= 0 {
		frames = DefaultFrames
	}
	return &Fader{frames: frames}
}

// Subscribe registers l. Registering the same listener twice has no effect.
func (f *Fader) Subscribe(l Listener) {
	for _, existing := range f.listeners {
		if existing == l {
			return
		}
	}
	f.listeners = append(f.listeners, l)
}

// Unsubscribe removes l.
func (f *Fader) Unsubscribe(l Listener) {
	for i, existing := range f.listeners {
		if existing == l {
			f.listeners = append(f.listeners[:i:i], f.listeners[i+1:]...)
			return
		}
	}
}

// Listeners returns the number of subscribed listeners.
func (f *Fader) Listeners() int {
	return len(f.listeners)
}

// FadeOut lifts the curtain.
func (f *Fader) FadeOut() {
	f.start(true)
}

// FadeIn drops the curtain over the screen.
func (f *Fader) FadeIn() {
	f.start(false)
}

// Cover puts the curtain fully down at once, without notifying anyone.
func (f *Fader) Cover() {
	f.active = false
	f.alpha = 1
}

func (f *Fader) start(out bool) {
	f.fadingOut = out
	f.active = true
	f.timer = f.frames
	if out {
		f.alpha = 1
	} else {
		f.alpha = 0
	}
}

// Update advances the running fade by one frame.
func (f *Fader) Update() {
	if !f.active {
		return
	}
	if f.timer > 0 {
		f.timer--
	}

	progress := 1 - float64(f.timer)/float64(f.frames)
	if f.fadingOut {
		f.alpha = 1 - progress
	} else {
		f.alpha = progress
	}

	if f.timer > 0 {
		return
	}
	f.active = false
	f.notify(f.fadingOut)
}

func (f *Fader) notify(fadeOut bool) {
	listeners := append([]Listener(nil), f.listeners...)
	for _, l := range listeners {
		l.OnFadeComplete(fadeOut)
	}
}

// Active reports whether a fade is running.
func (f *Fader) Active() bool {
	return f.active
}

// Alpha returns the overlay opacity in [0, 1].
func (f *Fader) Alpha() float64 {
	return f.alpha
}

// Draw covers the screen with the curtain at its current opacity.
func (f *Fader) Draw(screen *ebiten.Image) {
	if f.alpha <= 0 {
		return
	}
	b := screen.Bounds()
	overlay := color.NRGBA{A: uint8(f.alpha * 255)}
	vector.FillRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), overlay, false)
}
