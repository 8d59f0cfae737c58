package config

import (
	"fmt"
	"image/color"

	"github.com/mazznoer/csscolorparser"
)

// ParseColor parses a CSS color ("#1a1a2e", "teal", "rgb(1,2,3)").
// An empty string yields fallback.
func ParseColor(s string, fallback color.RGBA) (color.RGBA, error) {
	if s == "" {
		return fallback, nil
	}
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return fallback, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b, a := c.RGBA255()
	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}
