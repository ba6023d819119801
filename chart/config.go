package chart

import "image/color"

// Default panel geometry applied when a Config leaves fields unset.
const (
	DefaultWidth         = 800
	DefaultContextHeight = 80
	DefaultFocusHeight   = 320
)

// Config carries the optional chart geometry and overlay palette. Zero-valued
// fields take the package defaults.
type Config struct {
	// Width is the shared pixel width of both panels.
	Width int
	// ContextHeight is the pixel height of the overview (context) panel.
	ContextHeight int
	// FocusHeight is the pixel height of the detail (focus) panel.
	FocusHeight int

	// Overlay colors consumed by the rendering collaborator.
	Ruler       color.NRGBA
	Selection   color.NRGBA
	WindowFill  color.NRGBA
	WindowFrame color.NRGBA
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.ContextHeight <= 0 {
		c.ContextHeight = DefaultContextHeight
	}
	if c.FocusHeight <= 0 {
		c.FocusHeight = DefaultFocusHeight
	}
	zero := color.NRGBA{}
	if c.Ruler == zero {
		c.Ruler = color.NRGBA{A: 0xc8}
	}
	if c.Selection == zero {
		c.Selection = color.NRGBA{R: 0x2b, G: 0x7f, B: 0xa8, A: 0x50}
	}
	if c.WindowFill == zero {
		c.WindowFill = color.NRGBA{R: 0x2b, G: 0x7f, B: 0xa8, A: 0x28}
	}
	if c.WindowFrame == zero {
		c.WindowFrame = color.NRGBA{R: 0x2b, G: 0x7f, B: 0xa8, A: 0xa0}
	}
	return c
}
