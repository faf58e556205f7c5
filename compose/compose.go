// Package compose renders the clock scene, a dimmable background image with
// multi-line text over it, into a framebuffer for the matrix driver to scan
// out. Composing never runs on the scan path: callers render into an
// off-screen buffer and bind it, or accept one torn frame when rendering into
// the live buffer.
package compose

import (
	"image/color"
	"math"

	"github.com/wienuhr/matrix/bdf"
	"github.com/wienuhr/matrix/bmp"
	"github.com/wienuhr/matrix/pixel"
)

// Screen holds the scene state and text layout settings.
type Screen struct {
	// TextX and TextY position the top-left corner of the first line.
	TextX, TextY int

	// Scale multiplies the font height when placing lines.
	Scale float64

	// LineSpacing is the vertical spacing multiplier between lines.
	LineSpacing float64

	// Color is the text color at full brightness.
	Color color.Color

	// Font renders the text lines.
	Font bdf.Font

	// Lines is the text content, one entry per display line. Empty entries
	// keep their vertical slot but draw nothing.
	Lines []string

	background *bmp.Image
	brightness float64
}

// New returns a screen with neutral layout settings and white text.
func New(font bdf.Font) *Screen {
	return &Screen{
		Scale:       1,
		LineSpacing: 1,
		Color:       color.White,
		Font:        font,
		brightness:  1,
	}
}

// SetBackground replaces the background image, applying the current
// brightness to its palette. A nil image clears the background, leaving text
// over black.
func (s *Screen) SetBackground(img *bmp.Image) {
	s.background = img
	if img != nil {
		img.SetBrightness(s.brightness)
	}
}

// Background returns the current background image, if any.
func (s *Screen) Background() *bmp.Image {
	return s.background
}

// SetBrightness dims both the background palette and the text color by
// factor, clamped to [0, 1]. The background palette is rescaled from its
// original colors, never from the already dimmed working copy.
func (s *Screen) SetBrightness(factor float64) {
	if factor < 0 {
		factor = 0
	} else if factor > 1 {
		factor = 1
	}
	s.brightness = factor
	if s.background != nil {
		s.background.SetBrightness(factor)
	}
}

// Brightness returns the current brightness factor.
func (s *Screen) Brightness() float64 {
	return s.brightness
}

// textColor returns the text color dimmed by the current brightness.
func (s *Screen) textColor() pixel.RGB565 {
	r, g, b, _ := s.Color.RGBA()
	return pixel.New565(
		uint8(float64(r>>8)*s.brightness),
		uint8(float64(g>>8)*s.brightness),
		uint8(float64(b>>8)*s.brightness),
	)
}

// Render composites the scene into dst: clear, background blit at the
// origin, then every non-empty line at its vertical slot. The baseline is
// placed one font height below a line's nominal top, matching the font's
// baseline-relative offset convention.
func (s *Screen) Render(dst *pixel.Image) {
	dst.Clear()

	if s.background != nil {
		dst.Blit(s.background.Image565(), 0, 0)
	}

	if s.Font == nil {
		return
	}
	var (
		fg         = s.textColor()
		fontHeight = s.Font.Height()
		lineHeight = int(math.Round(float64(fontHeight) * s.Scale * s.LineSpacing))
	)
	for i, line := range s.Lines {
		if line == "" {
			continue
		}
		y := s.TextY + i*lineHeight
		s.Font.DrawText(dst, line, s.TextX, y+fontHeight, fg, nil)
	}
}
