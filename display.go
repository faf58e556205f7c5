// Package matrix contains the HUB75 RGB LED matrix driver.
package matrix

import (
	"errors"
	"image"
	"image/color"
	"os"
)

var debug bool

func init() {
	debug = os.Getenv("MATRIX_DEBUG") != ""
}

// Errors
var (
	ErrConfig = errors.New("matrix: invalid configuration")
)

// Display is a refreshable LED matrix display.
type Display interface {
	// Close the display driver.
	Close() error

	// Clear the display buffer.
	Clear()

	// At returns the color of the pixel at (x, y).
	At(x, y int) color.Color

	// Set the pixel color at (x, y).
	Set(x, y int, c color.Color)

	// Bounds is the display bounding box (dimensions).
	Bounds() image.Rectangle

	// ColorModel used by the display.
	ColorModel() color.Model

	// SetBrightness adjusts the brightness level.
	SetBrightness(level uint8)

	// Refresh performs one full scan pass over the panel.
	Refresh() error
}
