// Package bmp decodes 8-bit palette-indexed BMP images into a form suitable
// for the matrix compositor: one palette index per pixel plus a 256-entry
// 5-6-5 color table with non-destructive brightness scaling.
package bmp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/wienuhr/matrix/pixel"
)

// Decode errors.
var (
	ErrFormat      = errors.New("bmp: not a BMP file")
	ErrUnsupported = errors.New("bmp: unsupported format")
)

const (
	headerSize   = 54
	paletteSize  = 256
	paletteBytes = paletteSize * 4
)

// Image is a decoded 8-bit indexed image.
//
// The working palette is what rendering reads; the original palette is kept
// so that brightness scaling is always computed from the source colors and
// never compounds rounding errors.
type Image struct {
	width    int
	height   int
	pix      []uint8 // one palette index per pixel, row 0 is the visual top
	palette  []uint16
	original []uint16
}

// Decode parses an uncompressed 8-bit indexed BMP.
//
// It returns [ErrFormat] if the signature does not match and [ErrUnsupported]
// for color depths other than 8 bits per pixel or compressed pixel data.
func Decode(r io.Reader) (*Image, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("%w: short header: %w", ErrFormat, err)
	}
	if header[0] != 'B' || header[1] != 'M' {
		return nil, ErrFormat
	}

	var (
		pixelOffset = binary.LittleEndian.Uint32(header[10:14])
		width       = int(int32(binary.LittleEndian.Uint32(header[18:22])))
		height      = int(int32(binary.LittleEndian.Uint32(header[22:26])))
		bitsPerPix  = binary.LittleEndian.Uint16(header[28:30])
		compression = binary.LittleEndian.Uint32(header[30:34])
	)
	if bitsPerPix != 8 {
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrUnsupported, bitsPerPix)
	}
	if compression != 0 {
		return nil, fmt.Errorf("%w: compressed pixel data", ErrUnsupported)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrFormat, width, height)
	}

	var raw [paletteBytes]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return nil, fmt.Errorf("%w: short palette: %w", ErrFormat, err)
	}

	// Palette entries are stored as blue, green, red, reserved quadruplets.
	palette := make([]uint16, paletteSize)
	for i := range palette {
		var (
			b = raw[i*4+0]
			g = raw[i*4+1]
			r = raw[i*4+2]
		)
		palette[i] = pixel.New565(r, g, b).V
	}

	// Skip whatever sits between the color table and the pixel data.
	if skip := int64(pixelOffset) - (headerSize + paletteBytes); skip > 0 {
		if _, err := io.CopyN(io.Discard, r, skip); err != nil {
			return nil, fmt.Errorf("%w: short file: %w", ErrFormat, err)
		}
	}

	// Rows are stored bottom-up, each padded to a 4-byte boundary.
	var (
		rowSize = (width + 3) &^ 3
		row     = make([]byte, rowSize)
		pix     = make([]uint8, width*height)
	)
	for y := 0; y < height; y++ {
		if _, err := io.ReadFull(r, row); err != nil {
			return nil, fmt.Errorf("%w: short pixel data: %w", ErrFormat, err)
		}
		copy(pix[(height-1-y)*width:], row[:width])
	}

	return &Image{
		width:    width,
		height:   height,
		pix:      pix,
		palette:  palette,
		original: append([]uint16(nil), palette...),
	}, nil
}

// Width returns the image width in pixels.
func (m *Image) Width() int { return m.width }

// Height returns the image height in pixels.
func (m *Image) Height() int { return m.height }

// IndexAt returns the palette index at (x, y), or 0 when out of bounds.
func (m *Image) IndexAt(x, y int) uint8 {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return 0
	}
	return m.pix[y*m.width+x]
}

// Palette returns the working (brightness-scaled) color table.
func (m *Image) Palette() []uint16 { return m.palette }

// SetBrightness recomputes the working palette from the original one, scaled
// by factor clamped to [0, 1].
//
// Each packed entry is widened to 8-bit components by bit replication, scaled
// with truncation and packed back. The widen/narrow round trip is lossless at
// factor 1.0, so full brightness restores the original palette exactly.
func (m *Image) SetBrightness(factor float64) {
	if factor < 0 {
		factor = 0
	} else if factor > 1 {
		factor = 1
	}
	for i, v := range m.original {
		r8, g8, b8 := pixel.RGB565{V: v}.Components()
		r8 = uint8(float64(r8) * factor)
		g8 = uint8(float64(g8) * factor)
		b8 = uint8(float64(b8) * factor)
		m.palette[i] = pixel.New565(r8, g8, b8).V
	}
}

// ResetBrightness restores the working palette to the original colors.
func (m *Image) ResetBrightness() {
	copy(m.palette, m.original)
}

// Image565 expands every index through the working palette into a new
// framebuffer of the image's dimensions. Indices beyond the color table are
// skipped, leaving the destination pixel at its zero value.
func (m *Image) Image565() *pixel.Image {
	out := pixel.NewImage(m.width, m.height)
	for i, index := range m.pix {
		if int(index) >= len(m.palette) {
			continue
		}
		out.Pix[i] = m.palette[index]
	}
	return out
}
