package pixel

import "image/color"

// RGB565Model is the color model for 16-bit 5-6-5 packed RGB.
var RGB565Model color.Model = color.ModelFunc(rgb565Model)

// RGB565 represents a 16-bit 5-6-5 RGB color.
type RGB565 struct {
	// CRed, 5, CGreen, 6, CBlue, 5
	V uint16
}

// New565 packs 8-bit components into a 5-6-5 color.
func New565(r, g, b uint8) RGB565 {
	return RGB565{uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)}
}

func (c RGB565) RGBA() (r, g, b, a uint32) {
	// Build a 5- or 6-bit value at the top of the low byte of each component.
	red := (c.V & 0xF800) >> 8
	grn := (c.V & 0x07E0) >> 3
	blu := (c.V & 0x001F) << 3
	// Duplicate the high bits in the low bits.
	red |= red >> 5
	grn |= grn >> 6
	blu |= blu >> 5
	// Duplicate the whole value in the high byte.
	red |= red << 8
	grn |= grn << 8
	blu |= blu << 8
	return uint32(red), uint32(grn), uint32(blu), 0xffff
}

// Components unpacks the channels to 8-bit values using bit replication, so
// that full-scale 5- and 6-bit channels map to 0xff.
func (c RGB565) Components() (r, g, b uint8) {
	r5 := uint8(c.V >> 11 & 0x1f)
	g6 := uint8(c.V >> 5 & 0x3f)
	b5 := uint8(c.V & 0x1f)
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

func rgb565Model(c color.Color) color.Color {
	if c, ok := c.(RGB565); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	r = r & 0xF800
	g = (g & 0xFC00) >> 5
	b = (b & 0xF800) >> 11
	return RGB565{uint16(r | g | b)}
}
