package pixel

import (
	"image"
	"image/color"
	"image/draw"
)

// Image is a 16-bits per pixel 5-6-5 RGB framebuffer.
//
// It is allocated once, sized to the panel, and mutated in place for the life
// of the process. All pixel accessors silently ignore out-of-bounds
// coordinates so that drawing code may compute positions slightly outside the
// visible area without clipping checks of its own.
type Image struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the packed 5-6-5 pixel values in row-major order.
	Pix []uint16
}

// NewImage returns a cleared w×h framebuffer.
func NewImage(w, h int) *Image {
	return &Image{
		Rect: image.Rect(0, 0, w, h),
		Pix:  make([]uint16, w*h),
	}
}

func (p *Image) ColorModel() color.Model {
	return RGB565Model
}

func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return RGB565{p.Pix[y*p.Rect.Dx()+x]}
}

func (p *Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	p.Pix[y*p.Rect.Dx()+x] = rgb565Model(c).(RGB565).V
}

// Pix565At returns the packed value at (x, y), or 0 when out of bounds.
func (p *Image) Pix565At(x, y int) uint16 {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return 0
	}
	return p.Pix[y*p.Rect.Dx()+x]
}

// SetPix565 stores a packed value at (x, y); out of bounds is a no-op.
func (p *Image) SetPix565(x, y int, v uint16) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	p.Pix[y*p.Rect.Dx()+x] = v
}

// Clear sets every pixel to black.
func (p *Image) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0
	}
}

// Fill sets every pixel to c.
func (p *Image) Fill(c color.Color) {
	p.Fill565(rgb565Model(c).(RGB565).V)
}

// Fill565 sets every pixel to the packed value v.
func (p *Image) Fill565(v uint16) {
	for i := range p.Pix {
		p.Pix[i] = v
	}
}

// Blit copies every pixel of src into p offset by (dx, dy). Pixels whose
// destination falls outside p are skipped.
func (p *Image) Blit(src *Image, dx, dy int) {
	p.blit(src, dx, dy, false, 0)
}

// BlitKey is like [Image.Blit] but skips source pixels whose packed value
// equals key, leaving the destination untouched.
func (p *Image) BlitKey(src *Image, dx, dy int, key uint16) {
	p.blit(src, dx, dy, true, key)
}

func (p *Image) blit(src *Image, dx, dy int, keyed bool, key uint16) {
	var (
		sw = src.Rect.Dx()
		sh = src.Rect.Dy()
	)
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			v := src.Pix[y*sw+x]
			if keyed && v == key {
				continue
			}
			p.SetPix565(x+dx, y+dy, v)
		}
	}
}

// Interface checks.
var (
	_ image.Image = (*Image)(nil)
	_ draw.Image  = (*Image)(nil)
)
