package pixel

import (
	"image/color"
	"testing"
)

func TestRGB565RGBA(t *testing.T) {
	testCases := []struct {
		v       uint16
		r, g, b uint32
	}{
		{0x0000, 0x0000, 0x0000, 0x0000},
		{0xffff, 0xffff, 0xffff, 0xffff},
		{0xf800, 0xffff, 0x0000, 0x0000},
		{0x07e0, 0x0000, 0xffff, 0x0000},
		{0x001f, 0x0000, 0x0000, 0xffff},
	}
	for _, test := range testCases {
		r, g, b, a := RGB565{test.v}.RGBA()
		if r != test.r || g != test.g || b != test.b {
			t.Errorf("%#04x: expected rgb (%#04x,%#04x,%#04x), got (%#04x,%#04x,%#04x)",
				test.v, test.r, test.g, test.b, r, g, b)
		}
		if a != 0xffff {
			t.Errorf("%#04x: expected opaque alpha, got %#04x", test.v, a)
		}
	}
}

func TestRGB565Components(t *testing.T) {
	testCases := []struct {
		v       uint16
		r, g, b uint8
	}{
		{0x0000, 0x00, 0x00, 0x00},
		{0xffff, 0xff, 0xff, 0xff},
		{0x07e0, 0x00, 0xff, 0x00},
		{0x0841, 0x08, 0x08, 0x08}, // lowest bit of each channel
	}
	for _, test := range testCases {
		r, g, b := RGB565{test.v}.Components()
		if r != test.r || g != test.g || b != test.b {
			t.Errorf("%#04x: expected components (%#02x,%#02x,%#02x), got (%#02x,%#02x,%#02x)",
				test.v, test.r, test.g, test.b, r, g, b)
		}
	}
}

func TestNew565(t *testing.T) {
	testCases := []struct {
		r, g, b uint8
		want    uint16
	}{
		{0x00, 0x00, 0x00, 0x0000},
		{0xff, 0xff, 0xff, 0xffff},
		{0xff, 0x00, 0x00, 0xf800},
		{0x00, 0xff, 0x00, 0x07e0},
		{0x00, 0x00, 0xff, 0x001f},
	}
	for _, test := range testCases {
		if v := New565(test.r, test.g, test.b); v.V != test.want {
			t.Errorf("New565(%#02x,%#02x,%#02x) = %#04x, expected %#04x",
				test.r, test.g, test.b, v.V, test.want)
		}
	}
}

func TestRGB565Model(t *testing.T) {
	c := RGB565Model.Convert(color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff})
	if v := c.(RGB565).V; v != 0xf81f {
		t.Errorf("expected magenta to convert to 0xf81f, got %#04x", v)
	}
	// Converting an already packed color is the identity.
	if c := RGB565Model.Convert(RGB565{0x1234}); c != (RGB565{0x1234}) {
		t.Errorf("expected identity conversion, got %#+v", c)
	}
}
