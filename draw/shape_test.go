package draw

import (
	"image"
	"image/color"
	"testing"
)

type testImage struct {
	*image.RGBA
}

func newTestImage(w, h int) *testImage {
	return &testImage{RGBA: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (i *testImage) on(x, y int) bool {
	r, _, _, _ := i.At(x, y).RGBA()
	return r != 0
}

var white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func TestLine(t *testing.T) {
	testCases := []struct {
		name string
		a, b image.Point
	}{
		{"point", image.Pt(3, 3), image.Pt(3, 3)},
		{"horizontal", image.Pt(0, 2), image.Pt(7, 2)},
		{"vertical", image.Pt(2, 0), image.Pt(2, 7)},
		{"diagonal", image.Pt(0, 0), image.Pt(7, 7)},
		{"shallow", image.Pt(0, 0), image.Pt(7, 3)},
		{"steep", image.Pt(0, 0), image.Pt(3, 7)},
		{"reversed", image.Pt(7, 7), image.Pt(0, 0)},
	}
	for _, test := range testCases {
		t.Run(test.name, func(it *testing.T) {
			i := newTestImage(8, 8)
			Line(i, test.a, test.b, white)
			if !i.on(test.a.X, test.a.Y) || !i.on(test.b.X, test.b.Y) {
				it.Errorf("expected both end points %s and %s to be set", test.a, test.b)
			}
		})
	}
}

func TestRectangle(t *testing.T) {
	i := newTestImage(8, 8)
	Rectangle(i, image.Rect(1, 1, 7, 7), white)

	for x := 1; x < 7; x++ {
		if !i.on(x, 1) || !i.on(x, 6) {
			t.Errorf("expected top and bottom edges set at x=%d", x)
		}
	}
	for y := 1; y < 7; y++ {
		if !i.on(1, y) || !i.on(6, y) {
			t.Errorf("expected left and right edges set at y=%d", y)
		}
	}
	if i.on(3, 3) {
		t.Error("expected interior to stay clear")
	}
}

func TestBox(t *testing.T) {
	i := newTestImage(8, 8)
	Box(i, image.Rect(2, 2, 6, 6), white)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			inside := x >= 2 && x < 6 && y >= 2 && y < 6
			if i.on(x, y) != inside {
				t.Errorf("pixel (%d,%d) set=%v, expected %v", x, y, i.on(x, y), inside)
			}
		}
	}
}
