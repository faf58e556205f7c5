package bdf

import (
	"errors"
	"strings"
	"testing"

	"github.com/wienuhr/matrix/pixel"
)

const testFont = `STARTFONT 2.1
FONT -test-fixed-medium-r-normal--8-80-75-75-c-50-iso10646-1
SIZE 8 75 75
FONTBOUNDINGBOX 5 8 0 -1
FONT_ASCENT 6
FONT_DESCENT 2
CHARS 3
STARTCHAR A
ENCODING 65
SWIDTH 500 0
DWIDTH 6 0
BBX 5 7 0 0
BITMAP
04
0A
11
11
1F
11
11
ENDCHAR
STARTCHAR space
ENCODING 32
SWIDTH 500 0
DWIDTH 4 0
BBX 1 1 0 0
BITMAP
00
ENDCHAR
STARTCHAR bogus
ENCODING -1
SWIDTH 500 0
DWIDTH 6 0
BBX 5 7 0 0
BITMAP
1F
ENDCHAR
ENDFONT
`

func parseTestFont(t *testing.T) *BDF {
	t.Helper()
	f, err := Parse(strings.NewReader(testFont))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestParse(t *testing.T) {
	f := parseTestFont(t)

	if v := f.Height(); v != 8 {
		t.Errorf("expected font height 8, got %d", v)
	}
	if f.Ascent() != 6 || f.Descent() != 2 {
		t.Errorf("expected ascent/descent 6/2, got %d/%d", f.Ascent(), f.Descent())
	}
	if len(f.glyphs) != 2 {
		t.Errorf("expected 2 glyphs (invalid encoding dropped), got %d", len(f.glyphs))
	}

	g, ok := f.Lookup('A')
	if !ok {
		t.Fatal("expected glyph for 'A'")
	}
	if g.Width != 5 || g.Height != 7 || g.Advance != 6 {
		t.Errorf("unexpected metrics for 'A': %+v", g)
	}
	if len(g.Bitmap) != 7 || g.Bitmap[0] != 0x04 || g.Bitmap[4] != 0x1f {
		t.Errorf("unexpected bitmap for 'A': %#v", g.Bitmap)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(strings.NewReader("STARTFONT 2.1\nENDFONT\n")); !errors.Is(err, ErrNoGlyphs) {
		t.Errorf("expected ErrNoGlyphs, got %v", err)
	}
}

func TestLookupFallsBackToSpace(t *testing.T) {
	f := parseTestFont(t)

	g, ok := f.Lookup('Z')
	if !ok {
		t.Fatal("expected space substitution for unmapped character")
	}
	if g.Rune != ' ' {
		t.Errorf("expected the space glyph, got %q", g.Rune)
	}
}

func TestLookupWithoutSpace(t *testing.T) {
	noSpace := strings.NewReader(`FONT_ASCENT 7
FONT_DESCENT 1
STARTCHAR A
ENCODING 65
DWIDTH 6 0
BBX 5 7 0 0
BITMAP
1F
ENDCHAR
`)
	f, err := Parse(noSpace)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := f.Lookup('Z'); ok {
		t.Error("expected no glyph when neither character nor space is mapped")
	}

	// Drawing the unmappable character paints nothing and advances zero.
	dst := pixel.NewImage(16, 16)
	if adv := f.DrawText(dst, "Z", 0, 8, pixel.RGB565{V: 0xffff}, nil); adv != 0 {
		t.Errorf("expected zero advance, got %d", adv)
	}
	for _, v := range dst.Pix {
		if v != 0 {
			t.Fatal("expected no pixels drawn for unmappable character")
		}
	}
}

func TestDrawText(t *testing.T) {
	f := parseTestFont(t)
	dst := pixel.NewImage(16, 16)

	fg := pixel.RGB565{V: 0x07e0}
	adv := f.DrawText(dst, "A", 0, 7, fg, nil)
	if adv != 6 {
		t.Errorf("expected advance 6, got %d", adv)
	}

	// Baseline 7, zero y-offset, height 7: glyph top row lands on y=0.
	// Row 0 of the bitmap is 0b00100 across the 5-bit width.
	if v := dst.Pix565At(2, 0); v != 0x07e0 {
		t.Errorf("expected apex pixel (2,0) set, got %#04x", v)
	}
	if v := dst.Pix565At(0, 0); v != 0 {
		t.Errorf("expected pixel (0,0) clear, got %#04x", v)
	}
	// Row 4 is 0b11111.
	for x := 0; x < 5; x++ {
		if v := dst.Pix565At(x, 4); v != 0x07e0 {
			t.Errorf("expected crossbar pixel (%d,4) set, got %#04x", x, v)
		}
	}
}

func TestDrawTextBackground(t *testing.T) {
	f := parseTestFont(t)
	dst := pixel.NewImage(16, 16)
	dst.Fill565(0x1111)

	fg := pixel.RGB565{V: 0xffff}
	bg := pixel.RGB565{V: 0x0000}
	f.DrawText(dst, "A", 0, 7, fg, bg)

	if v := dst.Pix565At(0, 0); v != 0x0000 {
		t.Errorf("expected unset bit painted with background, got %#04x", v)
	}
	if v := dst.Pix565At(2, 0); v != 0xffff {
		t.Errorf("expected set bit painted with foreground, got %#04x", v)
	}
}

func TestShortBitmap(t *testing.T) {
	short := strings.NewReader(`FONT_ASCENT 7
FONT_DESCENT 0
STARTCHAR bar
ENCODING 66
DWIDTH 6 0
BBX 5 7 0 0
BITMAP
1F
1F
ENDCHAR
`)
	f, err := Parse(short)
	if err != nil {
		t.Fatal(err)
	}
	dst := pixel.NewImage(8, 8)
	f.DrawText(dst, "B", 0, 7, pixel.RGB565{V: 0xffff}, nil)

	// Only the two available rows render; the declared height is not an error.
	for y := 0; y < 8; y++ {
		set := dst.Pix565At(0, y) != 0
		if want := y < 2; set != want {
			t.Errorf("row %d set=%v, expected %v", y, set, want)
		}
	}
}

func TestMeasureText(t *testing.T) {
	f := parseTestFont(t)

	if v := f.MeasureText(""); v != 0 {
		t.Errorf("expected empty string to measure 0, got %d", v)
	}

	// The total must equal the sum of per-character draw advances.
	text := "A A"
	var sum int
	for _, r := range text {
		dst := pixel.NewImage(16, 16)
		sum += f.DrawText(dst, string(r), 0, 7, pixel.RGB565{V: 0xffff}, nil)
	}
	if v := f.MeasureText(text); v != sum {
		t.Errorf("measured %d, expected sum of advances %d", v, sum)
	}
}

func TestFallback(t *testing.T) {
	f := NewFallback()

	if v := f.Height(); v != 8 {
		t.Errorf("expected cell height 8, got %d", v)
	}
	if v := f.MeasureText("Es ist"); v != 6*8 {
		t.Errorf("expected fixed-width measure 48, got %d", v)
	}

	dst := pixel.NewImage(32, 16)
	if adv := f.DrawText(dst, "AB", 0, 8, pixel.RGB565{V: 0xffff}, nil); adv != 16 {
		t.Errorf("expected advance 16, got %d", adv)
	}
	var set int
	for _, v := range dst.Pix {
		if v != 0 {
			set++
		}
	}
	if set == 0 {
		t.Error("expected fallback glyphs to paint pixels")
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	f := Load("testdata/does-not-exist.bdf")
	if _, ok := f.(*Fallback); !ok {
		t.Fatalf("expected fallback font, got %T", f)
	}
}
