// Package bdf loads Glyph Bitmap Distribution Format fonts and rasterizes
// text into a framebuffer.
//
// A font decode failure must never blank the display, so [Load] falls back to
// the built-in fixed-cell font instead of returning an error.
package bdf

import (
	"bufio"
	"errors"
	"image/color"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wienuhr/matrix/draw"
)

// ErrNoGlyphs is returned when a font file parses cleanly but defines no
// usable glyphs.
var ErrNoGlyphs = errors.New("bdf: font contains no glyphs")

// Font is the capability set the compositor needs from a text renderer.
// There are two implementations: a parsed [*BDF] font and the built-in
// [*Fallback] fixed-cell font.
type Font interface {
	// DrawText rasterizes text with the baseline at y and returns the
	// cumulative horizontal advance. A nil bg leaves unset bits untouched.
	DrawText(dst draw.Image, text string, x, y int, fg, bg color.Color) int

	// MeasureText returns the width of text in pixels without drawing.
	MeasureText(text string) int

	// Height returns the nominal line height (ascent plus descent).
	Height() int
}

// Glyph is a single character bitmap with its metrics.
//
// Each Bitmap entry holds one pixel row; bit Width-1 is the leftmost column.
// YOffset is measured upward from the baseline per the BDF convention.
type Glyph struct {
	Rune    rune
	Width   int
	Height  int
	XOffset int
	YOffset int
	Advance int
	Bitmap  []uint32
}

// BDF is a parsed bitmap font.
type BDF struct {
	glyphs  map[rune]Glyph
	ascent  int
	descent int
}

// Parse reads a BDF font. Glyphs with an invalid encoding or a degenerate
// bounding box are silently dropped, matching how permissive BDF consumers
// treat hand-edited font files.
func Parse(r io.Reader) (*BDF, error) {
	f := &BDF{glyphs: make(map[rune]Glyph)}

	var (
		scanner = bufio.NewScanner(r)
		glyph   Glyph
		inChar  bool
		inMap   bool
		haveEnc bool
	)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if inMap {
			if fields[0] == "ENDCHAR" {
				f.register(glyph, haveEnc)
				inChar, inMap = false, false
				continue
			}
			if v, err := strconv.ParseUint(fields[0], 16, 32); err == nil {
				glyph.Bitmap = append(glyph.Bitmap, uint32(v))
			}
			continue
		}

		switch fields[0] {
		case "FONT_ASCENT":
			if len(fields) > 1 {
				f.ascent, _ = strconv.Atoi(fields[1])
			}
		case "FONT_DESCENT":
			if len(fields) > 1 {
				f.descent, _ = strconv.Atoi(fields[1])
			}
		case "STARTCHAR":
			glyph = Glyph{}
			inChar, haveEnc = true, false
		case "ENCODING":
			if inChar && len(fields) > 1 {
				if v, err := strconv.Atoi(fields[1]); err == nil {
					glyph.Rune = rune(v)
					haveEnc = true
				}
			}
		case "BBX":
			if inChar && len(fields) > 4 {
				glyph.Width, _ = strconv.Atoi(fields[1])
				glyph.Height, _ = strconv.Atoi(fields[2])
				glyph.XOffset, _ = strconv.Atoi(fields[3])
				glyph.YOffset, _ = strconv.Atoi(fields[4])
			}
		case "DWIDTH":
			if inChar && len(fields) > 1 {
				glyph.Advance, _ = strconv.Atoi(fields[1])
			}
		case "BITMAP":
			if inChar {
				inMap = true
			}
		case "ENDCHAR":
			inChar = false
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(f.glyphs) == 0 {
		return nil, ErrNoGlyphs
	}
	return f, nil
}

func (f *BDF) register(g Glyph, haveEnc bool) {
	if !haveEnc || g.Width <= 0 || g.Height <= 0 {
		return
	}
	if !utf8.ValidRune(g.Rune) || g.Rune < 0 {
		return
	}
	f.glyphs[g.Rune] = g
}

// Lookup returns the glyph for r, substituting the space glyph for unmapped
// characters. The second return value is false only when neither r nor space
// is mapped.
func (f *BDF) Lookup(r rune) (Glyph, bool) {
	if g, ok := f.glyphs[r]; ok {
		return g, true
	}
	g, ok := f.glyphs[' ']
	return g, ok
}

// Height returns the font height (ascent plus descent).
func (f *BDF) Height() int {
	return f.ascent + f.descent
}

// Ascent returns the font ascent above the baseline.
func (f *BDF) Ascent() int { return f.ascent }

// Descent returns the font descent below the baseline.
func (f *BDF) Descent() int { return f.descent }

func (f *BDF) drawGlyph(dst draw.Image, g Glyph, x, y int, fg, bg color.Color) {
	// The vertical offset is baseline-relative, convert to a top-left origin.
	var (
		originX = x + g.XOffset
		originY = y - g.YOffset - g.Height
	)
	for row := 0; row < g.Height && row < len(g.Bitmap); row++ {
		bits := g.Bitmap[row]
		for col := 0; col < g.Width; col++ {
			if bits&(1<<uint(g.Width-1-col)) != 0 {
				dst.Set(originX+col, originY+row, fg)
			} else if bg != nil {
				dst.Set(originX+col, originY+row, bg)
			}
		}
	}
}

// DrawText implements [Font].
func (f *BDF) DrawText(dst draw.Image, text string, x, y int, fg, bg color.Color) int {
	cursor := x
	for _, r := range text {
		g, ok := f.Lookup(r)
		if !ok {
			continue
		}
		f.drawGlyph(dst, g, cursor, y, fg, bg)
		cursor += g.Advance
	}
	return cursor - x
}

// MeasureText implements [Font].
func (f *BDF) MeasureText(text string) int {
	var width int
	for _, r := range text {
		if g, ok := f.Lookup(r); ok {
			width += g.Advance
		}
	}
	return width
}

// Load opens and parses a BDF font file. On any failure it logs the problem
// and returns the built-in fallback font so callers always get a usable
// renderer.
func Load(path string) Font {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("bdf: loading %s: %v, using fallback font", path, err)
		return NewFallback()
	}
	defer f.Close()

	font, err := Parse(f)
	if err != nil {
		log.Printf("bdf: parsing %s: %v, using fallback font", path, err)
		return NewFallback()
	}
	return font
}
