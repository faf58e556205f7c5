// Command wienuhr-sim renders the word clock in a desktop window instead of
// driving panel hardware. The default view shows the composed framebuffer;
// with -panel it applies the driver's one bit per channel output stage so the
// window matches what the matrix would actually light up.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/wienuhr/matrix/bdf"
	"github.com/wienuhr/matrix/bmp"
	"github.com/wienuhr/matrix/clock"
	"github.com/wienuhr/matrix/compose"
	"github.com/wienuhr/matrix/internal/config"
	"github.com/wienuhr/matrix/pixel"
	"github.com/wienuhr/matrix/wienerzeit"
)

type game struct {
	cfg    *config.Config
	screen *compose.Screen
	source clock.Source
	panel  bool

	buf       *pixel.Image
	img       *image.RGBA
	fbImg     *ebiten.Image
	lastLines []string
	lastMonth int
}

func (g *game) Update() error {
	now := g.source.Now()
	lines := wienerzeit.Lines(now.Hour, now.Minute)
	if equalLines(lines, g.lastLines) {
		return nil
	}
	g.lastLines = lines

	if now.Month != g.lastMonth {
		g.lastMonth = now.Month
		g.screen.SetBackground(loadBackground(g.cfg.Assets.ImagePath, now.Month))
	}
	g.screen.SetBrightness(g.cfg.Display.Brightness(now.Hour))
	g.screen.Lines = lines
	g.screen.Render(g.buf)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	w, h := g.buf.Rect.Dx(), g.buf.Rect.Dy()
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, w, h))
		g.fbImg = ebiten.NewImage(w, h)
	}

	dst := g.img.Pix
	for i, v := range g.buf.Pix {
		r, gg, b := pixel.RGB565{V: v}.Components()
		if g.panel {
			r, gg, b = threshold(r), threshold(gg), threshold(b)
		}
		j := i * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xff
	}

	g.fbImg.WritePixels(dst)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.buf.Rect.Dx(), g.buf.Rect.Dy()
}

// threshold collapses a component to the single bit the shift registers see.
func threshold(v uint8) uint8 {
	if v > 127 {
		return 0xff
	}
	return 0
}

// fixedSource reports a frozen wall-clock time.
type fixedSource struct {
	hour, minute int
}

func (s fixedSource) Now() clock.Components {
	t := time.Now()
	return clock.Components{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   s.hour,
		Minute: s.minute,
	}
}

func parseTime(s string) (clock.Source, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return nil, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return nil, fmt.Errorf("invalid minute in %q", s)
	}
	return fixedSource{hour: hour, minute: minute}, nil
}

func loadBackground(dir string, month int) *bmp.Image {
	path := filepath.Join(dir, wienerzeit.BackgroundFile(month))
	f, err := os.Open(path)
	if err != nil {
		log.Printf("background %s: %v", path, err)
		return nil
	}
	defer f.Close()

	img, err := bmp.Decode(f)
	if err != nil {
		log.Printf("background %s: %v", path, err)
		return nil
	}
	return img
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func main() {
	configFlag := flag.String("config", "", "Configuration file (JSON)")
	scaleFlag := flag.Int("scale", 8, "Window scale factor")
	panelFlag := flag.Bool("panel", false, "Apply the one bit per channel panel output stage")
	timeFlag := flag.String("time", "", "Frozen clock time as HH:MM (default: system clock)")
	flag.Parse()

	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			fatal(err)
		}
	}

	var source clock.Source = clock.System{}
	if *timeFlag != "" {
		var err error
		if source, err = parseTime(*timeFlag); err != nil {
			fatal(err)
		}
	}

	screen := compose.New(bdf.Load(cfg.Assets.FontPath))
	screen.TextX = cfg.Display.TextX
	screen.TextY = cfg.Display.TextY
	screen.Scale = cfg.Display.TextScale
	screen.LineSpacing = cfg.Display.LineSpacing
	screen.Color = color.RGBA{
		R: uint8(cfg.Display.TextColor >> 16),
		G: uint8(cfg.Display.TextColor >> 8),
		B: uint8(cfg.Display.TextColor),
		A: 0xff,
	}

	g := &game{
		cfg:       cfg,
		screen:    screen,
		source:    source,
		panel:     *panelFlag,
		buf:       pixel.NewImage(cfg.Panel.Width, cfg.Panel.Height),
		lastMonth: -1,
	}

	scale := *scaleFlag
	if scale < 1 {
		scale = 1
	}
	ebiten.SetWindowTitle("wienuhr")
	ebiten.SetWindowSize(cfg.Panel.Width*scale, cfg.Panel.Height*scale)
	ebiten.SetTPS(10)
	if err := ebiten.RunGame(g); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
