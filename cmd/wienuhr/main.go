// Command wienuhr drives a HUB75 RGB LED matrix as a Viennese word clock.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/wienuhr/matrix"
	"github.com/wienuhr/matrix/bdf"
	"github.com/wienuhr/matrix/bmp"
	"github.com/wienuhr/matrix/clock"
	"github.com/wienuhr/matrix/compose"
	"github.com/wienuhr/matrix/internal/config"
	"github.com/wienuhr/matrix/pixel"
	"github.com/wienuhr/matrix/wienerzeit"
)

func main() {
	configFlag := flag.String("config", "", "Configuration file (JSON)")
	gpioFlag := flag.String("gpio", "periph", "GPIO backend: periph or cdev")
	onceFlag := flag.Bool("once", false, "Render a single frame and exit")
	flag.Parse()

	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			fatal(err)
		}
	}

	pins, err := resolvePins(*gpioFlag, cfg.Panel)
	if err != nil {
		fatal(err)
	}

	output, err := matrix.NewHUB75(&matrix.Config{
		Width:      cfg.Panel.Width,
		Height:     cfg.Panel.Height,
		Pins:       pins,
		RowHold:    time.Duration(cfg.Panel.RowHoldUs) * time.Microsecond,
		Brightness: uint8(cfg.Panel.Brightness),
	})
	if err != nil {
		fatal(err)
	}
	defer output.Close()

	scanner := matrix.NewScanner(output, cfg.Panel.ScanRate)
	scanner.Start()
	go scanner.Run()

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

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	interval := time.Duration(cfg.Display.UpdateInterval) * time.Second
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var (
		source    = clock.System{}
		back      = pixel.NewImage(cfg.Panel.Width, cfg.Panel.Height)
		spare     = pixel.NewImage(cfg.Panel.Width, cfg.Panel.Height)
		lastLines []string
		lastMonth int
	)

	update := func() {
		now := source.Now()
		lines := wienerzeit.Lines(now.Hour, now.Minute)
		if equalLines(lines, lastLines) {
			return
		}
		lastLines = lines

		if now.Month != lastMonth {
			lastMonth = now.Month
			screen.SetBackground(loadBackground(cfg.Assets.ImagePath, now.Month))
		}
		screen.SetBrightness(cfg.Display.Brightness(now.Hour))
		screen.Lines = lines

		screen.Render(back)
		if err := output.SetBuffer(back); err != nil {
			log.Printf("bind buffer: %v", err)
			return
		}
		back, spare = spare, back
	}

	update()
	if *onceFlag {
		scanner.Stop()
		return
	}

	for {
		select {
		case <-ticker.C:
			update()
		case s := <-sig:
			log.Printf("received %s, shutting down", s)
			scanner.Stop()
			output.Clear()
			return
		}
	}
}

// resolvePins maps the configured GPIO line offsets to driver pins using the
// selected backend.
func resolvePins(backend string, panel config.PanelConfig) (matrix.Pins, error) {
	var request func(offset int) (gpio.PinOut, error)
	switch backend {
	case "periph":
		if _, err := host.Init(); err != nil {
			return matrix.Pins{}, err
		}
		request = func(offset int) (gpio.PinOut, error) {
			if p := gpioreg.ByName(fmt.Sprintf("GPIO%d", offset)); p != nil {
				return p, nil
			}
			return nil, fmt.Errorf("no pin GPIO%d", offset)
		}
	case "cdev":
		request = func(offset int) (gpio.PinOut, error) {
			return matrix.RequestCdevPin(panel.Chip, offset)
		}
	default:
		return matrix.Pins{}, fmt.Errorf("unsupported GPIO backend %q", backend)
	}

	var pins matrix.Pins
	for name, target := range map[string]*gpio.PinOut{
		"R1": &pins.R1, "G1": &pins.G1, "B1": &pins.B1,
		"R2": &pins.R2, "G2": &pins.G2, "B2": &pins.B2,
		"A": &pins.A, "B": &pins.B, "C": &pins.C, "D": &pins.D, "E": &pins.E,
		"CLK": &pins.CLK, "LAT": &pins.LAT, "OE": &pins.OE,
	} {
		offset, ok := panel.Pins[name]
		if !ok {
			continue
		}
		p, err := request(offset)
		if err != nil {
			return matrix.Pins{}, fmt.Errorf("pin %s: %w", name, err)
		}
		*target = p
	}
	return pins, nil
}

// loadBackground reads the month's background image, or nil when the file is
// missing or broken. The clock keeps running over a black background.
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

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
