package matrix

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"sync/atomic"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/wienuhr/matrix/pixel"
)

const (
	// DefaultRowHold is the per-row display duration during a scan pass.
	// At 100µs a 32-row half-height panel completes a frame in ~3.2ms plus
	// shift time, keeping the full-frame rate above the flicker threshold.
	DefaultRowHold = 100 * time.Microsecond

	// DefaultBrightness is the initial brightness level.
	DefaultBrightness = 255
)

// Pins is the HUB75 output line set.
//
// The E address line is only required for panels with more than 16 rows per
// half plane (i.e. panels taller than 32 pixels).
type Pins struct {
	R1, G1, B1 gpio.PinOut // color data, upper half
	R2, G2, B2 gpio.PinOut // color data, lower half
	A, B, C, D gpio.PinOut // row address
	E          gpio.PinOut // row address, tall panels only
	CLK        gpio.PinOut // shift clock
	LAT        gpio.PinOut // latch / strobe
	OE         gpio.PinOut // output enable, active low
}

// Config is the HUB75 driver configuration.
type Config struct {
	// Width of the panel in pixels.
	Width int

	// Height of the panel in pixels. Must be even; the panel drives the
	// upper and lower half planes simultaneously.
	Height int

	// Pins is the output line assignment.
	Pins Pins

	// RowHold is the per-row display duration, DefaultRowHold when zero.
	RowHold time.Duration

	// Brightness is the initial brightness level, DefaultBrightness when
	// zero.
	Brightness uint8
}

// Validate checks the panel dimensions and pin assignment. All errors wrap
// [ErrConfig]; a configuration that does not validate must prevent the scan
// loop from starting since it cannot be corrected at runtime.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 || c.Height%2 != 0 {
		return fmt.Errorf("%w: invalid panel size %dx%d", ErrConfig, c.Width, c.Height)
	}
	rows := c.Height / 2
	if rows > 32 {
		return fmt.Errorf("%w: %d rows per half exceeds the 5-bit address space", ErrConfig, rows)
	}
	required := map[string]gpio.PinOut{
		"R1": c.Pins.R1, "G1": c.Pins.G1, "B1": c.Pins.B1,
		"R2": c.Pins.R2, "G2": c.Pins.G2, "B2": c.Pins.B2,
		"A": c.Pins.A, "B": c.Pins.B, "C": c.Pins.C, "D": c.Pins.D,
		"CLK": c.Pins.CLK, "LAT": c.Pins.LAT, "OE": c.Pins.OE,
	}
	if rows > 16 {
		required["E"] = c.Pins.E
	}
	for name, pin := range required {
		if pin == nil || pin == gpio.INVALID {
			return fmt.Errorf("%w: missing or invalid %s pin", ErrConfig, name)
		}
	}
	return nil
}

// HUB75 is a software scan-out driver for HUB75 RGB LED matrix panels.
//
// The driver owns the output lines and a bound framebuffer. Refresh performs
// one full scan pass and is meant to be called continuously; content updates
// may happen concurrently by drawing into the bound buffer or by swapping in
// a freshly composed one with SetBuffer.
type HUB75 struct {
	pins    Pins
	addr    []gpio.PinOut
	width   int
	height  int
	rows    int
	rowHold time.Duration

	brightness atomic.Int32
	buf        atomic.Pointer[pixel.Image]

	// err records the first failed line write of a scan pass. Refresh is
	// only ever called from the scan loop, so no synchronization is needed.
	err error
}

// NewHUB75 validates the configuration and returns a driver with a cleared
// framebuffer bound, the panel output disabled and all control lines low.
func NewHUB75(config *Config) (*HUB75, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	d := &HUB75{
		pins:    config.Pins,
		width:   config.Width,
		height:  config.Height,
		rows:    config.Height / 2,
		rowHold: config.RowHold,
	}
	if d.rowHold == 0 {
		d.rowHold = DefaultRowHold
	}

	d.addr = []gpio.PinOut{config.Pins.A, config.Pins.B, config.Pins.C, config.Pins.D}
	if d.rows > 16 {
		d.addr = append(d.addr, config.Pins.E)
	}

	level := config.Brightness
	if level == 0 {
		level = DefaultBrightness
	}
	d.brightness.Store(int32(level))
	d.buf.Store(pixel.NewImage(d.width, d.height))

	// Safe idle state: output disabled, clock and latch low.
	d.out(d.pins.OE, gpio.High)
	d.out(d.pins.LAT, gpio.Low)
	d.out(d.pins.CLK, gpio.Low)
	if d.err != nil {
		err := d.err
		d.err = nil
		return nil, err
	}
	if debug {
		log.Printf("matrix: %s, %d address lines, row hold %s", d, len(d.addr), d.rowHold)
	}
	return d, nil
}

func (d *HUB75) String() string {
	return fmt.Sprintf("HUB75 %dx%d", d.width, d.height)
}

// Close disables the panel output.
func (d *HUB75) Close() error {
	d.out(d.pins.OE, gpio.High)
	err := d.err
	d.err = nil
	return err
}

// Buffer returns the currently bound framebuffer.
func (d *HUB75) Buffer() *pixel.Image {
	return d.buf.Load()
}

// SetBuffer atomically binds a framebuffer; the next scan pass reads it.
// The buffer must match the panel dimensions.
func (d *HUB75) SetBuffer(buf *pixel.Image) error {
	if size := buf.Bounds().Size(); size.X != d.width || size.Y != d.height {
		return fmt.Errorf("%w: buffer size %s does not match %dx%d panel",
			ErrConfig, size, d.width, d.height)
	}
	d.buf.Store(buf)
	return nil
}

// SetBrightness stores a new brightness level. It takes effect on the next
// scan step that reads it; changes are deliberately not synchronized to frame
// boundaries.
func (d *HUB75) SetBrightness(level uint8) {
	d.brightness.Store(int32(level))
}

// Brightness returns the current brightness level.
func (d *HUB75) Brightness() uint8 {
	return uint8(d.brightness.Load())
}

func (d *HUB75) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.width, d.height)
}

func (d *HUB75) ColorModel() color.Model {
	return pixel.RGB565Model
}

func (d *HUB75) At(x, y int) color.Color {
	return d.buf.Load().At(x, y)
}

func (d *HUB75) Set(x, y int, c color.Color) {
	d.buf.Load().Set(x, y, c)
}

// Clear blanks the bound framebuffer.
func (d *HUB75) Clear() {
	d.buf.Load().Clear()
}

// out performs a line write, keeping the first error for the end of the scan
// pass. Line writes on embedded GPIO effectively cannot fail, so the hot path
// stays branch-light rather than propagating per write.
func (d *HUB75) out(p gpio.PinOut, l gpio.Level) {
	if err := p.Out(l); err != nil && d.err == nil {
		d.err = err
	}
}

// selectRow drives the row address lines with the binary encoding of row.
func (d *HUB75) selectRow(row int) {
	for i, pin := range d.addr {
		d.out(pin, gpio.Level(row>>uint(i)&1 == 1))
	}
}

func (d *HUB75) clockPulse() {
	d.out(d.pins.CLK, gpio.High)
	d.out(d.pins.CLK, gpio.Low)
}

func (d *HUB75) latchPulse() {
	d.out(d.pins.LAT, gpio.High)
	d.out(d.pins.LAT, gpio.Low)
}

// unpack565 expands a packed 5-6-5 value to three 8-bit components.
func unpack565(v uint16) (r, g, b uint32) {
	return uint32(v>>11&0x1f) << 3, uint32(v>>5&0x3f) << 2, uint32(v&0x1f) << 3
}

// Refresh scans out the bound framebuffer once, row by row. This is the
// steady-state operating mode: call it continuously, any stall is visible as
// flicker or a dark panel.
//
// Each component is scaled by brightness (value×level/256, truncating) and
// thresholded at 127: the panel is driven with one bit per channel, there is
// no grayscale modulation.
func (d *HUB75) Refresh() error {
	var (
		buf   = d.buf.Load()
		level = uint32(d.brightness.Load())
		lower = d.rows * d.width
	)
	for row := 0; row < d.rows; row++ {
		d.selectRow(row)
		d.out(d.pins.OE, gpio.High) // no output while shifting

		base := row * d.width
		for col := 0; col < d.width; col++ {
			r1, g1, b1 := unpack565(buf.Pix[base+col])
			r2, g2, b2 := unpack565(buf.Pix[lower+base+col])

			d.out(d.pins.R1, gpio.Level(r1*level>>8 > 127))
			d.out(d.pins.G1, gpio.Level(g1*level>>8 > 127))
			d.out(d.pins.B1, gpio.Level(b1*level>>8 > 127))
			d.out(d.pins.R2, gpio.Level(r2*level>>8 > 127))
			d.out(d.pins.G2, gpio.Level(g2*level>>8 > 127))
			d.out(d.pins.B2, gpio.Level(b2*level>>8 > 127))

			d.clockPulse()
		}

		d.latchPulse()
		d.out(d.pins.OE, gpio.Low)
		time.Sleep(d.rowHold)
	}

	err := d.err
	d.err = nil
	return err
}

// Interface check.
var _ Display = (*HUB75)(nil)
