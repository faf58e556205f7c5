package matrix

import (
	"errors"
	"fmt"

	"github.com/warthog618/go-gpiocdev"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// CdevPin adapts a Linux GPIO character device line to [gpio.PinOut], for
// hosts where the gpiochip interface is available but no memory-mapped pin
// driver is. All HUB75 lines are plain outputs, so only Out is functional.
type CdevPin struct {
	line   *gpiocdev.Line
	chip   string
	offset int
}

// RequestCdevPin requests line offset on the named gpiochip as an output,
// initially low.
func RequestCdevPin(chip string, offset int) (*CdevPin, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("matrix: requesting %s line %d: %w", chip, offset, err)
	}
	return &CdevPin{line: line, chip: chip, offset: offset}, nil
}

func (p *CdevPin) String() string {
	return fmt.Sprintf("%s:%d", p.chip, p.offset)
}

func (p *CdevPin) Name() string {
	return p.String()
}

func (p *CdevPin) Number() int {
	return p.offset
}

func (p *CdevPin) Function() string {
	return "Out"
}

func (p *CdevPin) Halt() error {
	return p.line.SetValue(0)
}

func (p *CdevPin) Out(l gpio.Level) error {
	v := 0
	if l {
		v = 1
	}
	return p.line.SetValue(v)
}

func (p *CdevPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.New("matrix: PWM is not supported on character device lines")
}

// Close releases the line back to the kernel.
func (p *CdevPin) Close() error {
	return p.line.Close()
}

// Interface check.
var _ gpio.PinOut = (*CdevPin)(nil)
