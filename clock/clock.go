// Package clock defines the narrow time-source interface the display
// consumes. The display does not care whether an RTC, a network-synced clock
// or the operating system supplied the components.
package clock

import "time"

// Components is one decoded wall-clock reading.
type Components struct {
	Year    int
	Month   int
	Day     int
	Hour    int
	Minute  int
	Second  int
	Weekday int // 0 = Sunday
}

// Source provides wall-clock readings.
type Source interface {
	Now() Components
}

// System reads the operating system clock.
type System struct{}

func (System) Now() Components {
	t := time.Now()
	return Components{
		Year:    t.Year(),
		Month:   int(t.Month()),
		Day:     t.Day(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
		Weekday: int(t.Weekday()),
	}
}

// Interface check.
var _ Source = System{}
