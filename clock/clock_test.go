package clock

import (
	"testing"
	"time"
)

func TestSystemNow(t *testing.T) {
	before := time.Now()
	c := System{}.Now()
	after := time.Now()

	if c.Year < before.Year() || c.Year > after.Year() {
		t.Errorf("Year = %d, want between %d and %d", c.Year, before.Year(), after.Year())
	}
	if c.Month < 1 || c.Month > 12 {
		t.Errorf("Month = %d, want 1..12", c.Month)
	}
	if c.Day < 1 || c.Day > 31 {
		t.Errorf("Day = %d, want 1..31", c.Day)
	}
	if c.Hour < 0 || c.Hour > 23 {
		t.Errorf("Hour = %d, want 0..23", c.Hour)
	}
	if c.Minute < 0 || c.Minute > 59 {
		t.Errorf("Minute = %d, want 0..59", c.Minute)
	}
	if c.Second < 0 || c.Second > 60 {
		t.Errorf("Second = %d, want 0..60", c.Second)
	}
	if c.Weekday < 0 || c.Weekday > 6 {
		t.Errorf("Weekday = %d, want 0..6", c.Weekday)
	}
}
