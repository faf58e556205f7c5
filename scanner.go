package matrix

import (
	"log"
	"runtime"
	"sync/atomic"
	"time"
)

// DefaultScanRate is the target full-frame refresh rate in Hz.
const DefaultScanRate = 100

// Scanner keeps a display refreshed at a steady cadence.
//
// It supports two scheduling models: a dedicated goroutine calling [Scanner.Run],
// or a cooperative loop calling [Scanner.Update] every iteration. Content
// updates run independently and must never stall the scan cadence.
type Scanner struct {
	display  Display
	interval time.Duration
	running  atomic.Bool
	last     time.Time
}

// NewScanner returns a stopped scanner targeting rate full frames per second,
// [DefaultScanRate] when zero.
func NewScanner(d Display, rate int) *Scanner {
	if rate <= 0 {
		rate = DefaultScanRate
	}
	return &Scanner{
		display:  d,
		interval: time.Second / time.Duration(rate),
	}
}

// Start enables refreshing.
func (s *Scanner) Start() { s.running.Store(true) }

// Stop disables refreshing. A concurrent [Scanner.Run] returns.
func (s *Scanner) Stop() { s.running.Store(false) }

// Running reports whether the scanner is started.
func (s *Scanner) Running() bool { return s.running.Load() }

// Update refreshes the display once if the scanner is started and the
// refresh interval has elapsed. Call it as often as possible from a
// cooperative main loop.
func (s *Scanner) Update() error {
	if !s.running.Load() {
		return nil
	}
	now := time.Now()
	if now.Sub(s.last) < s.interval {
		return nil
	}
	s.last = now
	return s.display.Refresh()
}

// Run refreshes continuously on the calling goroutine until [Scanner.Stop].
// The goroutine is locked to its OS thread so the scan cadence does not
// compete with other goroutines for scheduling.
func (s *Scanner) Run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	s.running.Store(true)
	for s.running.Load() {
		if err := s.display.Refresh(); err != nil {
			// Line writes on embedded GPIO do not fail in practice; log
			// and keep scanning rather than going dark.
			log.Printf("matrix: refresh: %v", err)
		}
	}
}
