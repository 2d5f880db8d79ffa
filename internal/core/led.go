package core

import (
	"sync/atomic"
	"time"
)

// LED is a single-line output indicator. Writes are lock-free so the tick
// goroutine can pulse it while a render loop samples it. Because a pulse
// may last only microseconds, the LED also remembers when it was last
// switched on, letting front ends show it lit for a visible afterglow.
type LED struct {
	on     atomic.Bool
	lastOn atomic.Int64
	pulses atomic.Int64
	now    func() time.Time
}

// NewLED creates an LED that is off.
func NewLED() *LED {
	return &LED{now: time.Now}
}

// Set drives the output line.
func (l *LED) Set(on bool) {
	if on {
		if !l.on.Swap(true) {
			l.pulses.Add(1)
		}
		l.lastOn.Store(l.now().UnixNano())
		return
	}
	l.on.Store(false)
}

// On reports the current line level.
func (l *LED) On() bool {
	return l.on.Load()
}

// Pulses returns how many off-to-on transitions the line has seen.
func (l *LED) Pulses() int64 {
	return l.pulses.Load()
}

// Lit reports whether the LED is on or was on within the afterglow window.
func (l *LED) Lit(afterglow time.Duration) bool {
	if l.on.Load() {
		return true
	}
	last := l.lastOn.Load()
	return last != 0 && l.now().Sub(time.Unix(0, last)) < afterglow
}
