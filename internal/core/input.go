package core

import (
	"fmt"
	"sync"
)

// Switches is a snapshot of the digital input lines. Lines are active-low:
// a cleared bit means the switch on that line is pressed.
type Switches uint8

// MaxLines is the number of input lines a Switches snapshot can carry.
const MaxLines = 8

// Idle returns the snapshot of a bank with the given number of lines and
// nothing pressed (all line bits set).
func Idle(lines int) Switches {
	return Switches(uint16(1)<<lines - 1)
}

// Active reports whether the switch on the given line is pressed.
func (s Switches) Active(line int) bool {
	return s&(1<<line) == 0
}

// Press returns the snapshot with the given line pulled low.
func (s Switches) Press(line int) Switches {
	return s &^ (1 << line)
}

func (s Switches) String() string {
	return fmt.Sprintf("%08b", uint8(s))
}

// SwitchBank emulates a bank of momentary switches for front ends that only
// deliver key-press events (terminals have no key-up). A press keeps its
// line low for a fixed number of reads, then the line floats high again.
// It is safe for concurrent use: the tick goroutine peeks while the main
// loop reads.
type SwitchBank struct {
	mu   sync.Mutex
	held []int
	hold int
}

// NewSwitchBank creates a bank with the given number of lines.
// hold is how many ReadSwitches calls a press stays active (minimum 1).
func NewSwitchBank(lines, hold int) *SwitchBank {
	lines = Clamp(lines, 1, MaxLines)
	return &SwitchBank{
		held: make([]int, lines),
		hold: Max(hold, 1),
	}
}

// Lines returns the number of lines in the bank.
func (b *SwitchBank) Lines() int {
	return len(b.held)
}

// Press activates a line. Unknown lines are ignored.
func (b *SwitchBank) Press(line int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if line < 0 || line >= len(b.held) {
		return
	}
	b.held[line] = b.hold
}

// ReleaseAll returns every line to idle.
func (b *SwitchBank) ReleaseAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.held {
		b.held[i] = 0
	}
}

// Peek returns the current snapshot without consuming held presses.
func (b *SwitchBank) Peek() Switches {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.snapshot()
}

// ReadSwitches returns the current snapshot and ages every held press by one read.
func (b *SwitchBank) ReadSwitches() Switches {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.snapshot()
	for i := range b.held {
		if b.held[i] > 0 {
			b.held[i]--
		}
	}
	return s
}

func (b *SwitchBank) snapshot() Switches {
	s := Idle(len(b.held))
	for i, h := range b.held {
		if h > 0 {
			s = s.Press(i)
		}
	}
	return s
}
