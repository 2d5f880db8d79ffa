package game

import "sync"

// Status is the game/score state machine's state.
type Status int

const (
	StatusRunning Status = iota
	StatusLost
	StatusWon
)

func (s Status) String() string {
	switch s {
	case StatusLost:
		return "lost"
	case StatusWon:
		return "won"
	default:
		return "running"
	}
}

// Terminal reports whether the status ends the game.
func (s Status) Terminal() bool {
	return s != StatusRunning
}

// State tracks score and losses. It is written by the tick goroutine
// through the physics engine and read by the render loop, so every access
// is locked. Once terminal, further events are ignored.
type State struct {
	mu        sync.Mutex
	score     int
	losses    int
	target    int
	threshold int
	status    Status
}

// Snapshot is a consistent copy of the state.
type Snapshot struct {
	Score  int
	Losses int
	Status Status
}

// NewState creates a running state that is won at target points and lost
// at threshold losses.
func NewState(target, threshold int) *State {
	return &State{
		target:    max(target, 1),
		threshold: max(threshold, 1),
	}
}

// AddPoint records a score. It returns false if the game already ended.
func (s *State) AddPoint() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.Terminal() {
		return false
	}
	s.score++
	if s.score >= s.target {
		s.status = StatusWon
	}
	return true
}

// AddLoss records a miss. It returns false if the game already ended.
func (s *State) AddLoss() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.Terminal() {
		return false
	}
	s.losses++
	if s.losses >= s.threshold {
		s.status = StatusLost
	}
	return true
}

// Snapshot returns the current values.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{Score: s.score, Losses: s.losses, Status: s.status}
}

// Score returns the current score.
func (s *State) Score() int {
	return s.Snapshot().Score
}

// Status returns the current status.
func (s *State) Status() Status {
	return s.Snapshot().Status
}
