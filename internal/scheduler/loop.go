package scheduler

import "context"

// Loop is the body of the cooperative main loop.
type Loop interface {
	// Poll runs before each wait: status text, input sampling.
	Poll()
	// Frame runs after each redraw signal: commit and repaint.
	// It returns true once the loop should end.
	Frame() bool
}

// RunLoop alternates Poll, Wait and Frame until Frame reports the end,
// the context is canceled or the scheduler stops. The only suspension
// point is Wait.
func RunLoop(ctx context.Context, s *Scheduler, l Loop) error {
	for {
		l.Poll()
		if err := s.Wait(ctx); err != nil {
			return err
		}
		if l.Frame() {
			return nil
		}
	}
}
