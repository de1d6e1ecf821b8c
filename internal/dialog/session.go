package dialog

import "sync"

type State int

const (
	StateConstructed State = iota
	StateShown
	StateClosed
)

type Reason int

const (
	ReasonNone Reason = iota
	ByButton
	ByTimer
	ByClose
)

func (r Reason) String() string {
	switch r {
	case ByButton:
		return "button"
	case ByTimer:
		return "timer"
	case ByClose:
		return "close"
	default:
		return "none"
	}
}

// session tracks one dialog from construction to close. Closed is
// terminal; only the first dismissal wins.
type session struct {
	mu        sync.Mutex
	state     State
	reason    Reason
	stopTimer func()
	done      chan struct{}
}

func newSession() *session {
	return &session{done: make(chan struct{})}
}

func (s *session) markShown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateConstructed {
		s.state = StateShown
	}
}

// armTimer records how to stop the pending auto-close timer.
func (s *session) armTimer(stop func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		stop()
		return
	}
	s.stopTimer = stop
}

// dismiss moves the session to Closed, stopping any timer first. It
// reports false when the session was already closed.
func (s *session) dismiss(r Reason) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return false
	}
	if s.stopTimer != nil {
		s.stopTimer()
		s.stopTimer = nil
	}
	s.state = StateClosed
	s.reason = r
	close(s.done)
	return true
}

func (s *session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *session) Reason() Reason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}

func (s *session) Done() <-chan struct{} { return s.done }
