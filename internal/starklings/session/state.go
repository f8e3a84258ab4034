package session

import "sync"

// State is shared between the coordinator and the shell. Every access is a
// short critical section.
type State struct {
	mu      sync.Mutex
	hint    string
	hasHint bool
	quit    bool
}

// SetHint publishes the hint of the exercise that stopped the last pass.
func (s *State) SetHint(hint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hint = hint
	s.hasHint = true
}

// Hint returns the current hint, if any.
func (s *State) Hint() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hint, s.hasHint
}

// RequestQuit asks the coordinator to end the session.
func (s *State) RequestQuit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quit = true
}

// QuitRequested reports whether the user asked to quit.
func (s *State) QuitRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quit
}
