package session

import (
	"sync"
	"testing"
)

func TestStateHint(t *testing.T) {
	var s State
	if _, ok := s.Hint(); ok {
		t.Fatal("new state should have no hint")
	}
	s.SetHint("H_B")
	if hint, ok := s.Hint(); !ok || hint != "H_B" {
		t.Errorf("Hint() = %q, %v; want H_B, true", hint, ok)
	}
	s.SetHint("")
	if hint, ok := s.Hint(); !ok || hint != "" {
		t.Errorf("empty hint should still be set, got %q, %v", hint, ok)
	}
}

func TestStateConcurrentAccess(t *testing.T) {
	var s State
	var wg sync.WaitGroup
	hints := []string{"H_A", "H_B", "H_C"}

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.SetHint(hints[i%len(hints)])
		}(i)
		go func() {
			defer wg.Done()
			if hint, ok := s.Hint(); ok && hint != "H_A" && hint != "H_B" && hint != "H_C" {
				t.Errorf("torn hint %q", hint)
			}
		}()
	}
	wg.Wait()

	s.RequestQuit()
	if !s.QuitRequested() {
		t.Error("QuitRequested() = false after RequestQuit")
	}
}
