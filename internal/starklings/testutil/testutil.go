// Package testutil provides fakes shared by the starklings package tests.
package testutil

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dimasma0305/starklings/internal/starklings/exercise"
)

// PendingSource is an exercise body that still carries the marker.
const PendingSource = "// " + exercise.DefaultMarker + "\n\nfn main() {}\n"

// DoneSource is an exercise body without the marker.
const DoneSource = "fn main() {}\n"

// WriteExercise writes an exercise source under dir and returns the exercise.
func WriteExercise(t testing.TB, dir, name string, mode exercise.Mode, done bool) *exercise.Exercise {
	t.Helper()
	p := filepath.Join(dir, name+".cairo")
	SetDone(t, p, done)
	return exercise.New(name, p, mode, "H_"+name)
}

// SetDone rewrites the source at path with or without the marker.
func SetDone(t testing.TB, path string, done bool) {
	t.Helper()
	src := PendingSource
	if done {
		src = DoneSource
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(src), 0600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// Call is one recorded toolchain invocation.
type Call struct {
	Name string
	Mode exercise.Mode
}

// Toolchain is a scripted toolchain.Runner. Exercises listed in Failing
// fail; every other exercise succeeds with "output of <name>".
type Toolchain struct {
	mu      sync.Mutex
	calls   []Call
	failing map[string]bool
	// OnCall runs before the result is returned, outside the lock.
	OnCall func(ex *exercise.Exercise)
}

// NewToolchain creates a toolchain failing the named exercises.
func NewToolchain(failing ...string) *Toolchain {
	tc := &Toolchain{failing: make(map[string]bool)}
	for _, name := range failing {
		tc.failing[name] = true
	}
	return tc
}

// SetFailing changes whether an exercise fails.
func (tc *Toolchain) SetFailing(name string, failing bool) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.failing[name] = failing
}

// Calls returns the exercise names invoked so far, in order.
func (tc *Toolchain) Calls() []string {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	names := make([]string, len(tc.calls))
	for i, c := range tc.calls {
		names[i] = c.Name
	}
	return names
}

// ModeCalls returns the recorded calls with their mode.
func (tc *Toolchain) ModeCalls() []Call {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return append([]Call(nil), tc.calls...)
}

// Reset forgets the recorded calls.
func (tc *Toolchain) Reset() {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.calls = nil
}

// Run implements toolchain.Runner.
func (tc *Toolchain) Run(ctx context.Context, ex *exercise.Exercise) (string, error) {
	return tc.invoke(ctx, ex, exercise.ModeCompile)
}

// Test implements toolchain.Runner.
func (tc *Toolchain) Test(ctx context.Context, ex *exercise.Exercise) (string, error) {
	return tc.invoke(ctx, ex, exercise.ModeTest)
}

func (tc *Toolchain) invoke(_ context.Context, ex *exercise.Exercise, mode exercise.Mode) (string, error) {
	tc.mu.Lock()
	tc.calls = append(tc.calls, Call{Name: ex.Name, Mode: mode})
	failing := tc.failing[ex.Name]
	hook := tc.OnCall
	tc.mu.Unlock()

	if hook != nil {
		hook(ex)
	}
	if failing {
		return "", errors.New("error: compilation of " + ex.Name + " failed")
	}
	return "output of " + ex.Name, nil
}

// Buffer is a bytes.Buffer safe for concurrent writers.
type Buffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
