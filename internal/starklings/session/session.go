// Package session runs a watch session: an initial verification pass, then
// re-verification on every relevant change until everything is done or the
// user quits.
package session

import (
	"context"
	"io"
	"time"

	"github.com/dimasma0305/starklings/internal/log"
	serrors "github.com/dimasma0305/starklings/internal/starklings/errors"
	"github.com/dimasma0305/starklings/internal/starklings/exercise"
	"github.com/dimasma0305/starklings/internal/starklings/ui"
	"github.com/dimasma0305/starklings/internal/starklings/verify"
	"github.com/dimasma0305/starklings/internal/starklings/watcher"
)

// DefaultPollTimeout bounds how long the coordinator waits for a change
// before it checks the quit flag again.
const DefaultPollTimeout = time.Second

// Outcome is how a session ended.
type Outcome int

const (
	// Unfinished means the user quit or the session was cancelled.
	Unfinished Outcome = iota
	// Finished means every exercise is done.
	Finished
)

func (o Outcome) String() string {
	if o == Finished {
		return "finished"
	}
	return "unfinished"
}

// Verifier is the part of verify.Verifier the session drives.
type Verifier interface {
	Verify(ctx context.Context, exercises []*exercise.Exercise, progress ui.Progress) error
}

// Options configures a Session.
type Options struct {
	// Extensions of files whose changes trigger a pass.
	Extensions []string
	// PollTimeout defaults to DefaultPollTimeout.
	PollTimeout time.Duration
	// Input feeds the shell. Nil disables the shell.
	Input io.Reader
}

// Session coordinates the verifier, the change source and the shell.
type Session struct {
	exercises []*exercise.Exercise
	verifier  Verifier
	source    watcher.Source
	ui        *ui.UI
	opts      Options
	state     *State
}

// New creates a session over exercises in manifest order.
func New(exercises []*exercise.Exercise, v Verifier, source watcher.Source, u *ui.UI, opts Options) *Session {
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = DefaultPollTimeout
	}
	return &Session{
		exercises: exercises,
		verifier:  v,
		source:    source,
		ui:        u,
		opts:      opts,
		state:     &State{},
	}
}

// State exposes the state shared with the shell.
func (s *Session) State() *State {
	return s.state
}

// Run blocks until every exercise is done, the user quits or ctx is
// cancelled. A quit is noticed within one poll timeout plus any pass in
// flight.
func (s *Session) Run(ctx context.Context) (Outcome, error) {
	s.ui.Reset()
	err := s.verifier.Verify(ctx, s.exercises, ui.Progress{Total: len(s.exercises)})
	if err == nil {
		return Finished, nil
	}
	failed, ok := verify.FailedExercise(err)
	if !ok {
		return Unfinished, err
	}
	s.state.SetHint(failed.Hint)

	if s.opts.Input != nil {
		s.ui.Println(Welcome)
		// never joined; it ends on quit or end of input
		go NewShell(s.opts.Input, s.ui.Writer(), s.state).Run()
	}

	for {
		ev, err := s.source.Next(s.opts.PollTimeout)
		switch {
		case err == nil:
			finished, err := s.handle(ctx, ev)
			if err != nil {
				return Unfinished, err
			}
			if finished {
				return Finished, nil
			}
		case serrors.Is(err, watcher.ErrTimeout):
		case serrors.Is(err, watcher.ErrClosed):
			return Unfinished, err
		default:
			log.Error("watch error: %v", err)
		}

		if s.state.QuitRequested() || ctx.Err() != nil {
			return Unfinished, nil
		}
	}
}

func (s *Session) handle(ctx context.Context, ev watcher.Event) (bool, error) {
	if !ev.Actionable(s.opts.Extensions) {
		log.Debug("ignoring %s event for %s", ev.Kind, ev.Path)
		return false, nil
	}

	seq := Reorder(s.exercises, canonical(ev.Path), (*exercise.Exercise).LooksDone)
	progress := ui.Progress{Done: s.doneOutside(seq), Total: len(s.exercises)}

	s.ui.Reset()
	err := s.verifier.Verify(ctx, seq, progress)
	if err == nil {
		return true, nil
	}
	failed, ok := verify.FailedExercise(err)
	if !ok {
		return false, err
	}
	s.state.SetHint(failed.Hint)
	return false, nil
}

// doneOutside counts done exercises that the pass will not verify again.
func (s *Session) doneOutside(seq []*exercise.Exercise) int {
	inSeq := make(map[*exercise.Exercise]bool, len(seq))
	for _, ex := range seq {
		inSeq[ex] = true
	}
	n := 0
	for _, ex := range s.exercises {
		if !inSeq[ex] && ex.LooksDone() {
			n++
		}
	}
	return n
}
