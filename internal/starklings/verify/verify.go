// Package verify runs exercises through the toolchain in order and stops at
// the first one that is not done.
package verify

import (
	"context"
	"fmt"
	"time"

	"github.com/dimasma0305/starklings/internal/log"
	serrors "github.com/dimasma0305/starklings/internal/starklings/errors"
	"github.com/dimasma0305/starklings/internal/starklings/exercise"
	"github.com/dimasma0305/starklings/internal/starklings/history"
	"github.com/dimasma0305/starklings/internal/starklings/toolchain"
	"github.com/dimasma0305/starklings/internal/starklings/ui"
)

// Kind classifies why a verification pass stopped.
type Kind int

const (
	// ToolchainFailure means the compiler or the tests failed.
	ToolchainFailure Kind = iota
	// StillPending means the toolchain succeeded but the marker is still in
	// the source.
	StillPending
)

func (k Kind) String() string {
	if k == StillPending {
		return "still pending"
	}
	return "toolchain failure"
}

// Failure is returned by Verify for the exercise that stopped the pass.
type Failure struct {
	Exercise *exercise.Exercise
	Kind     Kind
	Err      error
}

func (f *Failure) Error() string {
	// toolchain diagnostics were already printed in full
	if f.Err != nil && f.Kind == StillPending {
		return fmt.Sprintf("%s: %s: %v", f.Exercise.Name, f.Kind, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Exercise.Name, f.Kind)
}

func (f *Failure) Unwrap() []error {
	sentinel := serrors.ErrToolchainFailure
	if f.Kind == StillPending {
		sentinel = serrors.ErrStillPending
	}
	if f.Err == nil {
		return []error{sentinel}
	}
	return []error{sentinel, f.Err}
}

// FailedExercise extracts the failing exercise from a Verify error.
func FailedExercise(err error) (*exercise.Exercise, bool) {
	var f *Failure
	if serrors.As(err, &f) {
		return f.Exercise, true
	}
	return nil, false
}

// Recorder receives every attempt the verifier makes.
type Recorder interface {
	Record(a history.Attempt)
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithRecorder stores attempts, typically in the history database.
func WithRecorder(r Recorder) Option {
	return func(v *Verifier) { v.recorder = r }
}

// Verifier checks exercises against a toolchain.
type Verifier struct {
	runner   toolchain.Runner
	ui       *ui.UI
	recorder Recorder
	now      func() time.Time
}

// New creates a verifier printing to u.
func New(runner toolchain.Runner, u *ui.UI, opts ...Option) *Verifier {
	v := &Verifier{runner: runner, ui: u, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify checks exercises in order. It returns nil when every exercise is
// done, otherwise a *Failure for the first one that is not. Exercises after
// it are not attempted. Progress advances once per done exercise.
func (v *Verifier) Verify(ctx context.Context, exercises []*exercise.Exercise, progress ui.Progress) error {
	v.ui.Progress(progress)
	for _, ex := range exercises {
		if err := v.check(ctx, ex); err != nil {
			return err
		}
		progress.Done = min(progress.Done+1, progress.Total)
		v.ui.Progress(progress)
	}
	return nil
}

func (v *Verifier) invoke(ctx context.Context, ex *exercise.Exercise) (string, error) {
	switch ex.Mode {
	case exercise.ModeCompile:
		log.Debug("running %s", ex)
		return v.runner.Run(ctx, ex)
	case exercise.ModeTest:
		log.Debug("testing %s", ex)
		return v.runner.Test(ctx, ex)
	default:
		return "", fmt.Errorf("%w: unsupported mode %s", serrors.ErrToolchainFailure, ex.Mode)
	}
}

func (v *Verifier) check(ctx context.Context, ex *exercise.Exercise) error {
	start := v.now()
	output, err := v.invoke(ctx, ex)
	if err != nil {
		v.record(ex, history.OutcomeFailed, start)
		v.reportFailure(ex, err)
		return &Failure{Exercise: ex, Kind: ToolchainFailure, Err: err}
	}

	st, err := ex.State()
	if err != nil {
		v.record(ex, history.OutcomeFailed, start)
		log.Error("%v", err)
		return &Failure{Exercise: ex, Kind: StillPending, Err: err}
	}
	if st.Done() {
		v.record(ex, history.OutcomeDone, start)
		return nil
	}

	v.record(ex, history.OutcomePending, start)
	v.reportSuccess(ex, output)
	v.ui.PendingNotice(ex.MarkerText(), st.Context)
	return &Failure{Exercise: ex, Kind: StillPending}
}

// RunOne runs a single exercise and shows its output. The marker is not
// consulted.
func (v *Verifier) RunOne(ctx context.Context, ex *exercise.Exercise) error {
	start := v.now()
	output, err := v.invoke(ctx, ex)
	if err != nil {
		v.record(ex, history.OutcomeFailed, start)
		v.reportFailure(ex, err)
		return &Failure{Exercise: ex, Kind: ToolchainFailure, Err: err}
	}

	outcome := history.OutcomePending
	if ex.LooksDone() {
		outcome = history.OutcomeDone
	}
	v.record(ex, outcome, start)
	v.reportSuccess(ex, output)
	return nil
}

func (v *Verifier) reportFailure(ex *exercise.Exercise, err error) {
	action := "Compiling"
	if ex.Mode == exercise.ModeTest {
		action = "Testing"
	}
	log.Warn("%s of %s failed! Please try again. Here's the output:", action, ex)
	v.ui.Println(err.Error())
}

func (v *Verifier) reportSuccess(ex *exercise.Exercise, output string) {
	msg := "The code is compiling!"
	if ex.Mode == exercise.ModeTest {
		log.Success("Successfully tested %s!", ex)
		msg = "The code is compiling, and the tests pass!"
	} else {
		log.Success("Successfully ran %s!", ex)
	}
	v.ui.Celebrate(msg)
	v.ui.Output(output)
}

func (v *Verifier) record(ex *exercise.Exercise, outcome history.Outcome, start time.Time) {
	if v.recorder == nil {
		return
	}
	v.recorder.Record(history.Attempt{
		Timestamp: start,
		Exercise:  ex.Name,
		Mode:      ex.Mode.String(),
		Outcome:   outcome,
		Duration:  v.now().Sub(start),
	})
}
