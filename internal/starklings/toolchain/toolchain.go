// Package toolchain invokes the external compiler for exercises.
package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/dimasma0305/starklings/internal/log"
	serrors "github.com/dimasma0305/starklings/internal/starklings/errors"
	"github.com/dimasma0305/starklings/internal/starklings/exercise"
)

// Runner compiles exercises. Both calls block until the toolchain exits and
// return its captured output.
type Runner interface {
	Run(ctx context.Context, ex *exercise.Exercise) (string, error)
	Test(ctx context.Context, ex *exercise.Exercise) (string, error)
}

// Command runs argv templates. "{path}" and "{name}" are substituted in
// every argument.
type Command struct {
	RunArgs  []string
	TestArgs []string
	Dir      string
}

// NewCommand creates a runner from the configured argv templates.
func NewCommand(runArgs, testArgs []string, dir string) *Command {
	return &Command{RunArgs: runArgs, TestArgs: testArgs, Dir: dir}
}

// Run compiles and runs the exercise.
func (c *Command) Run(ctx context.Context, ex *exercise.Exercise) (string, error) {
	return c.exec(ctx, c.RunArgs, ex)
}

// Test compiles the exercise and runs its tests.
func (c *Command) Test(ctx context.Context, ex *exercise.Exercise) (string, error) {
	return c.exec(ctx, c.TestArgs, ex)
}

// Available reports whether the runner and tester binaries can be found.
func (c *Command) Available() error {
	for _, args := range [][]string{c.RunArgs, c.TestArgs} {
		if len(args) == 0 {
			return fmt.Errorf("empty toolchain command")
		}
		if _, err := exec.LookPath(args[0]); err != nil {
			return fmt.Errorf("toolchain %q not found: %w", args[0], err)
		}
	}
	return nil
}

func (c *Command) exec(ctx context.Context, tmpl []string, ex *exercise.Exercise) (string, error) {
	args := Expand(tmpl, ex)
	if len(args) == 0 {
		return "", fmt.Errorf("%w: empty toolchain command", serrors.ErrToolchainFailure)
	}
	log.Debug("running %s", strings.Join(args, " "))

	//nolint:gosec // G204: toolchain command comes from the project configuration
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = c.Dir
	cmd.Env = os.Environ()
	output, err := cmd.CombinedOutput()
	out := strings.TrimRight(string(output), "\n")
	if err != nil {
		return "", &Error{Exercise: ex, Output: out, Err: err}
	}
	return out, nil
}

// Expand substitutes the exercise into an argv template.
func Expand(tmpl []string, ex *exercise.Exercise) []string {
	r := strings.NewReplacer("{path}", ex.Path, "{name}", ex.Name)
	args := make([]string, len(tmpl))
	for i, a := range tmpl {
		args[i] = r.Replace(a)
	}
	return args
}

// Error is a failed toolchain invocation. Error() returns the diagnostic the
// learner needs to see.
type Error struct {
	Exercise *exercise.Exercise
	Output   string
	Err      error
}

func (e *Error) Error() string {
	if e.Output != "" {
		return e.Output
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() []error {
	return []error{serrors.ErrToolchainFailure, e.Err}
}
