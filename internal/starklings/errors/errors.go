// Package errors holds the error taxonomy shared by the starklings packages.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// Verification errors
	ErrToolchainFailure = errors.New("toolchain failure")
	ErrStillPending     = errors.New("exercise still pending")

	// Watch session errors
	ErrWatchStart   = errors.New("failed to start watching")
	ErrWatchRuntime = errors.New("watch error")

	// Shell errors
	ErrUnknownCommand = errors.New("unknown command")

	// Manifest errors
	ErrManifest         = errors.New("invalid exercise manifest")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrAllDone          = errors.New("no pending exercise left")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Wrap wraps an error with additional context
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is checks if the error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As checks if the error can be unwrapped to the target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New is errors.New, re-exported so callers need a single import.
func New(text string) error {
	return errors.New(text)
}
