//nolint:revive // Package name kept as "log" for stable internal imports.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var (
	debugMode = false

	mu     sync.Mutex
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetDebugMode enables or disables debug logging
func SetDebugMode(enabled bool) {
	debugMode = enabled
}

// SetOutput redirects informational and error output. Passing nil restores
// the process streams.
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout = out
	stderr = errOut
}

func logln(w func() io.Writer, prefix, format string, elem ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(w(), prefix+fmt.Sprintf(format, elem...))
}

func out() io.Writer    { return stdout }
func errOut() io.Writer { return stderr }

// Debug logs debug messages when debug mode is enabled
func Debug(format string, elem ...any) {
	if debugMode {
		logln(out, color.CyanString("[DEBUG] "), format, elem...)
	}
}

// DebugH2 logs indented debug messages when debug mode is enabled
func DebugH2(format string, elem ...any) {
	if debugMode {
		logln(out, color.CyanString("  [DEBUG] "), format, elem...)
	}
}

// Fatal logs an error message and exits the program
func Fatal(args ...interface{}) {
	var message string

	switch len(args) {
	case 0:
		message = "fatal error occurred"
	case 1:
		switch v := args[0].(type) {
		case error:
			message = v.Error()
		case string:
			message = v
		default:
			message = fmt.Sprintf("%v", v)
		}
	default:
		if format, ok := args[0].(string); ok {
			message = fmt.Sprintf(format, args[1:]...)
		} else {
			message = fmt.Sprint(args...)
		}
	}

	for _, line := range strings.Split(strings.TrimSpace(message), "\n") {
		logln(errOut, color.RedString("[x] "), "%s", line)
	}
	os.Exit(1)
}

// Error logs an error message to stderr
func Error(format string, elem ...any) {
	logln(errOut, color.RedString("[x] "), format, elem...)
}

// ErrorH2 logs an indented error message to stderr
func ErrorH2(format string, elem ...any) {
	logln(errOut, color.RedString("  [x] "), format, elem...)
}

// Warn reports a failed exercise step. It goes to stdout so that it stays
// interleaved with the toolchain output printed after it.
func Warn(format string, elem ...any) {
	logln(out, color.YellowString("! "), format, elem...)
}

// Success reports a passed exercise step
func Success(format string, elem ...any) {
	logln(out, color.GreenString("✓ "), format, elem...)
}

// Info logs an informational message
func Info(format string, elem ...any) {
	logln(out, color.BlueString("[x] "), format, elem...)
}

// InfoH2 logs an indented informational message
func InfoH2(format string, elem ...any) {
	logln(out, color.GreenString("  [x] "), format, elem...)
}

// InfoH3 logs a double-indented informational message
func InfoH3(format string, elem ...any) {
	logln(out, color.YellowString("    [x] "), format, elem...)
}
