package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Kind of a debounced change.
type Kind int

// Change kinds
const (
	Other Kind = iota
	Created
	Modified
)

func (k Kind) String() string {
	switch k {
	case Created:
		return "created"
	case Modified:
		return "modified"
	default:
		return "other"
	}
}

// Event is a debounced file change.
type Event struct {
	Kind Kind
	Path string
}

// Source yields change events. Next returns ErrTimeout when nothing arrived
// within timeout.
type Source interface {
	Next(timeout time.Duration) (Event, error)
}

// Actionable reports whether the event should trigger a verification pass:
// a creation or modification of an existing file with one of exts.
func (e Event) Actionable(exts []string) bool {
	if e.Kind != Created && e.Kind != Modified {
		return false
	}
	if !HasExtension(e.Path, exts) {
		return false
	}
	info, err := os.Stat(e.Path)
	return err == nil && !info.IsDir()
}

// HasExtension matches the file extension case-sensitively. No extensions
// means every file matches.
func HasExtension(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func kindOf(op fsnotify.Op) Kind {
	switch {
	case op.Has(fsnotify.Create):
		return Created
	case op.Has(fsnotify.Write), op.Has(fsnotify.Chmod):
		return Modified
	default:
		return Other
	}
}

// ShouldProcessEvent filters raw fsnotify events before debouncing.
func ShouldProcessEvent(event fsnotify.Event, exts []string) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Chmod) == 0 {
		return false
	}

	filename := filepath.Base(event.Name)

	// Editor swap and backup files
	if strings.HasSuffix(filename, "~") ||
		(strings.HasPrefix(filename, ".") && (strings.HasSuffix(filename, ".swp") ||
			strings.HasSuffix(filename, ".swx") ||
			strings.HasSuffix(filename, ".tmp"))) ||
		strings.HasPrefix(filename, ".#") {
		return false
	}

	return HasExtension(event.Name, exts)
}

// ShouldIgnoreDir skips hidden directories such as .git.
func ShouldIgnoreDir(path string) bool {
	dirName := filepath.Base(path)
	return strings.HasPrefix(dirName, ".") && dirName != "." && dirName != ".."
}
