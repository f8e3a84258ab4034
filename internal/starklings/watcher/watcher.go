// Package watcher turns fsnotify events under a directory tree into
// debounced change events.
package watcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dimasma0305/starklings/internal/log"
	serrors "github.com/dimasma0305/starklings/internal/starklings/errors"
)

// ErrTimeout is returned by Next when no event arrived in time.
var ErrTimeout = errors.New("no change within timeout")

// ErrClosed is returned by Next after Close.
var ErrClosed = errors.New("watcher closed")

// DefaultDebounce coalesces the writes of a single editor save.
const DefaultDebounce = 2 * time.Second

// Options configures a Watcher.
type Options struct {
	Debounce   time.Duration
	Extensions []string
}

// Watcher watches a directory tree recursively.
type Watcher struct {
	root   string
	opts   Options
	fs     *fsnotify.Watcher
	events chan Event
	errs   chan error
	done   chan struct{}
	wg     sync.WaitGroup

	mu      sync.Mutex
	timers  map[string]*time.Timer
	pending map[string]Kind

	closeOnce sync.Once
}

// New starts watching root and every non-hidden directory below it.
func New(root string, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", serrors.ErrWatchStart, err)
	}

	w := &Watcher{
		root:    root,
		opts:    opts,
		fs:      fsw,
		events:  make(chan Event, 64),
		errs:    make(chan error, 8),
		done:    make(chan struct{}),
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]Kind),
	}

	if err := w.addTree(root, false); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("%w: %s: %w", serrors.ErrWatchStart, root, err)
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// addTree registers dir and its sub-directories. With emit set, matching
// files already inside are reported as created, since their own Create
// events may have fired before the directory was watched.
func (w *Watcher) addTree(dir string, emit bool) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if path != dir && ShouldIgnoreDir(path) {
				return filepath.SkipDir
			}
			if err := w.fs.Add(path); err != nil {
				if path == dir {
					return err
				}
				log.Error("Failed to watch %s: %v", path, err)
			}
			log.DebugH2("watching %s", path)
			return nil
		}
		if emit && HasExtension(path, w.opts.Extensions) {
			w.debounce(path, Created)
		}
		return nil
	})
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- fmt.Errorf("%w: %w", serrors.ErrWatchRuntime, err):
			default:
				log.Error("Watcher error: %v", err)
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !ShouldIgnoreDir(event.Name) {
				if err := w.addTree(event.Name, true); err != nil {
					log.Error("Failed to watch new directory %s: %v", event.Name, err)
				}
			}
			return
		}
	}
	if !ShouldProcessEvent(event, w.opts.Extensions) {
		return
	}
	log.Debug("file change detected: %s (%s)", event.Name, event.Op)
	w.debounce(event.Name, kindOf(event.Op))
}

// debounce restarts the path's quiet window. A burst containing a creation
// is reported as Created.
func (w *Watcher) debounce(path string, kind Kind) {
	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.done:
		return
	default:
	}

	if prev, ok := w.pending[path]; !ok || prev != Created {
		w.pending[path] = kind
	}
	if t, ok := w.timers[path]; ok {
		t.Reset(w.opts.Debounce)
		return
	}
	w.timers[path] = time.AfterFunc(w.opts.Debounce, func() { w.fire(path) })
}

func (w *Watcher) fire(path string) {
	w.mu.Lock()
	kind, ok := w.pending[path]
	delete(w.pending, path)
	delete(w.timers, path)
	w.mu.Unlock()
	if !ok {
		return
	}

	select {
	case w.events <- Event{Kind: kind, Path: path}:
	case <-w.done:
	}
}

// Next waits up to timeout for the next change.
func (w *Watcher) Next(timeout time.Duration) (Event, error) {
	select {
	case <-w.done:
		return Event{}, ErrClosed
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev := <-w.events:
		return ev, nil
	case err := <-w.errs:
		return Event{}, err
	case <-timer.C:
		return Event{}, ErrTimeout
	case <-w.done:
		return Event{}, ErrClosed
	}
}

// Close stops watching. Pending debounced events are dropped.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		close(w.done)
		for path, t := range w.timers {
			t.Stop()
			delete(w.timers, path)
		}
		w.mu.Unlock()

		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}
