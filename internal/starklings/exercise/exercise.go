// Package exercise loads the exercise manifest and answers whether an
// exercise source still carries the pending marker.
package exercise

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// ContextLines is how many lines around a marker are shown to the learner.
const ContextLines = 2

// DefaultMarker is the comment learners delete once an exercise is solved.
const DefaultMarker = "I AM NOT DONE"

// Marker matches the pending marker comment in a source file.
type Marker struct {
	text string
	re   *regexp.Regexp
}

// NewMarker builds a matcher for a `//` comment line holding text. Words may
// be separated by any amount of whitespace.
func NewMarker(text string) (*Marker, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, fmt.Errorf("marker cannot be empty")
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	re, err := regexp.Compile(`^\s*///?\s*` + strings.Join(quoted, `\s+`))
	if err != nil {
		return nil, fmt.Errorf("compile marker %q: %w", text, err)
	}
	return &Marker{text: strings.Join(words, " "), re: re}, nil
}

// String returns the normalized marker text.
func (m *Marker) String() string {
	return m.text
}

func (m *Marker) match(line string) bool {
	return m.re.MatchString(line)
}

var defaultMarker, _ = NewMarker(DefaultMarker)

// Exercise is a single learning unit from the manifest. It is never mutated
// after loading.
type Exercise struct {
	Name string `toml:"name" yaml:"name"`
	Path string `toml:"path" yaml:"path"`
	Mode Mode   `toml:"mode" yaml:"mode"`
	Hint string `toml:"hint" yaml:"hint"`

	marker *Marker
}

// New creates an exercise outside of a manifest, mostly for tests and tools.
func New(name, path string, mode Mode, hint string) *Exercise {
	return &Exercise{Name: name, Path: path, Mode: mode, Hint: hint}
}

// WithPath returns a copy of the exercise pointing at another source file.
func (e *Exercise) WithPath(path string) *Exercise {
	c := *e
	c.Path = path
	return &c
}

// WithMarker returns a copy of the exercise matching another marker.
func (e *Exercise) WithMarker(m *Marker) *Exercise {
	c := *e
	c.marker = m
	return &c
}

func (e *Exercise) String() string {
	return e.Path
}

// MarkerText is the marker the learner has to delete.
func (e *Exercise) MarkerText() string {
	return e.markerOrDefault().String()
}

func (e *Exercise) markerOrDefault() *Marker {
	if e.marker != nil {
		return e.marker
	}
	return defaultMarker
}

// ContextLine is a source line shown next to a pending marker.
type ContextLine struct {
	Number    int
	Line      string
	Important bool
}

// State is the completion state of an exercise source. A nil Context means
// the exercise is done.
type State struct {
	Context []ContextLine
}

// Done reports whether the marker is gone.
func (s State) Done() bool {
	return s.Context == nil
}

// State re-reads the source file on every call.
func (e *Exercise) State() (State, error) {
	//nolint:gosec // G304: exercise paths come from the manifest
	src, err := os.ReadFile(e.Path)
	if err != nil {
		return State{}, fmt.Errorf("read exercise %s: %w", e.Name, err)
	}
	return stateOf(src, e.markerOrDefault()), nil
}

// LooksDone reports whether the exercise source no longer holds the marker.
// An unreadable source counts as not done.
func (e *Exercise) LooksDone() bool {
	st, err := e.State()
	if err != nil {
		return false
	}
	return st.Done()
}

func stateOf(src []byte, m *Marker) State {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(src))
	sc.Buffer(make([]byte, 0, 64*1024), len(src)+1)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}

	matched := -1
	for i, line := range lines {
		if m.match(line) {
			matched = i
			break
		}
	}
	if matched < 0 {
		return State{}
	}

	lo := max(matched-ContextLines, 0)
	hi := min(matched+ContextLines, len(lines)-1)
	context := make([]ContextLine, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		context = append(context, ContextLine{
			Number:    i + 1,
			Line:      lines[i],
			Important: i == matched,
		})
	}
	return State{Context: context}
}
