package session

import (
	"path/filepath"
	"strings"

	"github.com/dimasma0305/starklings/internal/starklings/exercise"
)

// Reorder builds the sequence for a pass triggered by a change to changed:
// the exercise at that path first, then every other exercise that is not
// done, in manifest order. The input slice is not modified.
func Reorder(exercises []*exercise.Exercise, changed string, done func(*exercise.Exercise) bool) []*exercise.Exercise {
	seq := make([]*exercise.Exercise, 0, len(exercises))
	var head *exercise.Exercise
	for _, ex := range exercises {
		if MatchesPath(changed, ex.Path) {
			head = ex
			break
		}
	}
	if head != nil {
		seq = append(seq, head)
	}
	for _, ex := range exercises {
		if ex == head || MatchesPath(changed, ex.Path) {
			continue
		}
		if !done(ex) {
			seq = append(seq, ex)
		}
	}
	return seq
}

// MatchesPath reports whether the components of exPath are a suffix of
// the components of changed, so a relative manifest path matches the
// absolute path a file event carries.
func MatchesPath(changed, exPath string) bool {
	if changed == "" || exPath == "" {
		return false
	}
	c := components(changed)
	e := components(exPath)
	if len(e) == 0 || len(e) > len(c) {
		return false
	}
	tail := c[len(c)-len(e):]
	for i := range e {
		if tail[i] != e[i] {
			return false
		}
	}
	return true
}

func components(p string) []string {
	p = filepath.ToSlash(filepath.Clean(p))
	p = strings.TrimPrefix(p, filepath.ToSlash(filepath.VolumeName(p)))
	var parts []string
	for _, part := range strings.Split(p, "/") {
		if part != "" && part != "." {
			parts = append(parts, part)
		}
	}
	return parts
}

// canonical resolves a changed path the way the event refers to the file on
// disk. It falls back to the input when the path cannot be resolved.
func canonical(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
