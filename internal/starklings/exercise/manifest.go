package exercise

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"

	serrors "github.com/dimasma0305/starklings/internal/starklings/errors"
)

// ManifestFiles are the manifest names looked up in the project root, in order.
var ManifestFiles = []string{"info.toml", "info.yaml", "info.yml"}

type manifest struct {
	Exercises []*Exercise `toml:"exercises" yaml:"exercises"`
}

// List is the ordered exercise collection. The order is the learning order.
type List []*Exercise

// FindManifest returns the first manifest present in dir.
func FindManifest(dir string) (string, error) {
	for _, name := range ManifestFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", serrors.Wrapf(os.ErrNotExist, "no %s in %s", strings.Join(ManifestFiles, "/"), dir)
}

// Load reads a TOML or YAML manifest, chosen by file extension. A nil marker
// selects DefaultMarker.
func Load(path string, marker *Marker) (List, error) {
	//nolint:gosec // G304: manifest path is chosen by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data, filepath.Ext(path), marker)
}

// Parse decodes manifest bytes. ext is ".toml", ".yaml" or ".yml".
func Parse(data []byte, ext string, marker *Marker) (List, error) {
	var m manifest
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%w: toml: %v", serrors.ErrManifest, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%w: yaml: %v", serrors.ErrManifest, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported manifest type %q", serrors.ErrManifest, ext)
	}

	seen := make(map[string]bool, len(m.Exercises))
	for i, ex := range m.Exercises {
		switch {
		case ex == nil:
			return nil, fmt.Errorf("%w: exercise #%d is empty", serrors.ErrManifest, i+1)
		case ex.Name == "":
			return nil, fmt.Errorf("%w: exercise #%d has no name", serrors.ErrManifest, i+1)
		case ex.Path == "":
			return nil, fmt.Errorf("%w: exercise %s has no path", serrors.ErrManifest, ex.Name)
		case seen[ex.Name]:
			return nil, fmt.Errorf("%w: duplicate exercise name %s", serrors.ErrManifest, ex.Name)
		}
		seen[ex.Name] = true
		ex.marker = marker
	}
	return List(m.Exercises), nil
}

// Find returns the exercise with the given name.
func (l List) Find(name string) (*Exercise, error) {
	for _, ex := range l {
		if ex.Name == name {
			return ex, nil
		}
	}
	return nil, fmt.Errorf("%w: no exercise named %q", serrors.ErrExerciseNotFound, name)
}

// Next returns the first exercise that still holds its marker.
func (l List) Next() (*Exercise, error) {
	for _, ex := range l {
		if !ex.LooksDone() {
			return ex, nil
		}
	}
	return nil, serrors.ErrAllDone
}

// DoneCount counts exercises whose marker is gone.
func (l List) DoneCount() int {
	n := 0
	for _, ex := range l {
		if ex.LooksDone() {
			n++
		}
	}
	return n
}

// Rebase returns a copy of the list with every path moved from oldRoot to
// newRoot. Paths outside oldRoot are kept.
func (l List) Rebase(oldRoot, newRoot string) List {
	out := make(List, len(l))
	for i, ex := range l {
		rel, err := filepath.Rel(filepath.Clean(oldRoot), filepath.Clean(ex.Path))
		if err != nil || strings.HasPrefix(rel, "..") {
			out[i] = ex
			continue
		}
		out[i] = ex.WithPath(filepath.Join(newRoot, rel))
	}
	return out
}
