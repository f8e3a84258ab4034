//nolint:revive // Config field names match the YAML keys
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	serrors "github.com/dimasma0305/starklings/internal/starklings/errors"
	"github.com/dimasma0305/starklings/internal/starklings/exercise"
)

const (
	STARKLINGS_DIR = ".starklings"
	CONFIG_FILE    = "config.yaml"
)

// Config is the optional project configuration. Zero fields in the file keep
// their defaults.
type Config struct {
	ExercisesDir string        `yaml:"exercises_dir"`
	SolutionsDir string        `yaml:"solutions_dir"`
	Manifest     string        `yaml:"manifest"`
	Extensions   []string      `yaml:"extensions"`
	Marker       string        `yaml:"marker"`
	Debounce     time.Duration `yaml:"debounce"`
	PollTimeout  time.Duration `yaml:"poll_timeout"`
	Runner       []string      `yaml:"runner"`
	Tester       []string      `yaml:"tester"`
	NoEmoji      bool          `yaml:"no_emoji"`
	History      History       `yaml:"history"`
}

// History configures the attempt store.
type History struct {
	Enabled *bool  `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// IsEnabled defaults to true when the key is absent.
func (h History) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		ExercisesDir: "exercises",
		SolutionsDir: "solutions",
		Extensions:   []string{".cairo"},
		Marker:       exercise.DefaultMarker,
		Debounce:     2 * time.Second,
		PollTimeout:  1 * time.Second,
		Runner:       []string{"starklings-runner", "--path", "{path}"},
		Tester:       []string{"starklings-tester", "--path", "{path}"},
		History: History{
			Path: filepath.Join(STARKLINGS_DIR, "history.db"),
		},
	}
}

// Load reads path, or <dir>/.starklings/config.yaml when path is empty, over
// the defaults. A missing default file is not an error.
func Load(dir, path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, STARKLINGS_DIR, CONFIG_FILE)
	}

	//nolint:gosec // G304: config path is chosen by the user
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("file open error: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(bytes.TrimSpace(data), &file); err != nil {
		return nil, fmt.Errorf("error unmarshal yaml: %w", err)
	}
	cfg.merge(&file)
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(f *Config) {
	if f.ExercisesDir != "" {
		c.ExercisesDir = f.ExercisesDir
	}
	if f.SolutionsDir != "" {
		c.SolutionsDir = f.SolutionsDir
	}
	if f.Manifest != "" {
		c.Manifest = f.Manifest
	}
	if len(f.Extensions) > 0 {
		c.Extensions = f.Extensions
	}
	if f.Marker != "" {
		c.Marker = f.Marker
	}
	if f.Debounce > 0 {
		c.Debounce = f.Debounce
	}
	if f.PollTimeout > 0 {
		c.PollTimeout = f.PollTimeout
	}
	if len(f.Runner) > 0 {
		c.Runner = f.Runner
	}
	if len(f.Tester) > 0 {
		c.Tester = f.Tester
	}
	if f.NoEmoji {
		c.NoEmoji = true
	}
	if f.History.Enabled != nil {
		c.History.Enabled = f.History.Enabled
	}
	if f.History.Path != "" {
		c.History.Path = f.History.Path
	}
}

func (c *Config) applyEnv() {
	if _, ok := os.LookupEnv("NO_EMOJI"); ok {
		c.NoEmoji = true
	}
}

// Validate checks the fields the engine cannot run without.
func (c *Config) Validate() error {
	if len(c.Runner) == 0 || len(c.Tester) == 0 {
		return fmt.Errorf("%w: runner and tester commands are required", serrors.ErrInvalidConfig)
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: extension %q must start with a dot", serrors.ErrInvalidConfig, ext)
		}
	}
	if _, err := exercise.NewMarker(c.Marker); err != nil {
		return fmt.Errorf("%w: %v", serrors.ErrInvalidConfig, err)
	}
	return nil
}

// MarkerMatcher compiles the configured marker.
func (c *Config) MarkerMatcher() (*exercise.Marker, error) {
	return exercise.NewMarker(c.Marker)
}
