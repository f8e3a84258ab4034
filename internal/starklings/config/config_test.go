package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	serrors "github.com/dimasma0305/starklings/internal/starklings/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, STARKLINGS_DIR, CONFIG_FILE)
	if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("NO_EMOJI", "")
	os.Unsetenv("NO_EMOJI")

	cfg, err := Load(t.TempDir(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if !cfg.History.IsEnabled() {
		t.Error("history should be enabled by default")
	}
}

func TestLoadExplicitMissingFails(t *testing.T) {
	if _, err := Load(t.TempDir(), "/nonexistent/config.yaml"); err == nil {
		t.Error("Load() expected error for a missing explicit path")
	}
}

func TestLoadMergesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
exercises_dir: ex
debounce: 500ms
runner: ["scarb", "cairo-run", "{path}"]
extensions: [".cairo", ".toml"]
history:
  enabled: false
`)

	cfg, err := Load(dir, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ExercisesDir != "ex" {
		t.Errorf("ExercisesDir = %q", cfg.ExercisesDir)
	}
	if cfg.Debounce != 500*time.Millisecond {
		t.Errorf("Debounce = %v", cfg.Debounce)
	}
	if cfg.PollTimeout != time.Second {
		t.Errorf("PollTimeout = %v, want default", cfg.PollTimeout)
	}
	if diff := cmp.Diff([]string{"scarb", "cairo-run", "{path}"}, cfg.Runner); diff != "" {
		t.Errorf("Runner mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Default().Tester, cfg.Tester); diff != "" {
		t.Errorf("Tester should keep default (-want +got):\n%s", diff)
	}
	if cfg.History.IsEnabled() {
		t.Error("history should be disabled")
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "extension without dot", content: "extensions: [cairo]\n"},
		{name: "blank marker", content: "marker: '   '\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)
			_, err := Load(dir, "")
			if !errors.Is(err, serrors.ErrInvalidConfig) {
				t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestNoEmojiEnv(t *testing.T) {
	t.Setenv("NO_EMOJI", "1")
	cfg, err := Load(t.TempDir(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.NoEmoji {
		t.Error("NO_EMOJI should set NoEmoji")
	}
}
