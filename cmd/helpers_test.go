package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dimasma0305/starklings/internal/log"
	serrors "github.com/dimasma0305/starklings/internal/starklings/errors"
	"github.com/dimasma0305/starklings/internal/starklings/exercise"
	"github.com/dimasma0305/starklings/internal/starklings/testutil"
)

const testManifest = `[[exercises]]
name = "intro1"
path = "exercises/intro/intro1.cairo"
mode = "compile"
hint = "No hints this time ;)"

[[exercises]]
name = "intro2"
path = "exercises/intro/intro2.cairo"
mode = "test"
hint = "Read the error"
`

// setupProjectDir creates a starklings project with one done and one
// pending exercise.
func setupProjectDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	//nolint:gosec // G306: Test file permissions are acceptable
	if err := os.WriteFile(filepath.Join(dir, "info.toml"), []byte(testManifest), 0644); err != nil {
		t.Fatal(err)
	}
	testutil.SetDone(t, filepath.Join(dir, "exercises", "intro", "intro1.cairo"), true)
	testutil.SetDone(t, filepath.Join(dir, "exercises", "intro", "intro2.cairo"), false)
	return dir
}

func quietLog(t *testing.T) {
	t.Helper()
	log.SetOutput(&strings.Builder{}, &strings.Builder{})
	t.Cleanup(func() { log.SetOutput(nil, nil) })
}

func TestOpenProject(t *testing.T) {
	quietLog(t)
	dir := setupProjectDir(t)

	p, err := openProject(dir, "", false, false)
	if err != nil {
		t.Fatalf("openProject() error = %v", err)
	}
	defer p.Close()

	if len(p.exercises) != 2 {
		t.Fatalf("loaded %d exercises, want 2", len(p.exercises))
	}
	if p.exercises[1].Mode != exercise.ModeTest {
		t.Errorf("intro2 mode = %v, want test", p.exercises[1].Mode)
	}
	if !p.history.IsEnabled() {
		t.Error("history should be enabled by default")
	}
	if _, err := os.Stat(filepath.Join(dir, ".starklings", "history.db")); err != nil {
		t.Errorf("history database not created: %v", err)
	}
	if got, want := p.dir("solutions"), filepath.Join(dir, "solutions"); got != want {
		t.Errorf("dir() = %q, want %q", got, want)
	}
}

func TestOpenProject_NoHistory(t *testing.T) {
	quietLog(t)
	dir := setupProjectDir(t)

	p, err := openProject(dir, "", true, false)
	if err != nil {
		t.Fatalf("openProject() error = %v", err)
	}
	defer p.Close()

	if p.history.IsEnabled() {
		t.Error("--no-history should disable the attempt store")
	}
	if _, err := os.Stat(filepath.Join(dir, ".starklings", "history.db")); !os.IsNotExist(err) {
		t.Errorf("history database should not exist, stat error = %v", err)
	}
}

func TestOpenProject_MissingManifest(t *testing.T) {
	quietLog(t)

	_, err := openProject(t.TempDir(), "", true, false)
	if err == nil || !strings.Contains(err.Error(), "must be run from the starklings directory") {
		t.Errorf("openProject() error = %v, want starklings directory hint", err)
	}
}

func TestOpenProject_MissingToolchain(t *testing.T) {
	quietLog(t)
	dir := setupProjectDir(t)
	cfg := filepath.Join(dir, "starklings.yaml")
	//nolint:gosec // G306: Test file permissions are acceptable
	if err := os.WriteFile(cfg, []byte("runner: [starklings-runner-missing-binary]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := openProject(dir, cfg, true, true)
	if err == nil || !strings.Contains(err.Error(), "cannot find the Cairo toolchain") {
		t.Errorf("openProject() error = %v, want toolchain error", err)
	}
}

func TestResolveExercise(t *testing.T) {
	dir := t.TempDir()
	exs := exercise.List{
		testutil.WriteExercise(t, dir, "intro1", exercise.ModeCompile, true),
		testutil.WriteExercise(t, dir, "intro2", exercise.ModeCompile, false),
	}

	ex, err := resolveExercise(exs, "intro1")
	if err != nil || ex != exs[0] {
		t.Errorf("resolveExercise(intro1) = %v, %v", ex, err)
	}

	ex, err = resolveExercise(exs, "next")
	if err != nil || ex != exs[1] {
		t.Errorf("resolveExercise(next) = %v, %v; want intro2", ex, err)
	}

	if _, err := resolveExercise(exs, "missing"); !errors.Is(err, serrors.ErrExerciseNotFound) {
		t.Errorf("resolveExercise(missing) error = %v, want ErrExerciseNotFound", err)
	}

	testutil.SetDone(t, exs[1].Path, true)
	if _, err := resolveExercise(exs, "next"); !errors.Is(err, serrors.ErrAllDone) {
		t.Errorf("resolveExercise(next) with everything done error = %v, want ErrAllDone", err)
	}
}

func TestValidExerciseNames(t *testing.T) {
	dir := setupProjectDir(t)
	oldWd, _ := os.Getwd()
	defer func() { _ = os.Chdir(oldWd) }()
	_ = os.Chdir(dir)

	names, _ := validExerciseNames(nil, nil, "intro")
	if len(names) != 2 || names[0] != "intro1" || names[1] != "intro2" {
		t.Errorf("validExerciseNames(intro) = %v", names)
	}

	names, _ = validExerciseNames(nil, nil, "")
	if len(names) != 3 || names[0] != "next" {
		t.Errorf("validExerciseNames() = %v, want next plus both exercises", names)
	}

	names, _ = validExerciseNames(nil, []string{"intro1"}, "")
	if len(names) != 0 {
		t.Errorf("second argument should not complete, got %v", names)
	}
}
