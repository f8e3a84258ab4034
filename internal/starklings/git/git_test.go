package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dimasma0305/starklings/internal/log"
)

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
}

func initRepo(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping git integration test in short mode")
	}
	if !Available() {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	runGit(t, dir, "init", "-q")
	runGit(t, dir, "config", "user.email", "learner@example.com")
	runGit(t, dir, "config", "user.name", "Learner")
	runGit(t, dir, "config", "commit.gpgsign", "false")
	return dir
}

func TestResetNoGitDirectory(t *testing.T) {
	mgr := NewManager(t.TempDir())

	err := mgr.Reset(context.Background(), "exercises/intro1.cairo")
	if err == nil || !strings.Contains(err.Error(), "no git repository found") {
		t.Errorf("Reset() error = %v, want 'no git repository found'", err)
	}
}

func TestResetRestoresCommittedSource(t *testing.T) {
	log.SetOutput(&strings.Builder{}, &strings.Builder{})
	t.Cleanup(func() { log.SetOutput(nil, nil) })

	dir := initRepo(t)
	src := filepath.Join(dir, "exercises", "intro1.cairo")
	other := filepath.Join(dir, "exercises", "intro2.cairo")
	if err := os.MkdirAll(filepath.Dir(src), 0750); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{src, other} {
		if err := os.WriteFile(p, []byte("// I AM NOT DONE\n"), 0600); err != nil {
			t.Fatal(err)
		}
	}
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-q", "-m", "exercises")

	for _, p := range []string{src, other} {
		if err := os.WriteFile(p, []byte("fn main() {}\n"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	if err := NewManager(dir).Reset(context.Background(), src); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	got, _ := os.ReadFile(src)
	if string(got) != "// I AM NOT DONE\n" {
		t.Errorf("reset source = %q, want committed content", got)
	}
	kept, _ := os.ReadFile(other)
	if string(kept) != "fn main() {}\n" {
		t.Errorf("other exercise changed to %q", kept)
	}
}

func TestResetWithoutChanges(t *testing.T) {
	log.SetOutput(&strings.Builder{}, &strings.Builder{})
	t.Cleanup(func() { log.SetOutput(nil, nil) })

	dir := initRepo(t)
	src := filepath.Join(dir, "intro1.cairo")
	if err := os.WriteFile(src, []byte("fn main() {}\n"), 0600); err != nil {
		t.Fatal(err)
	}
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-q", "-m", "init")

	if err := NewManager(dir).Reset(context.Background(), "intro1.cairo"); err != nil {
		t.Fatalf("Reset() on a clean file error = %v", err)
	}
}
