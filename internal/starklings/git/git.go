// Package git restores exercise sources through the learner's git checkout.
package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dimasma0305/starklings/internal/log"
)

// Manager runs git commands in the project root.
type Manager struct {
	repoPath string
}

// NewManager creates a manager for the repository at repoPath.
func NewManager(repoPath string) *Manager {
	return &Manager{repoPath: repoPath}
}

// Available reports whether a git binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Reset stashes local changes to path, bringing the exercise back to its
// committed state. The learner's edits stay recoverable with `git stash pop`.
func (m *Manager) Reset(ctx context.Context, path string) error {
	gitDir := filepath.Join(m.repoPath, ".git")
	if _, err := os.Stat(gitDir); err != nil {
		return fmt.Errorf("no git repository found at %s: %w", m.repoPath, err)
	}

	rel := path
	if filepath.IsAbs(path) {
		if r, err := filepath.Rel(m.repoPath, path); err == nil {
			rel = r
		}
	}

	log.InfoH2("Stashing changes to %s", rel)
	//nolint:gosec // G204: path comes from the exercise manifest
	cmd := exec.CommandContext(ctx, "git", "-C", m.repoPath, "stash", "push", "--", rel)
	cmd.Env = os.Environ()
	output, err := cmd.CombinedOutput()
	out := strings.TrimSpace(string(output))
	if err != nil {
		if out != "" {
			log.Error("git output: %s", out)
		}
		return fmt.Errorf("git stash failed: %w", err)
	}

	switch {
	case strings.Contains(out, "No local changes to save"):
		log.InfoH3("%s has no local changes", rel)
	case out != "":
		log.Debug("git stash output:\n%s", out)
	}
	return nil
}
